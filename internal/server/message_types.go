package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants. Command types are shared by the
// websocket and the HTTP command endpoint.
const (
	// Client to server messages
	MessageTypeBet   MessageType = "bet"
	MessageTypeStart MessageType = "start"
	MessageTypeHit   MessageType = "hit"
	MessageTypeAce   MessageType = "ace"
	MessageTypeStand MessageType = "stand"
	MessageTypeReset MessageType = "reset"
	MessageTypeState MessageType = "state"

	// Server to client messages
	MessageTypeSession MessageType = "session"
	MessageTypeError   MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
