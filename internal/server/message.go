package server

import (
	"encoding/json"
	"time"

	"github.com/lox/blackjack/internal/blackjack"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message stamped with now
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}

// Client → Server Messages

type BetData struct {
	Amount int `json:"amount"`
}

type AceData struct {
	Wants11 bool `json:"wants11"`
}

type ResetData struct {
	KeepWallet *bool `json:"keepWallet,omitempty"` // defaults to true
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SessionData struct {
	ID    string          `json:"id"`
	State blackjack.State `json:"state"`
}
