package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lox/blackjack/internal/blackjack"
)

var (
	// ErrInvalidMessage is returned when a command payload cannot be decoded
	ErrInvalidMessage = errors.New("invalid message")
	// ErrUnknownMessageType is returned for unsupported command types
	ErrUnknownMessageType = errors.New("unknown message type")
)

// dispatch applies a client command to the game
func dispatch(g *blackjack.Game, msg *Message) error {
	switch msg.Type {
	case MessageTypeBet:
		var data BetData
		if err := decode(msg, &data); err != nil {
			return err
		}
		return g.PlaceBet(data.Amount)

	case MessageTypeStart:
		return g.StartRound()

	case MessageTypeHit:
		return g.Hit()

	case MessageTypeAce:
		var data AceData
		if err := decode(msg, &data); err != nil {
			return err
		}
		return g.ResolveAce(data.Wants11)

	case MessageTypeStand:
		return g.Stand()

	case MessageTypeReset:
		var data ResetData
		if err := decode(msg, &data); err != nil {
			return err
		}
		keep := data.KeepWallet == nil || *data.KeepWallet
		return g.Reset(keep)

	case MessageTypeState:
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessageType, msg.Type)
	}
}

func decode(msg *Message, v any) error {
	if len(msg.Data) == 0 || string(msg.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(msg.Data, v); err != nil {
		return fmt.Errorf("%w: %s data: %v", ErrInvalidMessage, msg.Type, err)
	}
	return nil
}

// errorData maps a command error to its wire code
func errorData(err error) ErrorData {
	code := blackjack.ErrorCode(err)
	switch {
	case errors.Is(err, ErrInvalidMessage):
		code = "invalid_message"
	case errors.Is(err, ErrUnknownMessageType):
		code = "unknown_message_type"
	case errors.Is(err, ErrSessionNotFound):
		code = "session_not_found"
	}
	return ErrorData{Code: code, Message: err.Error()}
}
