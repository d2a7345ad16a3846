package blackjack

import "github.com/lox/blackjack/internal/deck"

// EventKind identifies what happened in a round
type EventKind string

const (
	EventDeal        EventKind = "deal"
	EventHit         EventKind = "hit"
	EventAcePending  EventKind = "ace_pending"
	EventAceResolved EventKind = "ace_resolved"
	EventReveal      EventKind = "reveal"
	EventDealerDraw  EventKind = "dealer_draw"
	EventSettle      EventKind = "settle"
)

// String returns the string representation of the event kind
func (k EventKind) String() string {
	return string(k)
}

// Participant is the holder of a hand
type Participant string

const (
	PlayerSeat Participant = "player"
	DealerSeat Participant = "dealer"
)

// Event is one step of a round, recorded in order. Card is nil for events
// that do not move a card; Score is the participant's total afterwards.
type Event struct {
	Kind   EventKind   `json:"kind"`
	Who    Participant `json:"who,omitempty"`
	Card   *deck.Card  `json:"card,omitempty"`
	Hidden bool        `json:"hidden,omitempty"`
	Score  int         `json:"score"`
	Winner Winner      `json:"winner,omitempty"`
	Payout int         `json:"payout,omitempty"`
}

func cardEvent(kind EventKind, who Participant, c deck.Card, score int) Event {
	return Event{Kind: kind, Who: who, Card: &c, Score: score}
}
