package blackjack

import (
	"fmt"

	"github.com/lox/blackjack/internal/deck"
)

// Phase is the position of the game in the round lifecycle
type Phase int

const (
	PhaseAwaitingBet Phase = iota
	PhasePlayerTurn
	PhaseDealerTurn
	PhaseSettled
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingBet:
		return "awaiting_bet"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseDealerTurn:
		return "dealer_turn"
	case PhaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// TurnEnd records why the player's turn finished
type TurnEnd int

const (
	TurnOpen TurnEnd = iota
	TurnBust
	TurnNatural
	TurnTwentyOne
	TurnStand
)

// String returns the string representation of the turn end
func (t TurnEnd) String() string {
	switch t {
	case TurnBust:
		return "bust"
	case TurnNatural:
		return "natural"
	case TurnTwentyOne:
		return "twenty_one"
	case TurnStand:
		return "stand"
	default:
		return "open"
	}
}

// Hand is an ordered, append-only set of cards with one AceValue per Ace
type Hand struct {
	Cards []deck.Card
	Aces  []AceValue
}

func (h *Hand) add(c deck.Card, v AceValue) {
	h.Cards = append(h.Cards, c)
	if c.IsAce() {
		h.Aces = append(h.Aces, v)
	}
}

// Score evaluates the hand
func (h Hand) Score() int {
	return Evaluate(h.Cards, h.Aces)
}

// Round is the state of a single deal. It is created by StartRound and
// dropped, never reused, once the game is reset.
type Round struct {
	ID    string
	Phase Phase
	Deck  *deck.Deck
	Bet   int

	Player      Hand
	Dealer      Hand
	PlayerScore int
	DealerScore int

	// pending holds indexes into Player.Aces awaiting a value, oldest first
	pending []int

	PlayerStanding  bool
	PlayerBust      bool
	PlayerBlackjack bool
	DealerStanding  bool
	TurnEnd         TurnEnd

	Outcome *Outcome
	Events  []Event
}

func newRound(id string, d *deck.Deck, bet int) *Round {
	return &Round{
		ID:    id,
		Phase: PhasePlayerTurn,
		Deck:  d,
		Bet:   bet,
	}
}

// draw takes the top card. Running out of cards mid-round means the deal
// bookkeeping is broken, so it panics rather than reshuffling.
func (r *Round) draw() deck.Card {
	c, err := r.Deck.Draw()
	if err != nil {
		panic(fmt.Errorf("round %s: %w", r.ID, err))
	}
	return c
}

// revealed reports whether the dealer's hole card is face up
func (r *Round) revealed() bool {
	return r.TurnEnd != TurnOpen
}

// visibleDealerScore is the dealer total counting only face-up cards
func (r *Round) visibleDealerScore() int {
	if r.revealed() || len(r.Dealer.Cards) == 0 {
		return r.DealerScore
	}
	return BestScore(r.Dealer.Cards[:1])
}

// PendingAces returns the number of player Aces awaiting a value
func (r *Round) PendingAces() int {
	return len(r.pending)
}

// checkPlayerTotal reports how the player's current score ends the turn,
// if it does.
func (r *Round) checkPlayerTotal() TurnEnd {
	switch {
	case IsBust(r.PlayerScore):
		return TurnBust
	case r.PlayerScore == Blackjack:
		return TurnTwentyOne
	default:
		return TurnOpen
	}
}
