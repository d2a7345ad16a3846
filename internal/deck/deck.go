package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Size is the number of cards in a standard deck
const Size = 52

// ErrEmptyDeck is returned when drawing from an exhausted deck
var ErrEmptyDeck = errors.New("deck is empty")

// Deck represents an ordered 52-card deck that is consumed from the top
type Deck struct {
	cards []Card
	next  int
}

// Standard returns all 52 cards in suit then rank order
func Standard() []Card {
	cards := make([]Card, 0, Size)
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// New creates a new deck shuffled with the given RNG
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := &Deck{cards: Standard()}
	d.shuffle(rng)
	return d
}

// NewStacked creates a deck that deals the given cards in order. It is
// meant for tests and replays; duplicate cards are a programming error.
func NewStacked(cards ...Card) *Deck {
	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		if seen[c] {
			panic(fmt.Sprintf("duplicate card in stacked deck: %s", c))
		}
		seen[c] = true
	}
	stacked := make([]Card, len(cards))
	copy(stacked, cards)
	return &Deck{cards: stacked}
}

// shuffle applies Fisher-Yates from the last index down
func (d *Deck) shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[d.next]
	d.next++
	return card, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

// Cards returns a copy of the undrawn cards, top first
func (d *Deck) Cards() []Card {
	out := make([]Card, d.Remaining())
	copy(out, d.cards[d.next:])
	return out
}
