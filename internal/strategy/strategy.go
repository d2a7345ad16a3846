// Package strategy provides scripted blackjack players used by the simulator
// and for automated play.
package strategy

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/lox/blackjack/internal/blackjack"
)

// Action is a player decision on their turn
type Action int

const (
	Stand Action = iota
	Hit
)

// String returns the string representation of the action
func (a Action) String() string {
	if a == Hit {
		return "hit"
	}
	return "stand"
}

// Strategy decides the player's moves from the published game state
type Strategy interface {
	Name() string
	// Decide is called during the player turn when no Ace is pending
	Decide(s blackjack.State) Action
	// ChooseAce is called when an Ace is pending and returns true to count it as 11
	ChooseAce(s blackjack.State) bool
}

// BestAce counts a pending Ace as 11 whenever that does not bust the hand.
// The published score excludes pending Aces.
func BestAce(s blackjack.State) bool {
	return s.PlayerScore+11+(s.PendingAces-1) <= blackjack.Blackjack
}

// DealerUpCard returns the blackjack value of the dealer's face-up card,
// counting an Ace as 11. Zero means no card is showing.
func DealerUpCard(s blackjack.State) int {
	if len(s.DealerCards) == 0 || s.DealerCards[0].Card == nil {
		return 0
	}
	c := s.DealerCards[0].Card
	if c.IsAce() {
		return 11
	}
	return c.Points()
}

// PlayTurn drives the player's turn to completion with st. It returns the
// first rule violation, which indicates a broken strategy.
func PlayTurn(g *blackjack.Game, st Strategy) error {
	for {
		s := g.State()
		if !s.InProgress() {
			return nil
		}

		var err error
		switch {
		case s.PendingAces > 0:
			err = g.ResolveAce(st.ChooseAce(s))
		case st.Decide(s) == Hit:
			err = g.Hit()
		default:
			err = g.Stand()
		}
		if err != nil {
			return fmt.Errorf("%s: %w", st.Name(), err)
		}
	}
}

var registry = map[string]func(rng *rand.Rand) Strategy{
	"basic":  func(*rand.Rand) Strategy { return Basic{} },
	"dealer": func(*rand.Rand) Strategy { return MimicDealer{} },
	"safe":   func(*rand.Rand) Strategy { return NeverBust{} },
	"random": func(rng *rand.Rand) Strategy { return NewRandom(rng) },
}

// Names lists the registered strategies
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName builds a registered strategy. rng is only used by strategies
// that need randomness.
func ByName(name string, rng *rand.Rand) (Strategy, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (available: %v)", name, Names())
	}
	return build(rng), nil
}
