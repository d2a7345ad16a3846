package strategy

import (
	"math/rand/v2"

	"github.com/lox/blackjack/internal/blackjack"
)

// Basic plays a simplified basic strategy chart for a game without
// doubling or splitting.
type Basic struct{}

func (Basic) Name() string { return "basic" }

func (Basic) Decide(s blackjack.State) Action {
	up := DealerUpCard(s)
	score := s.PlayerScore

	if s.PlayerSoft {
		switch {
		case score <= 17:
			return Hit
		case score == 18:
			if up >= 9 {
				return Hit
			}
			return Stand
		default:
			return Stand
		}
	}

	switch {
	case score <= 11:
		return Hit
	case score == 12:
		if up >= 4 && up <= 6 {
			return Stand
		}
		return Hit
	case score <= 16:
		if up >= 2 && up <= 6 {
			return Stand
		}
		return Hit
	default:
		return Stand
	}
}

func (Basic) ChooseAce(s blackjack.State) bool { return BestAce(s) }

// MimicDealer follows the house policy: hit below 17, stand otherwise.
type MimicDealer struct{}

func (MimicDealer) Name() string { return "dealer" }

func (MimicDealer) Decide(s blackjack.State) Action {
	if blackjack.ShouldDealerHit(s.PlayerScore) {
		return Hit
	}
	return Stand
}

func (MimicDealer) ChooseAce(s blackjack.State) bool { return BestAce(s) }

// NeverBust only hits when no single card can bust the hand
type NeverBust struct{}

func (NeverBust) Name() string { return "safe" }

func (NeverBust) Decide(s blackjack.State) Action {
	if s.PlayerScore <= 11 {
		return Hit
	}
	return Stand
}

// ChooseAce counts the Ace as 11 only when that reaches a standing total.
func (NeverBust) ChooseAce(s blackjack.State) bool {
	return s.PlayerScore+11 >= 17 && BestAce(s)
}

// Random hits or stands with equal probability and values Aces at random.
// It never hits a 21.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random strategy drawing from rng
func NewRandom(rng *rand.Rand) *Random {
	if rng == nil {
		panic("strategy: NewRandom requires a rng")
	}
	return &Random{rng: rng}
}

func (r *Random) Name() string { return "random" }

func (r *Random) Decide(s blackjack.State) Action {
	if s.PlayerScore >= blackjack.Blackjack {
		return Stand
	}
	if r.rng.IntN(2) == 0 {
		return Hit
	}
	return Stand
}

func (r *Random) ChooseAce(blackjack.State) bool {
	return r.rng.IntN(2) == 0
}
