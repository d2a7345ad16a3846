package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/blackjack"
)

// RoundResult represents the outcome of a single blackjack round
type RoundResult struct {
	Bet         int              // Stake placed on the round
	Net         int              // Chips won or lost (payout - bet)
	Winner      blackjack.Winner // Settled winner
	Blackjack   bool             // Player was dealt a natural
	PlayerBust  bool             // Player went over 21
	DealerBust  bool             // Dealer went over 21
	PlayerCards int              // Cards in the player's final hand
}

// Statistics accumulates simulation results. Values are tracked in bet
// units (net / bet) so runs with different stakes compare directly.
type Statistics struct {
	Rounds int
	Sum    float64
	Sum2   float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation

	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	PlayerBust int
	DealerBust int

	NetChips  int // Total chips won or lost
	Wagered   int // Total chips staked
	CardsSeen int // Total player cards, for average hand length
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	units := 0.0
	if result.Bet > 0 {
		units = float64(result.Net) / float64(result.Bet)
	}
	s.Rounds++
	s.Sum += units
	s.Sum2 += units * units
	s.Values = append(s.Values, units)

	switch result.Winner {
	case blackjack.WinnerPlayer:
		s.Wins++
	case blackjack.WinnerDealer:
		s.Losses++
	case blackjack.WinnerPush:
		s.Pushes++
	}
	if result.Blackjack {
		s.Blackjacks++
	}
	if result.PlayerBust {
		s.PlayerBust++
	}
	if result.DealerBust {
		s.DealerBust++
	}

	s.NetChips += result.Net
	s.Wagered += result.Bet
	s.CardsSeen += result.PlayerCards
}

// Merge folds other into s. Percentiles stay exact because values are
// concatenated.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.Sum += other.Sum
	s.Sum2 += other.Sum2
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Blackjacks += other.Blackjacks
	s.PlayerBust += other.PlayerBust
	s.DealerBust += other.DealerBust
	s.NetChips += other.NetChips
	s.Wagered += other.Wagered
	s.CardsSeen += other.CardsSeen
}

// Mean returns the arithmetic mean result in bets per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.Sum / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Rate returns n as a fraction of all rounds
func (s *Statistics) Rate(n int) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(n) / float64(s.Rounds)
}

// HouseEdge returns the house's expected gain per chip wagered
func (s *Statistics) HouseEdge() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return -float64(s.NetChips) / float64(s.Wagered)
}

// AvgCards returns the average length of the player's final hand
func (s *Statistics) AvgCards() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.CardsSeen) / float64(s.Rounds)
}

// Validate checks the counters are consistent with each other
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	if total := s.Wins + s.Losses + s.Pushes; total != s.Rounds {
		return fmt.Errorf("outcomes (%d wins, %d losses, %d pushes) do not sum to %d rounds",
			s.Wins, s.Losses, s.Pushes, s.Rounds)
	}

	if s.Blackjacks > s.Wins+s.Pushes {
		return fmt.Errorf("blackjacks (%d) exceed wins and pushes (%d)", s.Blackjacks, s.Wins+s.Pushes)
	}

	if s.PlayerBust > s.Losses {
		return fmt.Errorf("player busts (%d) exceed losses (%d)", s.PlayerBust, s.Losses)
	}

	return nil
}
