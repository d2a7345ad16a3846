package simulator

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"github.com/lox/blackjack/internal/strategy"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds   int // Rounds per session
	Sessions int // Independent sessions, run in parallel
	Strategy string
	Bet      int
	Stake    int // Starting wallet for each session
	AceMode  blackjack.AceMode
	Seed     int64
	Logger   *log.Logger
}

// Result is the outcome of a simulation run
type Result struct {
	Stats    *statistics.Statistics
	Strategy string
	Rebuys   int // Times a session ran out of chips and restored its stake
}

// Simulator runs batches of blackjack rounds with a scripted strategy
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", config.Rounds)
	}
	if config.Sessions <= 0 {
		config.Sessions = 1
	}
	if config.Bet <= 0 {
		return nil, fmt.Errorf("bet must be positive, got %d", config.Bet)
	}
	if config.Stake == 0 {
		config.Stake = blackjack.DefaultStartingStake
	}
	if config.Stake < config.Bet {
		return nil, fmt.Errorf("stake %d cannot cover bet %d", config.Stake, config.Bet)
	}
	if config.Strategy == "" {
		config.Strategy = "basic"
	}
	if _, err := strategy.ByName(config.Strategy, randutil.New(0)); err != nil {
		return nil, err
	}
	if config.Seed == 0 {
		config.Seed = randutil.FromSeed(0).Int64()
	}
	logger := config.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return &Simulator{config: config, logger: logger.WithPrefix("simulator")}, nil
}

// Seed returns the base seed, so a run can be replayed
func (s *Simulator) Seed() int64 {
	return s.config.Seed
}

type sessionResult struct {
	stats  *statistics.Statistics
	rebuys int
}

// Run plays every session and merges their statistics. Session i shuffles
// with seed+i, so results are reproducible regardless of scheduling.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	results := make([]sessionResult, s.config.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	for i := range s.config.Sessions {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			res, err := s.playSession(ctx, seed)
			if err != nil {
				return fmt.Errorf("session %d (seed %d): %w", i, seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Result{Stats: &statistics.Statistics{}, Strategy: s.config.Strategy}
	for _, r := range results {
		out.Stats.Merge(r.stats)
		out.Rebuys += r.rebuys
	}
	if err := out.Stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Simulation complete",
		"strategy", s.config.Strategy,
		"rounds", out.Stats.Rounds,
		"mean", out.Stats.Mean(),
		"house_edge", out.Stats.HouseEdge())
	return out, nil
}

func (s *Simulator) playSession(ctx context.Context, seed int64) (sessionResult, error) {
	st, err := strategy.ByName(s.config.Strategy, randutil.New(^seed))
	if err != nil {
		return sessionResult{}, err
	}
	game := blackjack.New(
		blackjack.WithRNG(randutil.New(seed)),
		blackjack.WithStartingStake(s.config.Stake),
		blackjack.WithAceMode(s.config.AceMode),
	)

	res := sessionResult{stats: &statistics.Statistics{}}
	for round := range s.config.Rounds {
		if round%100 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		if game.Wallet() < s.config.Bet {
			if err := game.Reset(false); err != nil {
				return res, err
			}
			res.rebuys++
		}
		if err := game.PlaceBet(s.config.Bet); err != nil {
			return res, err
		}
		if err := game.StartRound(); err != nil {
			return res, err
		}
		if err := strategy.PlayTurn(game, st); err != nil {
			return res, err
		}

		state := game.State()
		res.stats.Add(roundResult(s.config.Bet, state))
		if err := game.Reset(true); err != nil {
			return res, err
		}
	}

	s.logger.Debug("Session finished", "seed", seed, "rounds", s.config.Rounds, "wallet", game.Wallet(), "rebuys", res.rebuys)
	return res, nil
}

func roundResult(bet int, s blackjack.State) statistics.RoundResult {
	return statistics.RoundResult{
		Bet:         bet,
		Net:         s.Payout - bet,
		Winner:      s.Winner,
		Blackjack:   s.PlayerBlackjack,
		PlayerBust:  s.PlayerBust,
		DealerBust:  blackjack.IsBust(s.DealerScore),
		PlayerCards: len(s.PlayerCards),
	}
}
