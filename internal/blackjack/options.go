package blackjack

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

// DefaultStartingStake is the wallet balance of a new game
const DefaultStartingStake = 1000

// AceMode selects how Aces drawn on a hit are valued. A game uses exactly
// one mode for its whole lifetime.
type AceMode int

const (
	// AceModeManual pauses the round on every hit Ace until ResolveAce is called
	AceModeManual AceMode = iota
	// AceModeAuto values every Ace with the greedy rule, no player input
	AceModeAuto
)

// String returns the config name of the mode
func (m AceMode) String() string {
	if m == AceModeAuto {
		return "auto"
	}
	return "manual"
}

// MarshalText encodes the mode by name
func (m AceMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseAceMode parses "manual" or "auto"
func ParseAceMode(s string) (AceMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "manual":
		return AceModeManual, nil
	case "auto":
		return AceModeAuto, nil
	default:
		return 0, fmt.Errorf("invalid ace mode: %q", s)
	}
}

// Option configures a Game during creation.
type Option func(*gameConfig)

type gameConfig struct {
	startingStake int
	aceMode       AceMode
	rng           *rand.Rand
	deckSource    func() *deck.Deck
	onEvent       func(Event)
	logger        *log.Logger
	newID         func() string
}

func defaultConfig() *gameConfig {
	return &gameConfig{
		startingStake: DefaultStartingStake,
		aceMode:       AceModeManual,
		logger:        log.NewWithOptions(io.Discard, log.Options{}),
		newID:         uuid.NewString,
	}
}

// WithStartingStake sets the wallet balance used at creation and by
// Reset(false). Default is 1000.
func WithStartingStake(stake int) Option {
	return func(c *gameConfig) {
		c.startingStake = stake
	}
}

// WithAceMode selects manual or automatic Ace valuation.
func WithAceMode(mode AceMode) Option {
	return func(c *gameConfig) {
		c.aceMode = mode
	}
}

// WithRNG sets the random source for shuffling. Without it the game is
// time-seeded.
func WithRNG(rng *rand.Rand) Option {
	return func(c *gameConfig) {
		c.rng = rng
	}
}

// WithDeckSource supplies the deck for each new round. This overrides the
// RNG and is mainly used to stack decks in tests.
func WithDeckSource(source func() *deck.Deck) Option {
	return func(c *gameConfig) {
		c.deckSource = source
	}
}

// WithEventHandler registers a callback that receives every round event
// synchronously, in order.
func WithEventHandler(fn func(Event)) Option {
	return func(c *gameConfig) {
		c.onEvent = fn
	}
}

// WithLogger sets the logger. Default discards output.
func WithLogger(logger *log.Logger) Option {
	return func(c *gameConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func (c *gameConfig) finish() {
	if c.startingStake < 0 {
		panic("starting stake cannot be negative")
	}
	if c.deckSource == nil {
		rng := c.rng
		if rng == nil {
			rng = randutil.FromSeed(0)
		}
		c.deckSource = func() *deck.Deck { return deck.New(rng) }
	}
}
