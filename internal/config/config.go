// Package config loads blackjack settings from an HCL file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/randutil"
)

// DefaultFile is the config file read when no path is given
const DefaultFile = "blackjack.hcl"

// Config represents the complete blackjack configuration
type Config struct {
	Game   GameSettings
	Server ServerSettings
	UI     UISettings
}

// GameSettings configures new games
type GameSettings struct {
	StartingStake int    `hcl:"starting_stake,optional"`
	AceMode       string `hcl:"ace_mode,optional"`
	Seed          int64  `hcl:"seed,optional"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address    string `hcl:"address,optional"`
	SessionTTL int    `hcl:"session_ttl,optional"` // seconds
	LogLevel   string `hcl:"log_level,optional"`
}

// UISettings contains terminal UI settings
type UISettings struct {
	RevealDelayMS int    `hcl:"reveal_delay_ms,optional"`
	LogFile       string `hcl:"log_file,optional"`
}

// file mirrors Config with optional blocks
type file struct {
	Game   *GameSettings   `hcl:"game,block"`
	Server *ServerSettings `hcl:"server,block"`
	UI     *UISettings     `hcl:"ui,block"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: GameSettings{
			StartingStake: blackjack.DefaultStartingStake,
			AceMode:       "manual",
		},
		Server: ServerSettings{
			Address:    ":8080",
			SessionTTL: 1800,
			LogLevel:   "info",
		},
		UI: UISettings{
			RevealDelayMS: 600,
			LogFile:       "blackjack.log",
		},
	}
}

// Load reads filename, falling back to defaults when it does not exist,
// then applies environment overrides and validates the result. A .env file
// in the working directory is loaded into the environment first if present.
func Load(filename string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config, err := loadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func loadFile(filename string) (*Config, error) {
	config := Default()
	if filename == "" {
		filename = DefaultFile
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return config, nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var decoded file
	diags = gohcl.DecodeBody(f.Body, nil, &decoded)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if g := decoded.Game; g != nil {
		if g.StartingStake != 0 {
			config.Game.StartingStake = g.StartingStake
		}
		if g.AceMode != "" {
			config.Game.AceMode = g.AceMode
		}
		config.Game.Seed = g.Seed
	}
	if s := decoded.Server; s != nil {
		if s.Address != "" {
			config.Server.Address = s.Address
		}
		if s.SessionTTL != 0 {
			config.Server.SessionTTL = s.SessionTTL
		}
		if s.LogLevel != "" {
			config.Server.LogLevel = s.LogLevel
		}
	}
	if u := decoded.UI; u != nil {
		if u.RevealDelayMS != 0 {
			config.UI.RevealDelayMS = u.RevealDelayMS
		}
		if u.LogFile != "" {
			config.UI.LogFile = u.LogFile
		}
	}

	return config, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("BLACKJACK_STARTING_STAKE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BLACKJACK_STARTING_STAKE: %w", err)
		}
		c.Game.StartingStake = n
	}
	if v, ok := os.LookupEnv("BLACKJACK_ACE_MODE"); ok {
		c.Game.AceMode = v
	}
	if v, ok := os.LookupEnv("BLACKJACK_SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("BLACKJACK_SEED: %w", err)
		}
		c.Game.Seed = n
	}
	if v, ok := os.LookupEnv("BLACKJACK_ADDRESS"); ok {
		c.Server.Address = v
	}
	if v, ok := os.LookupEnv("BLACKJACK_LOG_LEVEL"); ok {
		c.Server.LogLevel = v
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.StartingStake <= 0 {
		return fmt.Errorf("starting stake must be positive: %d", c.Game.StartingStake)
	}
	if _, err := blackjack.ParseAceMode(c.Game.AceMode); err != nil {
		return err
	}
	if c.Server.Address == "" {
		return fmt.Errorf("server address cannot be empty")
	}
	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive: %d", c.Server.SessionTTL)
	}
	if _, err := log.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.Server.LogLevel)
	}
	if c.UI.RevealDelayMS < 0 {
		return fmt.Errorf("reveal delay cannot be negative: %d", c.UI.RevealDelayMS)
	}
	return nil
}

// AceMode returns the parsed ace mode
func (c *Config) AceMode() blackjack.AceMode {
	mode, _ := blackjack.ParseAceMode(c.Game.AceMode)
	return mode
}

// LogLevel returns the parsed log level, defaulting to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(strings.ToLower(c.Server.LogLevel))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// SessionTTL returns how long an idle server session is kept
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Server.SessionTTL) * time.Second
}

// RevealDelay returns the pause between dealer cards in the terminal UI
func (c *Config) RevealDelay() time.Duration {
	return time.Duration(c.UI.RevealDelayMS) * time.Millisecond
}

// GameOptions returns engine options for the configured game settings.
// Each call builds a fresh RNG; a non-zero seed makes every game shuffle
// the same sequence.
func (c *Config) GameOptions() []blackjack.Option {
	return []blackjack.Option{
		blackjack.WithStartingStake(c.Game.StartingStake),
		blackjack.WithAceMode(c.AceMode()),
		blackjack.WithRNG(randutil.FromSeed(c.Game.Seed)),
	}
}
