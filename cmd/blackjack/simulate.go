package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/simulator"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// SimulateCmd plays batches of rounds with a scripted strategy
type SimulateCmd struct {
	Rounds   int    `short:"n" default:"10000" help:"Rounds per session"`
	Sessions int    `short:"s" default:"4" help:"Independent sessions to run in parallel"`
	Strategy string `default:"basic" enum:"basic,dealer,safe,random" help:"Player strategy (${enum})"`
	Bet      int    `default:"10" help:"Flat bet per round"`
	Seed     int64  `help:"Base RNG seed (0 picks one from the clock)"`
	AceMode  string `help:"How hit Aces are valued: manual or auto (overrides config)"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger := g.newLogger(os.Stderr, cfg, "simulate")

	mode := cfg.AceMode()
	if c.AceMode != "" {
		if mode, err = blackjack.ParseAceMode(c.AceMode); err != nil {
			return err
		}
	}
	seed := c.Seed
	if seed == 0 {
		seed = cfg.Game.Seed
	}

	sim, err := simulator.New(simulator.Config{
		Rounds:   c.Rounds,
		Sessions: c.Sessions,
		Strategy: c.Strategy,
		Bet:      c.Bet,
		Stake:    cfg.Game.StartingStake,
		AceMode:  mode,
		Seed:     seed,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	fmt.Println(titleStyle.Render(" ♠ ♥ Blackjack simulator ♦ ♣ "))
	logger.Info("Running simulation",
		"strategy", c.Strategy,
		"sessions", c.Sessions,
		"rounds", c.Rounds,
		"seed", sim.Seed())

	res, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	simulator.PrintSummary(os.Stdout, res, sim.Seed())
	return nil
}
