package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs the interactive terminal game
type PlayCmd struct {
	Stake   int    `help:"Starting wallet (overrides config)"`
	AceMode string `help:"How hit Aces are valued: manual or auto (overrides config)"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Stake > 0 {
		cfg.Game.StartingStake = c.Stake
	}
	if c.AceMode != "" {
		if _, err := blackjack.ParseAceMode(c.AceMode); err != nil {
			return err
		}
		cfg.Game.AceMode = c.AceMode
	}

	// log to a file so output does not corrupt the screen
	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := g.newLogger(logFile, cfg, "blackjack")
	logger.Info("Starting game", "stake", cfg.Game.StartingStake, "ace_mode", cfg.Game.AceMode)

	game := blackjack.New(append(cfg.GameOptions(), blackjack.WithLogger(logger))...)
	model := tui.NewTUIModel(game, logger, tui.Options{RevealDelay: cfg.RevealDelay()})

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	logger.Info("Game over", "wallet", game.Wallet())
	fmt.Printf("You leave the table with $%d\n", game.Wallet())
	return nil
}
