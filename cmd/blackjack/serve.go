package main

import (
	"os"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/server"
)

// ServeCmd runs the session server
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	logger := g.newLogger(os.Stderr, cfg, "blackjack")

	gameLogger := logger.WithPrefix("game")
	s := server.NewServer(server.Config{
		Addr:       cfg.Server.Address,
		SessionTTL: cfg.SessionTTL(),
		NewGame: func() *blackjack.Game {
			return blackjack.New(append(cfg.GameOptions(), blackjack.WithLogger(gameLogger))...)
		},
		Logger: logger,
	})

	logger.Info("Starting blackjack server",
		"address", cfg.Server.Address,
		"session_ttl", cfg.SessionTTL(),
		"stake", cfg.Game.StartingStake,
		"ace_mode", cfg.Game.AceMode)

	ctx, cancel := signalContext(logger)
	defer cancel()
	return s.ListenAndServe(ctx)
}
