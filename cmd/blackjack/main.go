package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Play     PlayCmd     `cmd:"" default:"1" help:"Play blackjack in the terminal"`
	Simulate SimulateCmd `cmd:"" help:"Play many rounds with a scripted strategy and report statistics"`
	Serve    ServeCmd    `cmd:"" help:"Serve blackjack sessions over HTTP and WebSocket"`
	Card     CardCmd     `cmd:"" help:"Score a hand given as card codes, e.g. 'As Kh'"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single-player blackjack against a house dealer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
