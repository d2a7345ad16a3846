package main

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
)

// CardCmd scores a hand from the command line
type CardCmd struct {
	Codes []string `arg:"" help:"Card codes such as As, Kh, 10d or a run like AsKh"`
}

func (c *CardCmd) Run(g *Globals) error {
	cards, err := deck.ParseCards(strings.Join(c.Codes, ""))
	if err != nil {
		return err
	}

	score := blackjack.BestScore(cards)
	var notes []string
	switch {
	case blackjack.IsNatural(cards):
		notes = append(notes, "blackjack")
	case blackjack.IsBust(score):
		notes = append(notes, "bust")
	case blackjack.IsSoft(cards, nil):
		notes = append(notes, "soft")
	}
	if blackjack.ShouldDealerHit(score) {
		notes = append(notes, "dealer hits")
	}

	fmt.Printf("%v = %d", cards, score)
	if len(notes) > 0 {
		fmt.Printf(" (%s)", strings.Join(notes, ", "))
	}
	fmt.Println()
	return nil
}
