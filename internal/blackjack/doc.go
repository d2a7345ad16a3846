// Package blackjack implements the rules engine for single-player, single-dealer
// Blackjack.
//
// The main type is Game, which owns the wallet and the current Round and exposes
// the player's commands. Each command validates its preconditions, mutates the
// round, and, if the player's turn is over, runs the dealer policy and
// settlement before returning.
//
// # Basic Usage
//
//	g := blackjack.New(blackjack.WithStartingStake(1000))
//	if err := g.PlaceBet(100); err != nil {
//	    // rule violation, state unchanged
//	}
//	_ = g.StartRound()
//	_ = g.Hit()
//	if g.State().PendingAces > 0 {
//	    _ = g.ResolveAce(true) // count the new Ace as 11
//	}
//	_ = g.Stand()
//	fmt.Println(g.State().Winner)
//
// # Aces
//
// Every Ace in a hand has an AceValue. Aces dealt on the opening deal and all
// dealer Aces use AceAuto, the greedy best-value rule. In AceModeManual (the
// default), an Ace drawn on a hit pauses the round until ResolveAce assigns it
// 1 or 11; Hit and Stand are rejected in the meantime. AceModeAuto skips the
// pause and values hit Aces greedily as well.
//
// # Errors
//
// Rule violations are returned as *RuleError wrapping one of the Err* sentinels
// and never modify state. Running out of cards mid-round is a bookkeeping bug
// and panics with an error wrapping deck.ErrEmptyDeck.
//
// # Deterministic Testing
//
// Use WithRNG(randutil.New(seed)) for reproducible shuffles, or WithDeckSource
// with deck.NewStacked for a fixed card order.
package blackjack
