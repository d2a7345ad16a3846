package blackjack

import (
	"errors"
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stackedGame returns a game whose every round deals cards in the given
// order: player, player, dealer up, dealer hole, then hits and dealer draws.
func stackedGame(t *testing.T, cards string, opts ...Option) *Game {
	t.Helper()
	order := deck.MustParseCards(cards)
	all := append([]Option{WithDeckSource(func() *deck.Deck {
		return deck.NewStacked(order...)
	})}, opts...)
	return New(all...)
}

// startedGame places a bet of 100 and deals.
func startedGame(t *testing.T, cards string, opts ...Option) *Game {
	t.Helper()
	g := stackedGame(t, cards, opts...)
	require.NoError(t, g.PlaceBet(100))
	require.NoError(t, g.StartRound())
	return g
}

func recoverPanic(fn func()) (v any) {
	defer func() { v = recover() }()
	fn()
	return nil
}

func TestPlaceBet(t *testing.T) {
	t.Parallel()

	t.Run("debits wallet", func(t *testing.T) {
		g := New()
		require.NoError(t, g.PlaceBet(100))

		s := g.State()
		assert.Equal(t, 900, s.Wallet)
		assert.Equal(t, 100, s.Bet)
		assert.Equal(t, PhaseAwaitingBet, s.Phase)
	})

	t.Run("rejects invalid amounts", func(t *testing.T) {
		tests := []struct {
			amount int
			want   error
		}{
			{0, ErrInvalidBet},
			{-10, ErrInvalidBet},
			{1001, ErrInsufficientFunds},
		}
		for _, tt := range tests {
			g := New()
			err := g.PlaceBet(tt.amount)
			assert.ErrorIs(t, err, tt.want, "amount %d", tt.amount)
			assert.True(t, IsRuleError(err))
			assert.Equal(t, 1000, g.Wallet(), "wallet must be unchanged")
			assert.Zero(t, g.State().Bet)
		}
	})

	t.Run("whole wallet is allowed", func(t *testing.T) {
		g := New()
		require.NoError(t, g.PlaceBet(1000))
		assert.Zero(t, g.Wallet())
	})

	t.Run("second bet rejected", func(t *testing.T) {
		g := New()
		require.NoError(t, g.PlaceBet(100))
		err := g.PlaceBet(50)
		assert.ErrorIs(t, err, ErrBetAlreadyPlaced)
		assert.Equal(t, 900, g.Wallet())
	})

	t.Run("rejected during a round", func(t *testing.T) {
		g := startedGame(t, "Ts6h9c8d")
		assert.ErrorIs(t, g.PlaceBet(10), ErrRoundInProgress)
	})

	t.Run("rejected after settlement until reset", func(t *testing.T) {
		g := startedGame(t, "TsAh9c7d")
		require.True(t, g.State().Settled())
		assert.ErrorIs(t, g.PlaceBet(10), ErrRoundSettled)

		require.NoError(t, g.Reset(true))
		assert.NoError(t, g.PlaceBet(10))
	})
}

func TestStartRound(t *testing.T) {
	t.Parallel()

	t.Run("requires a bet", func(t *testing.T) {
		g := New()
		err := g.StartRound()
		assert.ErrorIs(t, err, ErrNoBet)
		assert.Equal(t, "no_bet", ErrorCode(err))
		assert.Equal(t, PhaseAwaitingBet, g.Phase())
	})

	t.Run("deals two and two with the hole card hidden", func(t *testing.T) {
		g := startedGame(t, "Ts6h9cKd")
		s := g.State()

		assert.Equal(t, PhasePlayerTurn, s.Phase)
		assert.Equal(t, deck.MustParseCards("Ts6h"), s.PlayerCards)
		require.Len(t, s.DealerCards, 2)
		assert.Equal(t, deck.NewCard(deck.Clubs, deck.Nine), *s.DealerCards[0].Card)
		assert.True(t, s.DealerCards[1].Hidden)
		assert.Nil(t, s.DealerCards[1].Card)
		assert.Equal(t, 16, s.PlayerScore)
		assert.Equal(t, 9, s.DealerScore, "only the up card is visible")
		assert.Equal(t, 100, s.Bet)
		assert.Equal(t, 900, s.Wallet)
		assert.NotEmpty(t, s.RoundID)
	})

	t.Run("second start rejected", func(t *testing.T) {
		g := startedGame(t, "Ts6h9cKd")
		assert.ErrorIs(t, g.StartRound(), ErrRoundInProgress)
	})

	t.Run("fresh deck every round", func(t *testing.T) {
		g := New(WithRNG(randutil.New(5)))
		var rounds [][]deck.Card
		for range 3 {
			require.NoError(t, g.PlaceBet(10))
			require.NoError(t, g.StartRound())
			rounds = append(rounds, g.State().PlayerCards)
			if g.State().InProgress() {
				require.NoError(t, g.Stand())
			}
			require.NoError(t, g.Reset(true))
		}
		assert.NotEqual(t, rounds[0], rounds[1])
		assert.NotEqual(t, rounds[1], rounds[2])
	})
}

func TestNaturalBlackjack(t *testing.T) {
	t.Parallel()

	t.Run("pays three to two", func(t *testing.T) {
		g := New(WithDeckSource(func() *deck.Deck {
			return deck.NewStacked(deck.MustParseCards("TsAh9c7d")...)
		}))
		require.NoError(t, g.PlaceBet(100))
		assert.Equal(t, 900, g.Wallet())
		require.NoError(t, g.StartRound())

		s := g.State()
		assert.Equal(t, 21, s.PlayerScore)
		assert.True(t, s.PlayerBlackjack)
		assert.Equal(t, PhaseSettled, s.Phase)
		assert.Equal(t, WinnerPlayer, s.Winner)
		assert.Equal(t, 250, s.Payout)
		assert.Equal(t, 1150, s.Wallet)
		assert.Zero(t, s.Bet, "bet is cleared after settlement")
		assert.Len(t, s.DealerCards, 2, "dealer does not draw against a natural")
		assert.False(t, s.DealerCards[1].Hidden)
		assert.Equal(t, 16, s.DealerScore)
	})

	t.Run("pushes against a dealer natural", func(t *testing.T) {
		g := startedGame(t, "AsKhAdQc")
		s := g.State()
		assert.True(t, s.PlayerBlackjack)
		assert.Equal(t, WinnerPush, s.Winner)
		assert.Equal(t, 1000, s.Wallet)
	})

	t.Run("later commands rejected", func(t *testing.T) {
		g := startedGame(t, "TsAh9c7d")
		assert.ErrorIs(t, g.Hit(), ErrNotPlayerTurn)
		assert.ErrorIs(t, g.Stand(), ErrNotPlayerTurn)
		assert.Equal(t, 1150, g.Wallet(), "settlement must not repeat")
	})
}

func TestStand(t *testing.T) {
	t.Parallel()

	t.Run("dealer draws to 18 and player 20 wins", func(t *testing.T) {
		g := startedGame(t, "KsQh9c5d4h")
		require.NoError(t, g.Stand())

		s := g.State()
		assert.True(t, s.PlayerStanding)
		assert.True(t, s.DealerStanding)
		assert.Len(t, s.DealerCards, 3)
		assert.Equal(t, 18, s.DealerScore)
		assert.Equal(t, WinnerPlayer, s.Winner)
		assert.Equal(t, 200, s.Payout)
		assert.Equal(t, 1100, s.Wallet)
	})

	t.Run("push returns the stake", func(t *testing.T) {
		g := startedGame(t, "Ts9hTc9d")
		require.NoError(t, g.Stand())

		s := g.State()
		assert.Equal(t, WinnerPush, s.Winner)
		assert.Equal(t, 1000, s.Wallet, "net zero from the pre-round wallet")
	})

	t.Run("dealer bust", func(t *testing.T) {
		g := startedGame(t, "Ts2hTc6dKs")
		require.NoError(t, g.Stand())

		s := g.State()
		assert.Equal(t, 26, s.DealerScore)
		assert.Equal(t, WinnerPlayer, s.Winner)
		assert.Equal(t, ReasonDealerBust, s.Reason)
		assert.Equal(t, 1100, s.Wallet)
	})

	t.Run("dealer higher", func(t *testing.T) {
		g := startedGame(t, "Ts7hTc9d")
		require.NoError(t, g.Stand())

		s := g.State()
		assert.Equal(t, WinnerDealer, s.Winner)
		assert.Equal(t, 900, s.Wallet)
	})

	t.Run("dealer soft seventeen stands", func(t *testing.T) {
		g := startedGame(t, "Ts8hAc6d")
		require.NoError(t, g.Stand())

		s := g.State()
		assert.Len(t, s.DealerCards, 2)
		assert.Equal(t, 17, s.DealerScore)
		assert.Equal(t, WinnerPlayer, s.Winner)
	})

	t.Run("not before the round", func(t *testing.T) {
		g := New()
		assert.ErrorIs(t, g.Stand(), ErrNotPlayerTurn)
	})
}

func TestHit(t *testing.T) {
	t.Parallel()

	t.Run("bust loses immediately", func(t *testing.T) {
		g := startedGame(t, "Ts6h9c8d8s")
		require.NoError(t, g.Hit())

		s := g.State()
		assert.Equal(t, 24, s.PlayerScore)
		assert.True(t, s.PlayerBust)
		assert.Equal(t, WinnerDealer, s.Winner)
		assert.Equal(t, ReasonPlayerBust, s.Reason)
		assert.Equal(t, 900, s.Wallet, "wallet unchanged from the post-bet value")
		assert.Len(t, s.DealerCards, 2, "dealer does not draw after a bust")
		assert.False(t, s.DealerCards[1].Hidden)
	})

	t.Run("keeps the turn open below 21", func(t *testing.T) {
		g := startedGame(t, "Ts2h9c8d3s")
		require.NoError(t, g.Hit())

		s := g.State()
		assert.Equal(t, 15, s.PlayerScore)
		assert.True(t, s.InProgress())
		assert.True(t, s.DealerCards[1].Hidden)
	})

	t.Run("drawn 21 ends the turn without blackjack", func(t *testing.T) {
		g := startedGame(t, "Ts5h9c8d6s")
		require.NoError(t, g.Hit())

		s := g.State()
		assert.Equal(t, 21, s.PlayerScore)
		assert.False(t, s.PlayerBlackjack)
		assert.False(t, s.PlayerStanding)
		assert.Equal(t, PhaseSettled, s.Phase)
		assert.Equal(t, 17, s.DealerScore)
		assert.Equal(t, 200, s.Payout, "ordinary win, not 3:2")
	})

	t.Run("drawn 21 can push", func(t *testing.T) {
		g := startedGame(t, "Ts5h9c8d6s4c")
		require.NoError(t, g.Hit())
		assert.Equal(t, WinnerPlayer, g.State().Winner)

		g = startedGame(t, "Ts5hTc5d6s6h")
		require.NoError(t, g.Hit())
		s := g.State()
		assert.Equal(t, 21, s.DealerScore)
		assert.Equal(t, WinnerPush, s.Winner)
	})

	t.Run("soft hand re-evaluates dealt ace", func(t *testing.T) {
		g := startedGame(t, "As6h9c8dTs")
		assert.True(t, g.State().PlayerSoft)
		require.NoError(t, g.Hit())

		s := g.State()
		assert.Equal(t, 17, s.PlayerScore)
		assert.False(t, s.PlayerSoft)
		assert.True(t, s.InProgress())
	})
}

func TestManualAces(t *testing.T) {
	t.Parallel()

	t.Run("hit ace waits for a value", func(t *testing.T) {
		g := startedGame(t, "5s4hTc7dAh")
		require.NoError(t, g.Hit())

		s := g.State()
		assert.Equal(t, 1, s.PendingAces)
		assert.Equal(t, 9, s.PlayerScore, "score is not recomputed for a pending ace")
		assert.Len(t, s.PlayerCards, 3)

		assert.ErrorIs(t, g.Hit(), ErrAcePending)
		assert.ErrorIs(t, g.Stand(), ErrAcePending)

		require.NoError(t, g.ResolveAce(true))
		s = g.State()
		assert.Zero(t, s.PendingAces)
		assert.Equal(t, 20, s.PlayerScore)

		require.NoError(t, g.Stand())
		s = g.State()
		assert.Equal(t, WinnerPlayer, s.Winner)
		assert.Equal(t, 1100, s.Wallet)
	})

	t.Run("chosen value sticks", func(t *testing.T) {
		g := startedGame(t, "5s4hTc7dAh2c")
		require.NoError(t, g.Hit())
		require.NoError(t, g.ResolveAce(false))
		assert.Equal(t, 10, g.State().PlayerScore)

		require.NoError(t, g.Hit())
		assert.Equal(t, 12, g.State().PlayerScore)
	})

	t.Run("resolving to 21 ends the turn", func(t *testing.T) {
		g := startedGame(t, "5s5hTc6dAh5c")
		require.NoError(t, g.Hit())
		require.NoError(t, g.ResolveAce(true))

		s := g.State()
		assert.Equal(t, 21, s.PlayerScore)
		assert.False(t, s.PlayerBlackjack)
		assert.Equal(t, 21, s.DealerScore)
		assert.Equal(t, WinnerPush, s.Winner)
	})

	t.Run("resolving to a bust loses", func(t *testing.T) {
		g := startedGame(t, "Ts5hTc6dAh")
		require.NoError(t, g.Hit())
		require.NoError(t, g.ResolveAce(true))

		s := g.State()
		assert.Equal(t, 26, s.PlayerScore)
		assert.True(t, s.PlayerBust)
		assert.Equal(t, WinnerDealer, s.Winner)
	})

	t.Run("resolve without pending ace", func(t *testing.T) {
		g := startedGame(t, "Ts5hTc6d")
		err := g.ResolveAce(true)
		assert.ErrorIs(t, err, ErrNoPendingAce)
		assert.Equal(t, "no_pending_ace", ErrorCode(err))
	})

	t.Run("dealt aces are never pending", func(t *testing.T) {
		g := startedGame(t, "As5hTc6d")
		s := g.State()
		assert.Zero(t, s.PendingAces)
		assert.Equal(t, 16, s.PlayerScore)
	})
}

func TestAutoAces(t *testing.T) {
	t.Parallel()

	g := startedGame(t, "5s5hTc6dAh5c", WithAceMode(AceModeAuto))
	require.NoError(t, g.Hit())

	s := g.State()
	assert.Zero(t, s.PendingAces)
	assert.Equal(t, 21, s.PlayerScore)
	assert.Equal(t, PhaseSettled, s.Phase)
	assert.ErrorIs(t, g.ResolveAce(true), ErrNotPlayerTurn)
}

func TestReset(t *testing.T) {
	t.Parallel()

	t.Run("rejected mid-round", func(t *testing.T) {
		g := startedGame(t, "Ts5hTc6d")
		assert.ErrorIs(t, g.Reset(true), ErrRoundInProgress)
		assert.True(t, g.State().InProgress())
	})

	t.Run("keeps wallet", func(t *testing.T) {
		g := startedGame(t, "TsAh9c7d")
		require.NoError(t, g.Reset(true))

		s := g.State()
		assert.Equal(t, PhaseAwaitingBet, s.Phase)
		assert.Equal(t, 1150, s.Wallet)
		assert.Empty(t, s.PlayerCards)
		assert.Empty(t, s.RoundID)
		assert.Equal(t, WinnerNone, s.Winner)
	})

	t.Run("restores starting stake", func(t *testing.T) {
		g := startedGame(t, "TsAh9c7d", WithStartingStake(500))
		require.NoError(t, g.Reset(false))
		assert.Equal(t, 500, g.Wallet())
	})

	t.Run("refunds an unstarted bet", func(t *testing.T) {
		g := New()
		require.NoError(t, g.PlaceBet(300))
		require.NoError(t, g.Reset(true))
		assert.Equal(t, 1000, g.Wallet())
		assert.Zero(t, g.State().Bet)
	})
}

func TestBroke(t *testing.T) {
	t.Parallel()

	g := stackedGame(t, "Ts6h9c8d8s", WithStartingStake(100))
	require.NoError(t, g.PlaceBet(100))
	assert.False(t, g.State().Broke, "a placed bet can still be played")
	require.NoError(t, g.StartRound())
	require.NoError(t, g.Hit())

	s := g.State()
	assert.True(t, s.Broke)
	assert.Zero(t, s.Wallet)

	require.NoError(t, g.Reset(true))
	assert.ErrorIs(t, g.PlaceBet(1), ErrInsufficientFunds)

	require.NoError(t, g.Reset(false))
	assert.Equal(t, 100, g.Wallet())
	assert.False(t, g.State().Broke)
}

func TestEmptyDeckPanics(t *testing.T) {
	t.Parallel()

	// Dealer on 5 must draw but the stacked deck holds only the deal.
	g := startedGame(t, "Ts9h2c3d")
	v := recoverPanic(func() { _ = g.Stand() })
	require.NotNil(t, v)
	err, ok := v.(error)
	require.True(t, ok, "panic value should be an error, got %T", v)
	assert.True(t, errors.Is(err, deck.ErrEmptyDeck))
}

func TestEvents(t *testing.T) {
	t.Parallel()

	var got []Event
	g := startedGame(t, "KsQh9c5d4h", WithEventHandler(func(e Event) {
		got = append(got, e)
	}))
	require.NoError(t, g.Stand())

	kinds := make([]EventKind, len(got))
	for i, e := range got {
		kinds[i] = e.Kind
	}
	assert.Equal(t, []EventKind{
		EventDeal, EventDeal, EventDeal, EventDeal,
		EventReveal, EventDealerDraw, EventSettle,
	}, kinds)

	assert.True(t, got[3].Hidden)
	assert.Nil(t, got[3].Card, "hole card is not exposed on deal")
	require.NotNil(t, got[4].Card)
	assert.Equal(t, deck.NewCard(deck.Diamonds, deck.Five), *got[4].Card)
	assert.Equal(t, 14, got[4].Score)
	assert.Equal(t, 18, got[5].Score)
	assert.Equal(t, WinnerPlayer, got[6].Winner)
	assert.Equal(t, got, g.State().Events)
}

func TestDealerPolicyInvariant(t *testing.T) {
	t.Parallel()

	g := New(WithRNG(randutil.New(11)), WithAceMode(AceModeAuto))
	for round := range 500 {
		if g.Wallet() < 10 {
			require.NoError(t, g.Reset(false))
		}
		require.NoError(t, g.PlaceBet(10))
		require.NoError(t, g.StartRound())
		if g.State().InProgress() {
			// Hit on anything below 12 so the dealer sees a mix of totals
			for g.State().InProgress() && g.State().PlayerScore < 12 {
				require.NoError(t, g.Hit())
			}
			if g.State().InProgress() {
				require.NoError(t, g.Stand())
			}
		}

		s := g.State()
		require.True(t, s.Settled(), "round %d", round)
		assert.True(t, s.DealerStanding)

		dealerScore := 0
		for _, e := range s.Events {
			switch e.Kind {
			case EventReveal:
				dealerScore = e.Score
			case EventDealerDraw:
				assert.Less(t, dealerScore, DealerStandsOn, "dealer drew on %d in round %d", dealerScore, round)
				dealerScore = e.Score
			}
		}
		if s.PlayerStanding {
			assert.GreaterOrEqual(t, s.DealerScore, DealerStandsOn, "round %d", round)
		}
		assert.Equal(t, dealerScore, s.DealerScore)
		require.NoError(t, g.Reset(true))
	}
}

func TestWalletNeverNegative(t *testing.T) {
	t.Parallel()

	g := New(WithRNG(randutil.New(3)), WithStartingStake(50))
	for range 200 {
		bet := g.Wallet()
		if bet == 0 {
			require.NoError(t, g.Reset(false))
			bet = g.Wallet()
		}
		require.NoError(t, g.PlaceBet(bet))
		require.NoError(t, g.StartRound())
		if g.State().InProgress() {
			require.NoError(t, g.Stand())
		}
		assert.GreaterOrEqual(t, g.Wallet(), 0)
		require.NoError(t, g.Reset(true))
	}
}
