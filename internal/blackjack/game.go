package blackjack

import "github.com/charmbracelet/log"

// Game is the single-player blackjack aggregate: a wallet that outlives
// rounds plus the current round, if any. Commands are synchronous and
// atomic; a Game is not safe for concurrent use.
type Game struct {
	cfg        *gameConfig
	logger     *log.Logger
	wallet     int
	pendingBet int
	round      *Round
}

// New creates a game waiting for the first bet.
//
// Example usage:
//
//	// Production - time-seeded shuffles
//	g := blackjack.New()
//
//	// Testing - deterministic shuffles
//	g := blackjack.New(blackjack.WithRNG(randutil.New(42)))
//
//	// Fully stacked deck
//	g := blackjack.New(blackjack.WithDeckSource(func() *deck.Deck {
//	    return deck.NewStacked(deck.MustParseCards("TsAh9c7d")...)
//	}))
func New(opts ...Option) *Game {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.finish()

	return &Game{
		cfg:    cfg,
		logger: cfg.logger.WithPrefix("game"),
		wallet: cfg.startingStake,
	}
}

// Phase returns the current lifecycle phase
func (g *Game) Phase() Phase {
	if g.round == nil {
		return PhaseAwaitingBet
	}
	return g.round.Phase
}

// Wallet returns the current balance, excluding any stake on the table
func (g *Game) Wallet() int {
	return g.wallet
}

// AceMode returns the mode the game was created with
func (g *Game) AceMode() AceMode {
	return g.cfg.aceMode
}

// PlaceBet moves amount from the wallet onto the table for the next round.
func (g *Game) PlaceBet(amount int) error {
	const cmd = "bet"
	switch {
	case g.Phase() == PhaseSettled:
		return reject(cmd, ErrRoundSettled)
	case g.Phase() != PhaseAwaitingBet:
		return reject(cmd, ErrRoundInProgress)
	case g.pendingBet > 0:
		return reject(cmd, ErrBetAlreadyPlaced)
	case amount <= 0:
		return reject(cmd, ErrInvalidBet)
	case amount > g.wallet:
		return reject(cmd, ErrInsufficientFunds)
	}

	g.wallet -= amount
	g.pendingBet = amount
	g.logger.Debug("Bet placed", "amount", amount, "wallet", g.wallet)
	return nil
}

// StartRound shuffles a fresh deck and deals two cards to the player then
// two to the dealer. A natural blackjack settles the round immediately.
func (g *Game) StartRound() error {
	const cmd = "start"
	switch {
	case g.Phase() == PhaseSettled:
		return reject(cmd, ErrRoundSettled)
	case g.Phase() != PhaseAwaitingBet:
		return reject(cmd, ErrRoundInProgress)
	case g.pendingBet <= 0:
		return reject(cmd, ErrNoBet)
	}

	r := newRound(g.cfg.newID(), g.cfg.deckSource(), g.pendingBet)
	g.round = r
	g.pendingBet = 0

	for range 2 {
		c := r.draw()
		r.Player.add(c, AceAuto)
		r.PlayerScore = r.Player.Score()
		g.emit(cardEvent(EventDeal, PlayerSeat, c, r.PlayerScore))
	}
	up := r.draw()
	r.Dealer.add(up, AceAuto)
	r.DealerScore = r.Dealer.Score()
	g.emit(cardEvent(EventDeal, DealerSeat, up, r.DealerScore))

	hole := r.draw()
	r.Dealer.add(hole, AceAuto)
	r.DealerScore = r.Dealer.Score()
	g.emit(Event{Kind: EventDeal, Who: DealerSeat, Hidden: true, Score: r.visibleDealerScore()})

	g.logger.Debug("Round dealt",
		"round", r.ID,
		"bet", r.Bet,
		"player", r.Player.Cards,
		"player_score", r.PlayerScore,
		"dealer_up", up)

	if IsNatural(r.Player.Cards) {
		r.PlayerBlackjack = true
		g.endPlayerTurn(TurnNatural)
	}
	return nil
}

// Hit draws one card for the player. In manual ace mode an Ace is held
// back from the score until ResolveAce assigns it a value.
func (g *Game) Hit() error {
	const cmd = "hit"
	r, err := g.playerTurn(cmd)
	if err != nil {
		return err
	}
	if len(r.pending) > 0 {
		return reject(cmd, ErrAcePending)
	}

	c := r.draw()
	if c.IsAce() && g.cfg.aceMode == AceModeManual {
		r.Player.add(c, AceAuto)
		r.pending = append(r.pending, len(r.Player.Aces)-1)
		g.emit(cardEvent(EventAcePending, PlayerSeat, c, r.PlayerScore))
		g.logger.Debug("Ace awaiting value", "round", r.ID, "score", r.PlayerScore)
		return nil
	}

	r.Player.add(c, AceAuto)
	r.PlayerScore = r.Player.Score()
	g.emit(cardEvent(EventHit, PlayerSeat, c, r.PlayerScore))
	g.logger.Debug("Player hit", "round", r.ID, "card", c, "score", r.PlayerScore)

	if end := r.checkPlayerTotal(); end != TurnOpen {
		g.endPlayerTurn(end)
	}
	return nil
}

// ResolveAce values the oldest pending Ace as 11 or 1.
func (g *Game) ResolveAce(wants11 bool) error {
	const cmd = "ace"
	r, err := g.playerTurn(cmd)
	if err != nil {
		return err
	}
	if len(r.pending) == 0 {
		return reject(cmd, ErrNoPendingAce)
	}

	idx := r.pending[0]
	r.pending = r.pending[1:]
	v := AceOne
	if wants11 {
		v = AceEleven
	}
	r.Player.Aces[idx] = v
	r.PlayerScore = r.Player.Score()
	g.emit(Event{Kind: EventAceResolved, Who: PlayerSeat, Score: r.PlayerScore})
	g.logger.Debug("Ace resolved", "round", r.ID, "value", v, "score", r.PlayerScore)

	if end := r.checkPlayerTotal(); end != TurnOpen {
		g.endPlayerTurn(end)
	}
	return nil
}

// Stand ends the player's turn; the dealer plays and the round settles.
func (g *Game) Stand() error {
	const cmd = "stand"
	r, err := g.playerTurn(cmd)
	if err != nil {
		return err
	}
	if len(r.pending) > 0 {
		return reject(cmd, ErrAcePending)
	}

	r.PlayerStanding = true
	g.endPlayerTurn(TurnStand)
	return nil
}

// Reset discards the current round and returns to betting. An unstarted
// bet goes back to the wallet. With keepWallet false the wallet is restored
// to the starting stake.
func (g *Game) Reset(keepWallet bool) error {
	if g.Phase() == PhasePlayerTurn || g.Phase() == PhaseDealerTurn {
		return reject("reset", ErrRoundInProgress)
	}

	g.wallet += g.pendingBet
	g.pendingBet = 0
	g.round = nil
	if !keepWallet {
		g.wallet = g.cfg.startingStake
	}
	g.logger.Debug("Game reset", "keep_wallet", keepWallet, "wallet", g.wallet)
	return nil
}

func (g *Game) playerTurn(cmd string) (*Round, error) {
	if g.Phase() != PhasePlayerTurn {
		return nil, reject(cmd, ErrNotPlayerTurn)
	}
	return g.round, nil
}

// endPlayerTurn reveals the dealer, runs the dealer policy when the result
// still depends on it, and settles. It is the only path out of the player
// turn, so the dealer and settlement each run exactly once per round.
func (g *Game) endPlayerTurn(end TurnEnd) {
	r := g.round
	if r.TurnEnd != TurnOpen {
		panic("player turn already ended for round " + r.ID)
	}
	r.TurnEnd = end
	r.Phase = PhaseDealerTurn
	if end == TurnBust {
		r.PlayerBust = true
	}

	hole := r.Dealer.Cards[1]
	g.emit(cardEvent(EventReveal, DealerSeat, hole, r.DealerScore))

	if end != TurnBust && end != TurnNatural {
		r.playDealer(g.emit)
	}
	r.DealerStanding = true

	out := Settle(SettleInput{
		Bet:             r.Bet,
		PlayerScore:     r.PlayerScore,
		DealerScore:     r.DealerScore,
		PlayerBust:      r.PlayerBust,
		PlayerBlackjack: r.PlayerBlackjack,
	})
	g.wallet += out.Payout
	r.Outcome = &out
	r.Phase = PhaseSettled
	g.emit(Event{Kind: EventSettle, Score: r.PlayerScore, Winner: out.Winner, Payout: out.Payout})

	g.logger.Info("Round settled",
		"round", r.ID,
		"turn_end", end,
		"player_score", r.PlayerScore,
		"dealer_score", r.DealerScore,
		"winner", out.Winner,
		"payout", out.Payout,
		"wallet", g.wallet)
}

func (g *Game) emit(e Event) {
	g.round.Events = append(g.round.Events, e)
	if g.cfg.onEvent != nil {
		g.cfg.onEvent(e)
	}
}
