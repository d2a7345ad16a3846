package blackjack

import "github.com/lox/blackjack/internal/deck"

// CardView is a dealer card as the table sees it. Hidden cards carry no
// suit or rank.
type CardView struct {
	Card   *deck.Card `json:"card,omitempty"`
	Hidden bool       `json:"hidden,omitempty"`
}

// State is a read-only snapshot of the game published after every
// command. Slices are copies and may be kept by the caller.
type State struct {
	RoundID string  `json:"roundId,omitempty"`
	Phase   Phase   `json:"phase"`
	AceMode AceMode `json:"aceMode"`
	Wallet  int     `json:"wallet"`
	Bet     int     `json:"bet"`

	PlayerCards []deck.Card `json:"playerCards"`
	DealerCards []CardView  `json:"dealerCards"`
	PlayerScore int         `json:"playerScore"`
	DealerScore int         `json:"dealerScore"`
	PendingAces int         `json:"pendingAces"`
	PlayerSoft  bool        `json:"playerSoft"`

	PlayerStanding  bool `json:"playerStanding"`
	PlayerBust      bool `json:"playerBust"`
	PlayerBlackjack bool `json:"playerBlackjack"`
	DealerStanding  bool `json:"dealerStanding"`

	Winner Winner `json:"winner"`
	Payout int    `json:"payout"`
	Reason string `json:"reason,omitempty"`

	// Broke is true when no further round can be funded
	Broke  bool    `json:"broke"`
	Events []Event `json:"events,omitempty"`
}

// InProgress reports whether the player still has decisions to make
func (s State) InProgress() bool {
	return s.Phase == PhasePlayerTurn
}

// Settled reports whether the round has a winner
func (s State) Settled() bool {
	return s.Phase == PhaseSettled
}

// State returns a snapshot of the game
func (g *Game) State() State {
	s := State{
		Phase:       g.Phase(),
		AceMode:     g.cfg.aceMode,
		Wallet:      g.wallet,
		Bet:         g.pendingBet,
		PlayerCards: []deck.Card{},
		DealerCards: []CardView{},
	}
	s.Broke = g.wallet == 0 && g.pendingBet == 0 && s.Phase != PhasePlayerTurn

	r := g.round
	if r == nil {
		return s
	}

	s.RoundID = r.ID
	s.PlayerCards = append(s.PlayerCards, r.Player.Cards...)
	for i, c := range r.Dealer.Cards {
		if i == 1 && !r.revealed() {
			s.DealerCards = append(s.DealerCards, CardView{Hidden: true})
			continue
		}
		c := c
		s.DealerCards = append(s.DealerCards, CardView{Card: &c})
	}
	s.PlayerScore = r.PlayerScore
	s.DealerScore = r.visibleDealerScore()
	s.PendingAces = len(r.pending)
	s.PlayerSoft = IsSoft(r.Player.Cards, r.Player.Aces) && len(r.pending) == 0
	s.PlayerStanding = r.PlayerStanding
	s.PlayerBust = r.PlayerBust
	s.PlayerBlackjack = r.PlayerBlackjack
	s.DealerStanding = r.DealerStanding
	s.Events = append([]Event(nil), r.Events...)

	if r.Outcome != nil {
		s.Winner = r.Outcome.Winner
		s.Payout = r.Outcome.Payout
		s.Reason = r.Outcome.Reason
	} else {
		s.Bet = r.Bet
	}
	return s
}
