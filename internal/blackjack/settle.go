package blackjack

// Winner is the resolved result of a round
type Winner string

const (
	WinnerNone   Winner = ""
	WinnerPlayer Winner = "player"
	WinnerDealer Winner = "dealer"
	WinnerPush   Winner = "push"
)

// String returns the string representation of the winner
func (w Winner) String() string {
	if w == WinnerNone {
		return "none"
	}
	return string(w)
}

// Outcome messages shown to the player
const (
	ReasonPlayerBust   = "Player busts! Dealer wins"
	ReasonBlackjack    = "Blackjack!"
	ReasonDealerBust   = "Dealer busts!"
	ReasonPlayerHigher = "Player wins"
	ReasonDealerHigher = "Dealer wins"
	ReasonPush         = "It's a push"
)

// SettleInput is everything settlement needs from a finished round
type SettleInput struct {
	Bet             int
	PlayerScore     int
	DealerScore     int
	PlayerBust      bool
	PlayerBlackjack bool
}

// Outcome is the settled result of a round. Payout is the total amount
// returned to the wallet, stake included.
type Outcome struct {
	Winner Winner `json:"winner"`
	Payout int    `json:"payout"`
	Reason string `json:"reason"`
}

// Net returns the wallet change over the whole round
func (o Outcome) Net(bet int) int {
	return o.Payout - bet
}

// Settle decides the winner and payout. Rules are checked top-down and the
// first match wins.
func Settle(in SettleInput) Outcome {
	switch {
	case in.PlayerBust:
		return Outcome{Winner: WinnerDealer, Reason: ReasonPlayerBust}
	case in.PlayerBlackjack && in.DealerScore != Blackjack:
		// 3:2 on a natural, paid as total return: floor(bet * 2.5)
		return Outcome{Winner: WinnerPlayer, Payout: in.Bet*5/2, Reason: ReasonBlackjack}
	case IsBust(in.DealerScore):
		return Outcome{Winner: WinnerPlayer, Payout: in.Bet * 2, Reason: ReasonDealerBust}
	case in.PlayerScore > in.DealerScore:
		return Outcome{Winner: WinnerPlayer, Payout: in.Bet * 2, Reason: ReasonPlayerHigher}
	case in.DealerScore > in.PlayerScore:
		return Outcome{Winner: WinnerDealer, Reason: ReasonDealerHigher}
	default:
		return Outcome{Winner: WinnerPush, Payout: in.Bet, Reason: ReasonPush}
	}
}
