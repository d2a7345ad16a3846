package blackjack

// DealerStandsOn is the total at which the dealer stops drawing
const DealerStandsOn = 17

// playDealer draws for the dealer until the hand totals at least 17. Dealer
// Aces are always valued automatically. The loop runs to completion inside
// the calling command; an exhausted deck panics in draw.
func (r *Round) playDealer(emit func(Event)) {
	for ShouldDealerHit(r.DealerScore) {
		c := r.draw()
		r.Dealer.add(c, AceAuto)
		r.DealerScore = r.Dealer.Score()
		emit(cardEvent(EventDealerDraw, DealerSeat, c, r.DealerScore))
	}
	r.DealerStanding = true
}

// ShouldDealerHit reports whether the house policy draws on this total
func ShouldDealerHit(score int) bool {
	return score < DealerStandsOn
}
