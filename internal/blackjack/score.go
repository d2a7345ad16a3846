package blackjack

import "github.com/lox/blackjack/internal/deck"

// Blackjack is the best possible hand total
const Blackjack = 21

// AceValue records how a single Ace in a hand is counted
type AceValue int

const (
	// AceAuto counts the Ace as 11 when that does not bust the hand, else 1
	AceAuto AceValue = iota
	// AceOne is an explicit hard Ace
	AceOne
	// AceEleven is an explicit soft Ace
	AceEleven
)

// String returns a short description of the ace value
func (v AceValue) String() string {
	switch v {
	case AceOne:
		return "1"
	case AceEleven:
		return "11"
	default:
		return "auto"
	}
}

// Evaluate returns the blackjack total of cards. aces holds one entry per
// Ace in the order the Aces appear in cards; missing entries are AceAuto.
//
// Explicitly valued Aces are added first. The remaining Aces then each take
// 11 if the total, counting 1 for every Ace still to go, stays at or under
// 21, and 1 otherwise. A hand of unresolved Aces therefore always gets its
// best non-busting total.
func Evaluate(cards []deck.Card, aces []AceValue) int {
	total := 0
	auto := 0
	aceIdx := 0
	for _, c := range cards {
		if !c.IsAce() {
			total += c.Points()
			continue
		}
		v := AceAuto
		if aceIdx < len(aces) {
			v = aces[aceIdx]
		}
		aceIdx++
		switch v {
		case AceOne:
			total++
		case AceEleven:
			total += 11
		default:
			auto++
		}
	}

	for i := range auto {
		// reserve 1 for each Ace still to be valued
		rest := auto - i - 1
		if total+11+rest <= Blackjack {
			total += 11
		} else {
			total++
		}
	}
	return total
}

// BestScore evaluates cards with every Ace on AceAuto
func BestScore(cards []deck.Card) int {
	return Evaluate(cards, nil)
}

// IsBust reports whether a total exceeds 21
func IsBust(score int) bool {
	return score > Blackjack
}

// IsNatural reports whether cards are a two-card 21
func IsNatural(cards []deck.Card) bool {
	return len(cards) == 2 && BestScore(cards) == Blackjack
}

// IsSoft reports whether at least one Ace in the hand is currently counted
// as 11.
func IsSoft(cards []deck.Card, aces []AceValue) bool {
	hard := 0
	for _, c := range cards {
		hard += c.Points()
	}
	return Evaluate(cards, aces) > hard
}
