package tui

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
)

// formatCard renders a card in its suit colour
func formatCard(c deck.Card) string {
	if c.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}

// formatCards formats cards with colors
func formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "[]"
	}
	formatted := make([]string, 0, len(cards))
	for _, c := range cards {
		formatted = append(formatted, formatCard(c))
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// formatDealer renders the dealer's cards, face down ones as ??
func formatDealer(cards []blackjack.CardView) string {
	if len(cards) == 0 {
		return "[]"
	}
	formatted := make([]string, 0, len(cards))
	for _, c := range cards {
		if c.Hidden || c.Card == nil {
			formatted = append(formatted, HiddenCardStyle.Render("??"))
			continue
		}
		formatted = append(formatted, formatCard(*c.Card))
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// describeEvent turns a round event into a log line
func describeEvent(e blackjack.Event) string {
	card := ""
	if e.Card != nil {
		card = e.Card.String()
	}

	switch e.Kind {
	case blackjack.EventDeal:
		if e.Hidden {
			return "Dealer takes a face-down card"
		}
		return fmt.Sprintf("%s is dealt %s (%d)", seatName(e.Who), card, e.Score)
	case blackjack.EventHit:
		return fmt.Sprintf("Player hits: %s (%d)", card, e.Score)
	case blackjack.EventAcePending:
		return fmt.Sprintf("Player draws %s - count it as 1 or 11?", card)
	case blackjack.EventAceResolved:
		return fmt.Sprintf("Ace counted, player has %d", e.Score)
	case blackjack.EventReveal:
		return fmt.Sprintf("Dealer reveals %s (%d)", card, e.Score)
	case blackjack.EventDealerDraw:
		return fmt.Sprintf("Dealer draws %s (%d)", card, e.Score)
	case blackjack.EventSettle:
		switch e.Winner {
		case blackjack.WinnerPush:
			return fmt.Sprintf("Push, $%d returned", e.Payout)
		case blackjack.WinnerPlayer:
			return fmt.Sprintf("Player wins $%d", e.Payout)
		default:
			return "Dealer wins"
		}
	default:
		return string(e.Kind)
	}
}

func seatName(p blackjack.Participant) string {
	if p == blackjack.DealerSeat {
		return "Dealer"
	}
	return "Player"
}
