package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/blackjack"
)

// Options configures the terminal UI
type Options struct {
	// RevealDelay is the pause between dealer cards once the hole card is
	// turned. Zero shows the dealer's hand at once.
	RevealDelay time.Duration
	Clock       quartz.Clock
}

// TUIModel represents the Bubble Tea model for a blackjack table
type TUIModel struct {
	game   *blackjack.Game
	logger *log.Logger
	clock  quartz.Clock
	delay  time.Duration

	// UI components
	logViewport viewport.Model
	betInput    textinput.Model

	// State
	state    blackjack.State
	gameLog  []string
	errMsg   string
	quitting bool

	// Dealer display, built from events so draws can be replayed slowly
	roundID     string
	seen        int
	dealer      []blackjack.CardView
	dealerScore int
	queue       []blackjack.Event
	settled     bool

	// Dimensions
	width  int
	height int
}

// revealMsg advances the dealer animation by one event
type revealMsg struct{}

// NewTUIModel creates a TUI model playing g
func NewTUIModel(g *blackjack.Game, logger *log.Logger, opts Options) *TUIModel {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}

	vp := viewport.New(40, 8)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "bet amount"
	ti.Focus()
	ti.CharLimit = 9
	ti.Width = 12
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "Bet $"

	m := &TUIModel{
		game:        g,
		logger:      logger.WithPrefix("tui"),
		clock:       opts.Clock,
		delay:       opts.RevealDelay,
		logViewport: vp,
		betInput:    ti,
	}
	m.refresh()
	return m
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return textinput.Blink
}

// Animating reports whether dealer cards are still being revealed
func (m *TUIModel) Animating() bool {
	return len(m.queue) > 0
}

// State returns the last published game state
func (m *TUIModel) State() blackjack.State {
	return m.state
}

// Wallet returns the balance shown to the player. Winnings are held back
// until the dealer animation reaches the settlement.
func (m *TUIModel) Wallet() int {
	if m.state.Settled() && !m.settled {
		return m.state.Wallet - m.state.Payout
	}
	return m.state.Wallet
}

// Log returns the game log lines
func (m *TUIModel) Log() []string {
	return append([]string(nil), m.gameLog...)
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)
		return m, nil

	case revealMsg:
		return m, m.step()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		}
		if m.Animating() {
			return m, nil
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *TUIModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.state.Phase {
	case blackjack.PhaseAwaitingBet:
		switch {
		case key == "enter":
			return m, m.placeBet()
		case key == "r" && m.state.Broke:
			return m, m.apply(func() error { return m.game.Reset(false) })
		case isDigit(key) || msg.Type == tea.KeyBackspace || msg.Type == tea.KeyLeft || msg.Type == tea.KeyRight:
			var cmd tea.Cmd
			m.betInput, cmd = m.betInput.Update(msg)
			return m, cmd
		}

	case blackjack.PhasePlayerTurn:
		switch key {
		case "h":
			return m, m.apply(m.game.Hit)
		case "s":
			return m, m.apply(m.game.Stand)
		case "1":
			return m, m.apply(func() error { return m.game.ResolveAce(false) })
		case "e":
			return m, m.apply(func() error { return m.game.ResolveAce(true) })
		}

	case blackjack.PhaseSettled:
		switch {
		case key == "n" || key == "enter":
			return m, m.apply(func() error { return m.game.Reset(true) })
		case key == "r" && m.state.Broke:
			return m, m.apply(func() error { return m.game.Reset(false) })
		}
	}

	switch key {
	case "up", "k":
		m.logViewport.ScrollUp(1)
	case "down", "j":
		m.logViewport.ScrollDown(1)
	}
	return m, nil
}

func (m *TUIModel) placeBet() tea.Cmd {
	amount, err := strconv.Atoi(strings.TrimSpace(m.betInput.Value()))
	if err != nil {
		m.errMsg = "Enter a whole number of dollars"
		return nil
	}
	return m.apply(func() error {
		if err := m.game.PlaceBet(amount); err != nil {
			return err
		}
		return m.game.StartRound()
	})
}

// apply runs a game command and folds the new events into the display
func (m *TUIModel) apply(command func() error) tea.Cmd {
	m.errMsg = ""
	if err := command(); err != nil {
		m.logger.Debug("Command rejected", "error", err)
		m.errMsg = err.Error()
	}
	return m.refresh()
}

// refresh reads the game state and queues dealer events for replay
func (m *TUIModel) refresh() tea.Cmd {
	m.state = m.game.State()
	if m.state.RoundID != m.roundID {
		m.roundID = m.state.RoundID
		m.seen = 0
		m.dealer = nil
		m.dealerScore = 0
		m.settled = false
		if m.roundID != "" {
			m.addLog(HeaderStyle.Render("New round"))
		}
	}

	events := m.state.Events[min(m.seen, len(m.state.Events)):]
	m.seen = len(m.state.Events)

	wasAnimating := m.Animating()
	for _, e := range events {
		switch {
		case m.Animating():
			m.queue = append(m.queue, e)
		case (e.Kind == blackjack.EventDealerDraw || e.Kind == blackjack.EventSettle) && m.delay > 0:
			m.queue = append(m.queue, e)
		default:
			m.show(e)
		}
	}
	if m.Animating() && !wasAnimating {
		return m.revealAfter()
	}
	return nil
}

// step shows the next queued dealer event
func (m *TUIModel) step() tea.Cmd {
	if len(m.queue) == 0 {
		return nil
	}
	e := m.queue[0]
	m.queue = m.queue[1:]
	m.show(e)
	if m.Animating() {
		return m.revealAfter()
	}
	return nil
}

func (m *TUIModel) revealAfter() tea.Cmd {
	clock, delay := m.clock, m.delay
	return func() tea.Msg {
		t := clock.NewTimer(delay, "tui", "reveal")
		<-t.C
		return revealMsg{}
	}
}

// show applies one event to the dealer display and the log
func (m *TUIModel) show(e blackjack.Event) {
	switch e.Kind {
	case blackjack.EventDeal:
		if e.Who == blackjack.DealerSeat {
			m.dealer = append(m.dealer, blackjack.CardView{Card: e.Card, Hidden: e.Hidden})
			m.dealerScore = e.Score
		}
	case blackjack.EventReveal:
		if len(m.dealer) > 1 {
			m.dealer[1] = blackjack.CardView{Card: e.Card}
		}
		m.dealerScore = e.Score
	case blackjack.EventDealerDraw:
		m.dealer = append(m.dealer, blackjack.CardView{Card: e.Card})
		m.dealerScore = e.Score
	case blackjack.EventSettle:
		m.settled = true
	}

	line := describeEvent(e)
	if e.Kind == blackjack.EventSettle {
		line = m.outcomeStyle().Render(line)
	}
	m.addLog(line)
}

func (m *TUIModel) outcomeStyle() lipgloss.Style {
	switch m.state.Winner {
	case blackjack.WinnerPlayer:
		return SuccessStyle
	case blackjack.WinnerPush:
		return WarningStyle
	default:
		return ErrorStyle
	}
}

// addLog adds an entry to the game log
func (m *TUIModel) addLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width == 0 {
		width = 80
	}
	height := m.height
	if height == 0 {
		height = 24
	}

	header := HeaderStyle.Render("Blackjack") + "  " +
		WarningStyle.Render(fmt.Sprintf("Wallet: $%d", m.Wallet()))
	if m.state.Bet > 0 {
		header += "  " + WarningStyle.Render(fmt.Sprintf("Bet: $%d", m.state.Bet))
	}
	if m.state.AceMode == blackjack.AceModeAuto {
		header += "  " + InfoStyle.Render("aces: auto")
	}

	table := activePaneStyle.Width(max(width-2, 1)).Render(m.renderTable())
	actions := paneStyle.Width(max(width-2, 1)).Render(m.renderActionPane())

	logHeight := height - lipgloss.Height(header) - lipgloss.Height(table) - lipgloss.Height(actions) - 2
	m.logViewport.Width = max(width-4, 1)
	m.logViewport.Height = max(logHeight, 1)
	logPane := paneStyle.Width(max(width-2, 1)).Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, table, logPane, actions)
}

// renderTable shows both hands
func (m *TUIModel) renderTable() string {
	if m.roundID == "" {
		return InfoStyle.Render("Place a bet to deal a new round")
	}

	var content strings.Builder
	fmt.Fprintf(&content, "Dealer: %s  %s\n", formatDealer(m.dealer), HandInfoStyle.Render(strconv.Itoa(m.dealerScore)))

	score := strconv.Itoa(m.state.PlayerScore)
	if m.state.PlayerSoft {
		score = "soft " + score
	}
	fmt.Fprintf(&content, "Player: %s  %s", formatCards(m.state.PlayerCards), HandInfoStyle.Render(score))
	if m.state.PendingAces > 0 {
		content.WriteString("  " + WarningStyle.Render("+ A?"))
	}

	if m.settled {
		content.WriteString("\n")
		content.WriteString(m.outcomeStyle().Render(m.state.Reason))
	}
	return content.String()
}

// renderActionPane shows the input and keys for the current phase
func (m *TUIModel) renderActionPane() string {
	var content strings.Builder

	if m.errMsg != "" {
		content.WriteString(ErrorStyle.Render(m.errMsg))
		content.WriteString("\n")
	}

	switch {
	case m.Animating():
		content.WriteString(InfoStyle.Render("Dealer is playing..."))
	case m.state.Phase == blackjack.PhaseAwaitingBet:
		if m.state.Broke {
			content.WriteString(ErrorStyle.Render("You're out of money."))
			content.WriteString("  " + ActionsStyle.Render("[r] reset wallet"))
		} else {
			content.WriteString(m.betInput.View())
			content.WriteString("  " + ActionsStyle.Render("[enter] deal"))
		}
	case m.state.Phase == blackjack.PhasePlayerTurn && m.state.PendingAces > 0:
		content.WriteString(ActionsStyle.Render("Ace drawn: [1] count as 1  [e] count as 11"))
	case m.state.Phase == blackjack.PhasePlayerTurn:
		content.WriteString(ActionsStyle.Render("[h] hit  [s] stand"))
	case m.state.Phase == blackjack.PhaseSettled:
		if m.state.Broke {
			content.WriteString(ActionsStyle.Render("[r] reset wallet"))
		} else {
			content.WriteString(ActionsStyle.Render("[n] new round"))
		}
	}

	content.WriteString("\n")
	content.WriteString(InfoStyle.Render("↑↓ scroll log • q to quit"))
	return content.String()
}

func isDigit(key string) bool {
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}
