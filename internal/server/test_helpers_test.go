package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
)

// winningDeal gives the player 20 against a dealer 17.
const winningDeal = "TsQh9c8d"

type cardView struct {
	Card *struct {
		Suit string `json:"suit"`
		Rank string `json:"rank"`
	} `json:"card"`
	Hidden bool `json:"hidden"`
}

type stateView struct {
	Phase       string     `json:"phase"`
	Wallet      int        `json:"wallet"`
	Bet         int        `json:"bet"`
	PlayerScore int        `json:"playerScore"`
	DealerScore int        `json:"dealerScore"`
	DealerCards []cardView `json:"dealerCards"`
	PendingAces int        `json:"pendingAces"`
	Winner      string     `json:"winner"`
	Payout      int        `json:"payout"`
	Broke       bool       `json:"broke"`
}

type sessionView struct {
	ID    string    `json:"id"`
	State stateView `json:"state"`
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func stackedGames(cards string) func() *blackjack.Game {
	order := deck.MustParseCards(cards)
	return func() *blackjack.Game {
		return blackjack.New(blackjack.WithDeckSource(func() *deck.Deck {
			return deck.NewStacked(order...)
		}))
	}
}

func newTestServer(t *testing.T, cards string) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(Config{
		SessionTTL: 10 * time.Minute,
		NewGame:    stackedGames(cards),
		Clock:      quartz.NewMock(t),
		Logger:     testLogger(),
	})
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(func() {
		s.closeConnections()
		ts.Close()
	})
	return s, ts
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func command(t *testing.T, ts *httptest.Server, id string, msgType MessageType, data any) (*http.Response, []byte) {
	t.Helper()
	msg := map[string]any{"type": msgType}
	if data != nil {
		msg["data"] = data
	}
	return doJSON(t, http.MethodPost, ts.URL+"/api/sessions/"+id+"/commands", msg)
}

func dialWS(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func sendMessage(t *testing.T, conn *websocket.Conn, msgType MessageType, data any) {
	t.Helper()
	msg := map[string]any{"type": msgType}
	if data != nil {
		msg["data"] = data
	}
	require.NoError(t, conn.WriteJSON(msg))
}

func websocketDial(url string) (*websocket.Conn, *http.Response, error) {
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if resp != nil {
		resp.Body.Close()
	}
	return conn, resp, err
}
