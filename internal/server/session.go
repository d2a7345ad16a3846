package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/blackjack/internal/blackjack"
)

// ErrSessionNotFound is returned for unknown or reaped session ids
var ErrSessionNotFound = errors.New("session not found")

// Session is one player's game. Commands are serialised by the session
// mutex so the websocket and HTTP API can share it.
type Session struct {
	ID string

	mu       sync.Mutex
	game     *blackjack.Game
	lastSeen time.Time
}

// Apply runs msg against the game and returns the resulting state. The
// state is returned on rule violations too, unchanged by the command.
func (s *Session) Apply(msg *Message, now time.Time) (blackjack.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = now
	err := dispatch(s.game, msg)
	return s.game.State(), err
}

// State returns the current game state
func (s *Session) State() blackjack.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// SessionStore holds live sessions and expires idle ones
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	newGame  func() *blackjack.Game
	ttl      time.Duration
	clock    quartz.Clock
	logger   *log.Logger
}

// NewSessionStore creates a store building games with newGame
func NewSessionStore(newGame func() *blackjack.Game, ttl time.Duration, clock quartz.Clock, logger *log.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		newGame:  newGame,
		ttl:      ttl,
		clock:    clock,
		logger:   logger.WithPrefix("sessions"),
	}
}

// Create starts a new session
func (st *SessionStore) Create() *Session {
	s := &Session{
		ID:       uuid.NewString(),
		game:     st.newGame(),
		lastSeen: st.clock.Now(),
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	total := len(st.sessions)
	st.mu.Unlock()

	st.logger.Info("Session created", "session", s.ID, "total", total)
	return s
}

// Get returns a session and marks it active
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(st.clock.Now())
	return s, nil
}

// Delete removes a session
func (st *SessionStore) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(st.sessions, id)
	st.logger.Info("Session deleted", "session", id, "total", len(st.sessions))
	return nil
}

// Len returns the number of live sessions
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed.
func (st *SessionStore) Sweep() int {
	now := st.clock.Now()

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if s.idleSince(now) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		st.logger.Info("Reaped idle sessions", "removed", removed, "total", len(st.sessions))
	}
	return removed
}

// ReapInterval is how often Run sweeps for idle sessions
func (st *SessionStore) ReapInterval() time.Duration {
	return min(st.ttl, time.Minute)
}

// Run sweeps idle sessions until ctx is cancelled
func (st *SessionStore) Run(ctx context.Context) error {
	w := st.clock.TickerFunc(ctx, st.ReapInterval(), func() error {
		st.Sweep()
		return nil
	}, "sessions", "reap")
	err := w.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
