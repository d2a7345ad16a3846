package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/blackjack"
)

// Config holds the settings for a Server
type Config struct {
	Addr       string
	SessionTTL time.Duration
	NewGame    func() *blackjack.Game
	Clock      quartz.Clock
	Logger     *log.Logger
}

// Server serves blackjack sessions over HTTP and WebSocket
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	store       *SessionStore
	clock       quartz.Clock
	logger      *log.Logger
	mu          sync.Mutex
	connections map[*Connection]struct{}
}

// NewServer creates a new server
func NewServer(cfg Config) *Server {
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.NewGame == nil {
		cfg.NewGame = func() *blackjack.Game { return blackjack.New() }
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	logger := cfg.Logger.WithPrefix("server")

	return &Server{
		addr: cfg.Addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		store:       NewSessionStore(cfg.NewGame, cfg.SessionTTL, cfg.Clock, logger),
		clock:       cfg.Clock,
		logger:      logger,
		connections: make(map[*Connection]struct{}),
	}
}

// Sessions returns the session store
func (s *Server) Sessions() *SessionStore {
	return s.store
}

// Routes returns the HTTP handler for the server
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/ws", s.handleWebSocket)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Post("/commands", s.handleCommand)
			r.Delete("/", s.handleDeleteSession)
		})
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting server", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return s.store.Run(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		s.closeConnections()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	s.logger.Info("Server stopped")
	return err
}

func (s *Server) closeConnections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.connections {
		_ = conn.Close()
	}
}

// handleWebSocket upgrades the request and attaches it to a session. The
// session query parameter resumes an existing session; without it a new
// one is created.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	var session *Session
	if id := r.URL.Query().Get("session"); id != "" {
		var err error
		session, err = s.store.Get(id)
		if err != nil {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}
	if session == nil {
		session = s.store.Create()
	}

	client := NewConnection(conn, session, s.clock, s.logger)
	s.mu.Lock()
	s.connections[client] = struct{}{}
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "session", session.ID, "total", total)

	client.sendData(MessageTypeSession, SessionData{ID: session.ID, State: session.State()})
	client.Start()

	go func() {
		<-client.Done()
		s.mu.Lock()
		delete(s.connections, client)
		total := len(s.connections)
		s.mu.Unlock()
		s.logger.Info("Client disconnected", "session", session.ID, "total", total)
	}()
}
