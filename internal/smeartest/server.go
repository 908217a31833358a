// Package smeartest is an in-process fake of the Smear server's JSON
// API. It implements just enough of the game rules for client tests:
// computer seats act immediately after every human action, so a test
// never has to wait for an opponent.
package smeartest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/smeargame/smearcli/internal/dependencies/clock"
	"github.com/smeargame/smearcli/internal/dependencies/random"
	"github.com/smeargame/smearcli/internal/middleware"
	"github.com/smeargame/smearcli/internal/model"
	"github.com/smeargame/smearcli/internal/session"
)

// Config holds the injectable dependencies of the fake server
type Config struct {
	Logger *slog.Logger
	Random random.Random
	Clock  clock.Clock
}

type userAccount struct {
	password string
	user     session.User
}

type sessionState struct {
	csrf     string
	user     session.User
	issuedAt time.Time
}

// Server is the fake Smear server. It implements http.Handler and is
// meant to be mounted on an httptest.Server.
type Server struct {
	mu      sync.Mutex
	logger  *slog.Logger
	random  random.Random
	clock   clock.Clock
	handler http.Handler

	users     map[string]userAccount
	sessions  map[string]*sessionState
	games     map[model.GameID]*model.Game
	deltas    map[model.GameID][]model.StatusDelta
	scores    map[model.GameID][]model.ScoreSeries
	autoPilot map[model.GameID]map[model.PlayerID]bool
	tricks    map[model.GameID]int
}

// NewServer creates a fake server. Zero-value config fields fall back
// to production dependencies.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Random == nil {
		cfg.Random = random.New()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	s := &Server{
		logger:    cfg.Logger,
		random:    cfg.Random,
		clock:     cfg.Clock,
		users:     make(map[string]userAccount),
		sessions:  make(map[string]*sessionState),
		games:     make(map[model.GameID]*model.Game),
		deltas:    make(map[model.GameID][]model.StatusDelta),
		scores:    make(map[model.GameID][]model.ScoreSeries),
		autoPilot: make(map[model.GameID]map[model.PlayerID]bool),
		tricks:    make(map[model.GameID]int),
	}
	s.handler = s.router()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.Logging(s.logger))

	r.HandleFunc("/sessions", s.handleLogin).Methods(http.MethodPost)
	r.Handle("/sessions", s.auth(http.HandlerFunc(s.handleLogout))).Methods(http.MethodDelete)

	games := r.PathPrefix("/games").Subrouter()
	games.Use(s.auth)
	games.HandleFunc("/{game_id}", s.handleGetGame).Methods(http.MethodGet)
	games.HandleFunc("/{game_id}", s.handleDeleteGame).Methods(http.MethodDelete)
	games.HandleFunc("/{game_id}/status", s.handleStatus).Methods(http.MethodGet)
	games.HandleFunc("/{game_id}/join", s.handleJoin).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/player", s.handleAddComputer).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/player", s.handleRemovePlayer).Methods(http.MethodDelete)
	games.HandleFunc("/{game_id}/start", s.handleStart).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/auto_pilot", s.handleAutoPilot).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/scores", s.handleScores).Methods(http.MethodGet)
	games.HandleFunc("/{game_id}/hands/{hand_id}/bids", s.handleBid).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/hands/{hand_id}/bids/{bid_id}", s.handleTrump).Methods(http.MethodPatch)
	games.HandleFunc("/{game_id}/hands/{hand_id}/tricks/{trick_id}/plays", s.handlePlay).Methods(http.MethodPost)

	return r
}

// auth validates the bearer token and, for mutating methods, the CSRF
// header. The authenticated user is stashed in the request context.
func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const prefix = "Bearer "
		header := r.Header.Get("Authorization")
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		token := header[len(prefix):]

		s.mu.Lock()
		sess, ok := s.sessions[token]
		s.mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid session token")
			return
		}

		if r.Method != http.MethodGet && r.Header.Get("X-CSRF-Token") != sess.csrf {
			writeError(w, http.StatusForbidden, "csrf_mismatch", "csrf token mismatch")
			return
		}

		ctx := session.WithCredentials(r.Context(), &session.Credentials{
			Token: token,
			CSRF:  sess.csrf,
			User:  sess.user,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Response helpers

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeFieldErrors(w http.ResponseWriter, fields map[string][]string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"errors": fields,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed request body")
		return false
	}
	return true
}

// Seeding hooks for tests

// AddUser registers an account the fake will accept at login
func (s *Server) AddUser(email, password string, user session.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = userAccount{password: password, user: user}
}

// AddGame seeds a game snapshot
func (s *Server) AddGame(game *model.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game.Clone()
}

// QueueDelta queues a canned status payload. Queued deltas are served
// in order before the fake falls back to deriving one from the game.
func (s *Server) QueueDelta(id model.GameID, delta model.StatusDelta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deltas[id] = append(s.deltas[id], delta)
}

// SetScores seeds the score history served for a game
func (s *Server) SetScores(id model.GameID, series []model.ScoreSeries) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[id] = series
}

// Game returns a copy of the fake's current snapshot of a game, or nil
func (s *Server) Game(id model.GameID) *model.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.games[id].Clone()
}
