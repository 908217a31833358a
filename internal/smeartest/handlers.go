package smeartest

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/smeargame/smearcli/internal/dependencies/random"
	"github.com/smeargame/smearcli/internal/model"
	"github.com/smeargame/smearcli/internal/session"
)

const maxBid = 5

var suits = map[string]bool{
	"spades":   true,
	"hearts":   true,
	"diamonds": true,
	"clubs":    true,
}

// A fixed deck keeps dealt hands stable under a mocked Random
var deck = []string{
	"AS", "KS", "QS", "JS", "10S", "9S",
	"AH", "KH", "QH", "JH", "10H", "9H",
	"AD", "KD", "QD", "JD", "10D", "9D",
	"AC", "KC", "QC", "JC", "10C", "9C",
}

// Session endpoints

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	fields := map[string][]string{}
	if req.Email == "" {
		fields["email"] = append(fields["email"], "can't be blank")
	}
	if req.Password == "" {
		fields["password"] = append(fields["password"], "can't be blank")
	}
	if len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.users[req.Email]
	if !ok || account.password != req.Password {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		return
	}

	token := s.random.String(32, random.IDAlphabet)
	csrf := s.random.String(32, random.IDAlphabet)
	s.sessions[token] = &sessionState{
		csrf:     csrf,
		user:     account.user,
		issuedAt: s.clock.Now(),
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"csrf":  csrf,
		"user":  account.user,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	creds, _ := session.FromContext(r.Context())

	s.mu.Lock()
	delete(s.sessions, creds.Token)
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

// Game endpoints

func (s *Server) game(w http.ResponseWriter, r *http.Request) (*model.Game, bool) {
	id := model.GameID(mux.Vars(r)["game_id"])
	game, ok := s.games[id]
	if !ok {
		writeError(w, http.StatusNotFound, "game_not_found", fmt.Sprintf("no game with id %s", id))
		return nil, false
	}
	return game, true
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.game(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.game(w, r)
	if !ok {
		return
	}

	if queue := s.deltas[game.ID]; len(queue) > 0 {
		delta := queue[0]
		s.deltas[game.ID] = queue[1:]
		writeJSON(w, http.StatusOK, delta)
		return
	}

	state := game.State
	writeJSON(w, http.StatusOK, model.StatusDelta{
		State:       &state,
		Players:     game.Players,
		Teams:       game.Teams,
		CurrentHand: game.CurrentHand,
	})
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.game(w, r)
	if !ok {
		return
	}

	delete(s.games, game.ID)
	delete(s.deltas, game.ID)
	delete(s.scores, game.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Passcode string `json:"passcode"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	creds, _ := session.FromContext(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.game(w, r)
	if !ok {
		return
	}
	if game.State != model.GameStateStarting {
		writeError(w, http.StatusConflict, "game_already_started", "the game has already started")
		return
	}

	for i := range game.Players {
		if game.Players[i].UserID != nil && *game.Players[i].UserID == creds.User.ID {
			// Already seated, joining again is a no-op
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}

	userID := creds.User.ID
	game.Players = append(game.Players, model.Player{
		ID:     model.PlayerID(random.ID(s.random, "p")),
		Name:   creds.User.Name,
		UserID: &userID,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddComputer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.game(w, r)
	if !ok {
		return
	}
	if game.State != model.GameStateStarting {
		writeError(w, http.StatusConflict, "game_already_started", "the game has already started")
		return
	}

	computers := 0
	for i := range game.Players {
		if game.Players[i].IsComputer() {
			computers++
		}
	}

	player := model.Player{
		ID:   model.PlayerID(random.ID(s.random, "p")),
		Name: fmt.Sprintf("Computer %d", computers+1),
	}
	game.Players = append(game.Players, player)
	writeJSON(w, http.StatusCreated, map[string]any{"player": player})
}

func (s *Server) handleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID model.PlayerID `json:"id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.game(w, r)
	if !ok {
		return
	}
	if game.State != model.GameStateStarting {
		writeError(w, http.StatusConflict, "game_already_started", "the game has already started")
		return
	}

	for i := range game.Players {
		if game.Players[i].ID == req.ID {
			game.Players = append(game.Players[:i], game.Players[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "player_not_found", fmt.Sprintf("no player with id %s", req.ID))
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Teams []model.TeamAssignment `json:"teams"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.game(w, r)
	if !ok {
		return
	}
	if game.State != model.GameStateStarting {
		writeError(w, http.StatusConflict, "game_already_started", "the game has already started")
		return
	}
	if len(game.Players) < 2 && !game.SinglePlayer {
		writeFieldErrors(w, map[string][]string{
			"players": {"need at least two players to start"},
		})
		return
	}

	for _, assignment := range req.Teams {
		team := game.Team(assignment.ID)
		if team == nil {
			writeFieldErrors(w, map[string][]string{
				"teams": {fmt.Sprintf("unknown team %s", assignment.ID)},
			})
			return
		}
		team.Players = assignment.Players
		for _, pid := range assignment.Players {
			if player := game.Player(pid); player != nil {
				teamID := assignment.ID
				player.TeamID = &teamID
			}
		}
	}

	game.NumPlayers = len(game.Players)
	game.NumTeams = len(game.Teams)
	game.State = model.GameStateBidding
	game.CurrentHand = s.deal()
	s.tricks[game.ID] = 0
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deal() *model.Hand {
	offset := s.random.Intn(len(deck))
	cards := make([]string, 6)
	for i := range cards {
		cards[i] = deck[(offset+i)%len(deck)]
	}
	return &model.Hand{
		ID:    model.HandID(random.ID(s.random, "h")),
		Cards: cards,
		Bids:  []model.Bid{},
	}
}

func (s *Server) handleAutoPilot(w http.ResponseWriter, r *http.Request) {
	creds, _ := session.FromContext(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.game(w, r)
	if !ok {
		return
	}

	seat := s.seatOf(game, creds.User.ID)
	if seat == nil {
		writeError(w, http.StatusConflict, "not_seated", "you are not seated in this game")
		return
	}

	if s.autoPilot[game.ID] == nil {
		s.autoPilot[game.ID] = make(map[model.PlayerID]bool)
	}
	s.autoPilot[game.ID][seat.ID] = !s.autoPilot[game.ID][seat.ID]
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.game(w, r)
	if !ok {
		return
	}

	series := s.scores[game.ID]
	if series == nil {
		series = []model.ScoreSeries{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"scores": series})
}

func (s *Server) seatOf(game *model.Game, userID string) *model.Player {
	for i := range game.Players {
		if game.Players[i].UserID != nil && *game.Players[i].UserID == userID {
			return &game.Players[i]
		}
	}
	return nil
}
