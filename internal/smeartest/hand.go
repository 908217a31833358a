package smeartest

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/smeargame/smearcli/internal/dependencies/random"
	"github.com/smeargame/smearcli/internal/model"
	"github.com/smeargame/smearcli/internal/session"
)

// tricksPerHand is how many tricks the fake plays before scoring a hand
const tricksPerHand = 6

func (s *Server) currentHand(w http.ResponseWriter, r *http.Request, game *model.Game) (*model.Hand, bool) {
	id := model.HandID(mux.Vars(r)["hand_id"])
	hand := game.CurrentHand
	if hand == nil || hand.ID != id {
		writeError(w, http.StatusNotFound, "hand_not_found", fmt.Sprintf("no current hand with id %s", id))
		return nil, false
	}
	return hand, true
}

func (s *Server) handleBid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bid int `json:"bid"`
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
	hand, ok := s.currentHand(w, r, game)
	if !ok {
		return
	}
	if game.State != model.GameStateBidding {
		writeError(w, http.StatusConflict, "not_bidding", "bidding is closed for this hand")
		return
	}
	if req.Bid < 0 || req.Bid > maxBid {
		writeFieldErrors(w, map[string][]string{
			"bid": {fmt.Sprintf("must be between 0 and %d", maxBid)},
		})
		return
	}

	seat := s.seatOf(game, creds.User.ID)
	if seat == nil {
		writeError(w, http.StatusConflict, "not_seated", "you are not seated in this game")
		return
	}
	for i := range hand.Bids {
		if hand.Bids[i].Player == seat.ID {
			writeError(w, http.StatusConflict, "already_bid", "you already bid on this hand")
			return
		}
	}

	hand.Bids = append(hand.Bids, model.Bid{
		ID:     model.BidID(random.ID(s.random, "b")),
		Player: seat.ID,
		Value:  req.Bid,
	})

	// Computer seats pass immediately so bidding resolves without
	// further polling
	for i := range game.Players {
		p := &game.Players[i]
		if !p.IsComputer() || s.hasBid(hand, p.ID) {
			continue
		}
		hand.Bids = append(hand.Bids, model.Bid{
			ID:     model.BidID(random.ID(s.random, "b")),
			Player: p.ID,
			Value:  0,
		})
	}

	if len(hand.Bids) >= len(game.Players) {
		s.closeBidding(game, hand)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) hasBid(hand *model.Hand, player model.PlayerID) bool {
	for i := range hand.Bids {
		if hand.Bids[i].Player == player {
			return true
		}
	}
	return false
}

// closeBidding picks the winning bid, or redeals when everyone passed
func (s *Server) closeBidding(game *model.Game, hand *model.Hand) {
	var winner *model.Bid
	for i := range hand.Bids {
		if hand.Bids[i].Value > 0 && (winner == nil || hand.Bids[i].Value > winner.Value) {
			winner = &hand.Bids[i]
		}
	}

	if winner == nil {
		game.CurrentHand = s.deal()
		return
	}

	hand.HighBid = &winner.ID
	bidder := winner.Player
	hand.Bidder = &bidder
	game.State = model.GameStateDeclaringTrump
}

func (s *Server) handleTrump(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Trump string `json:"trump"`
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
	hand, ok := s.currentHand(w, r, game)
	if !ok {
		return
	}

	bidID := model.BidID(mux.Vars(r)["bid_id"])
	if hand.HighBid == nil || *hand.HighBid != bidID {
		writeError(w, http.StatusNotFound, "bid_not_found", fmt.Sprintf("bid %s is not the winning bid", bidID))
		return
	}
	if !suits[req.Trump] {
		writeFieldErrors(w, map[string][]string{
			"trump": {"must be one of spades, hearts, diamonds, clubs"},
		})
		return
	}

	trump := req.Trump
	hand.Trump = &trump
	if winning := hand.WinningBid(); winning != nil {
		winning.Trump = &trump
	}

	active := *hand.Bidder
	hand.Trick = &model.Trick{
		ID:           model.TrickID(random.ID(s.random, "t")),
		ActivePlayer: &active,
		Plays:        []model.Play{},
	}
	game.State = model.GameStatePlayingTrick
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Card string `json:"card"`
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
	hand, ok := s.currentHand(w, r, game)
	if !ok {
		return
	}

	trickID := model.TrickID(mux.Vars(r)["trick_id"])
	if hand.Trick == nil || hand.Trick.ID != trickID {
		writeError(w, http.StatusNotFound, "trick_not_found", fmt.Sprintf("no current trick with id %s", trickID))
		return
	}
	if req.Card == "" {
		writeFieldErrors(w, map[string][]string{
			"card": {"can't be blank"},
		})
		return
	}

	seat := s.seatOf(game, creds.User.ID)
	if seat == nil {
		writeError(w, http.StatusConflict, "not_seated", "you are not seated in this game")
		return
	}

	trick := hand.Trick
	trick.Plays = append(trick.Plays, model.Play{Player: seat.ID, Card: req.Card})

	// Computers follow with arbitrary cards
	for i := range game.Players {
		p := &game.Players[i]
		if !p.IsComputer() || s.hasPlayed(trick, p.ID) {
			continue
		}
		trick.Plays = append(trick.Plays, model.Play{
			Player: p.ID,
			Card:   deck[s.random.Intn(len(deck))],
		})
	}

	if trick.Complete(len(game.Players)) {
		s.finishTrick(game, hand)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) hasPlayed(trick *model.Trick, player model.PlayerID) bool {
	for i := range trick.Plays {
		if trick.Plays[i].Player == player {
			return true
		}
	}
	return false
}

// finishTrick starts the next trick, or closes the hand once enough
// tricks have been played
func (s *Server) finishTrick(game *model.Game, hand *model.Hand) {
	s.tricks[game.ID]++
	if s.tricks[game.ID] < tricksPerHand {
		active := *hand.Bidder
		hand.Trick = &model.Trick{
			ID:           model.TrickID(random.ID(s.random, "t")),
			ActivePlayer: &active,
			Plays:        []model.Play{},
		}
		return
	}

	game.State = model.GameStateHandOver
	hand.Trick = nil
}
