// Package gamesync keeps a local snapshot of one game in step with the
// authoritative server: a store that applies full and partial reloads
// in request-issuance order, a gated poller, and a watcher that ties
// them to the API client.
package gamesync

import (
	"errors"
	"sync"

	"github.com/smeargame/smearcli/internal/model"
)

// ErrStaleResponse marks a response that arrived for a superseded
// request. It is dropped silently, never shown to the user.
var ErrStaleResponse = errors.New("response superseded by a newer request")

// Ticket identifies one outstanding request against the store's bound
// game. Tickets are captured at dispatch time; a ticket from a previous
// binding or an already-superseded request is refused on apply.
type Ticket struct {
	Game model.GameID
	Seq  uint64
}

// Store holds the last-known snapshot of a single game. It is the only
// writer of the snapshot; full reloads replace it wholesale and status
// reloads shallow-merge into it.
type Store struct {
	mu      sync.Mutex
	gameID  model.GameID
	game    *model.Game
	issued  uint64
	applied uint64
}

// NewStore creates an unbound store
func NewStore() *Store {
	return &Store{}
}

// Bind points the store at a game, discarding any held snapshot and
// invalidating every ticket issued for a previous binding. Binding to
// the currently bound game is a no-op.
func (s *Store) Bind(id model.GameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameID == id {
		return
	}
	s.gameID = id
	s.game = nil
	s.issued = 0
	s.applied = 0
}

// GameID returns the currently bound game id
func (s *Store) GameID() model.GameID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameID
}

// Issue returns a ticket for a request about to be dispatched
func (s *Store) Issue() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return Ticket{Game: s.gameID, Seq: s.issued}
}

// admit decides whether a response for the given ticket may still be
// applied. Callers hold the lock.
func (s *Store) admit(t Ticket) error {
	if t.Game != s.gameID || t.Seq == 0 || t.Seq <= s.applied {
		return ErrStaleResponse
	}
	return nil
}

// Replace installs a full snapshot, discarding everything previously
// held
func (s *Store) Replace(t Ticket, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.admit(t); err != nil {
		return err
	}
	s.game = game.Clone()
	s.applied = t.Seq
	return nil
}

// Merge overwrites only the fields present in the delta, leaving the
// rest of the snapshot untouched
func (s *Store) Merge(t Ticket, delta *model.StatusDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.admit(t); err != nil {
		return err
	}
	base := s.game.Clone()
	if base == nil {
		base = &model.Game{ID: s.gameID}
	}
	delta.ApplyTo(base)
	s.game = base
	s.applied = t.Seq
	return nil
}

// Snapshot returns a copy of the current snapshot, or nil before the
// first applied reload
func (s *Store) Snapshot() *model.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Clone()
}

// Phase resolves the render phase of the current snapshot
func (s *Store) Phase() model.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.ResolvePhase(s.game)
}
