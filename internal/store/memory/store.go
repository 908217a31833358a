package memory

import (
	"context"
	"sync"

	"github.com/smeargame/smearcli/internal/model"
	"github.com/smeargame/smearcli/internal/session"
	"github.com/smeargame/smearcli/internal/store"
)

// Store is an in-memory implementation of the store interface
type Store struct {
	mu sync.RWMutex

	creds     *session.Credentials
	snapshots map[model.GameID]*model.Game
}

// New creates a new in-memory store instance
func New() *Store {
	return &Store{
		snapshots: make(map[model.GameID]*model.Game),
	}
}

// Ensure Store implements the interface
var _ store.Store = (*Store)(nil)

func (s *Store) SaveSession(ctx context.Context, creds *session.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *creds
	s.creds = &c
	return nil
}

func (s *Store) GetSession(ctx context.Context) (*session.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return nil, model.ErrNoSession
	}
	c := *s.creds
	return &c, nil
}

func (s *Store) DeleteSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	return nil
}

func (s *Store) SaveSnapshot(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[game.ID] = game.Clone()
	return nil
}

func (s *Store) GetSnapshot(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.snapshots[id]
	if !ok {
		return nil, model.ErrSnapshotNotFound
	}
	return game.Clone(), nil
}

func (s *Store) DeleteSnapshot(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, id)
	return nil
}
