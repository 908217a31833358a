package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smeargame/smearcli/internal/model"
	"github.com/smeargame/smearcli/internal/session"
	"github.com/smeargame/smearcli/internal/store"
)

// Store is a Redis-backed implementation of the store interface
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis store instance
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ store.Store = (*Store)(nil)

// Session operations

func (s *Store) SaveSession(ctx context.Context, creds *session.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, sessionKey(), data, s.cfg.SessionTTL).Err()
}

func (s *Store) GetSession(ctx context.Context) (*session.Credentials, error) {
	data, err := s.client.Get(ctx, sessionKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNoSession
		}
		return nil, err
	}

	var creds session.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (s *Store) DeleteSession(ctx context.Context) error {
	return s.client.Del(ctx, sessionKey()).Err()
}

// Snapshot operations

func (s *Store) SaveSnapshot(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, snapshotKey(game.ID), data, s.cfg.SnapshotTTL).Err()
}

func (s *Store) GetSnapshot(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, snapshotKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSnapshotNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Store) DeleteSnapshot(ctx context.Context, id model.GameID) error {
	return s.client.Del(ctx, snapshotKey(id)).Err()
}
