package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smeargame/smearcli/internal/dependencies/clock"
	"github.com/smeargame/smearcli/internal/model"
	"github.com/smeargame/smearcli/internal/session"
	"github.com/smeargame/smearcli/internal/store"
)

// DefaultMaxSnapshotAge is how long a cached snapshot stays servable.
// A snapshot older than this is treated as absent so the next watch
// starts from a fresh full reload.
const DefaultMaxSnapshotAge = 24 * time.Hour

// Store persists sessions and snapshots as JSON files under a single
// directory, the way a browser keeps them in local storage. The
// session file is written with owner-only permissions because it holds
// the bearer token.
type Store struct {
	dir            string
	clock          clock.Clock
	maxSnapshotAge time.Duration
}

// snapshotRecord wraps a cached game with the time it was saved
type snapshotRecord struct {
	SavedAt time.Time   `json:"saved_at"`
	Game    *model.Game `json:"game"`
}

// New creates a file store rooted at dir. The directory is created
// lazily on first write.
func New(dir string) *Store {
	return NewWithClock(dir, clock.New())
}

// NewWithClock creates a file store with an explicit clock (for testing)
func NewWithClock(dir string, clk clock.Clock) *Store {
	return &Store{
		dir:            dir,
		clock:          clk,
		maxSnapshotAge: DefaultMaxSnapshotAge,
	}
}

// DefaultDir returns the conventional store location under the user's
// home directory
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".smear"
	}
	return filepath.Join(home, ".smear")
}

// Ensure Store implements the interface
var _ store.Store = (*Store)(nil)

func (s *Store) sessionPath() string {
	return filepath.Join(s.dir, "session.json")
}

func (s *Store) snapshotPath(id model.GameID) string {
	return filepath.Join(s.dir, "snapshots", fmt.Sprintf("%s.json", id))
}

func (s *Store) writeJSON(path string, mode os.FileMode, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, mode)
}

func (s *Store) SaveSession(ctx context.Context, creds *session.Credentials) error {
	return s.writeJSON(s.sessionPath(), 0600, creds)
}

func (s *Store) GetSession(ctx context.Context) (*session.Credentials, error) {
	data, err := os.ReadFile(s.sessionPath())
	if err != nil {
		if os.IsNotExist(err) {
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
	err := os.Remove(s.sessionPath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) SaveSnapshot(ctx context.Context, game *model.Game) error {
	rec := snapshotRecord{
		SavedAt: s.clock.Now(),
		Game:    game,
	}
	return s.writeJSON(s.snapshotPath(game.ID), 0644, rec)
}

func (s *Store) GetSnapshot(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := os.ReadFile(s.snapshotPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.ErrSnapshotNotFound
		}
		return nil, err
	}
	var rec snapshotRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec.Game == nil {
		return nil, model.ErrSnapshotNotFound
	}
	if s.clock.Now().Sub(rec.SavedAt) > s.maxSnapshotAge {
		_ = os.Remove(s.snapshotPath(id))
		return nil, model.ErrSnapshotNotFound
	}
	return rec.Game, nil
}

func (s *Store) DeleteSnapshot(ctx context.Context, id model.GameID) error {
	err := os.Remove(s.snapshotPath(id))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
