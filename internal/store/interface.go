// Package store persists client-local state: the signed-in session
// and cached last-known game snapshots. Backends are interchangeable;
// the file backend is the default for the CLI and redis serves
// headless runners that share state across processes.
package store

import (
	"context"

	"github.com/smeargame/smearcli/internal/model"
	"github.com/smeargame/smearcli/internal/session"
)

// Store defines the interface for client-local persistence
type Store interface {
	// Session operations
	SaveSession(ctx context.Context, creds *session.Credentials) error
	GetSession(ctx context.Context) (*session.Credentials, error)
	DeleteSession(ctx context.Context) error

	// Snapshot cache operations
	SaveSnapshot(ctx context.Context, game *model.Game) error
	GetSnapshot(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteSnapshot(ctx context.Context, id model.GameID) error
}
