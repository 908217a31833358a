// Package action serializes user-initiated game actions: at most one
// state-changing call may be outstanding at a time.
package action

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrActionInFlight is returned when a submission is attempted while
// another is still outstanding. No network call is made.
var ErrActionInFlight = errors.New("another action is already in flight")

// Call is one state-changing API call
type Call func(ctx context.Context) error

// ReloadFunc is invoked after a successful submission; it performs a
// full reload and resumes polling
type ReloadFunc func(ctx context.Context) error

// Submitter wraps a single outstanding user action with loading and
// error semantics. Buttons are expected to be disabled while loading,
// but the submitter refuses overlap on its own regardless.
type Submitter struct {
	mu       sync.Mutex
	inFlight bool
	reload   ReloadFunc
	logger   *slog.Logger
}

// NewSubmitter creates a submitter. The reload hook may be nil.
func NewSubmitter(reload ReloadFunc, logger *slog.Logger) *Submitter {
	return &Submitter{reload: reload, logger: logger}
}

// Loading reports whether a submission is outstanding
func (s *Submitter) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Submit runs the call unless one is already in flight. On failure the
// error is returned untouched and no state is mutated; the prior
// snapshot remains authoritative. On success the reload hook runs.
func (s *Submitter) Submit(ctx context.Context, name string, call Call) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrActionInFlight
	}
	s.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	if err := call(ctx); err != nil {
		s.logger.Warn("action failed",
			slog.String("action", name),
			slog.String("error", err.Error()))
		return err
	}

	if s.reload != nil {
		if err := s.reload(ctx); err != nil {
			// The action itself succeeded; a failed reload is a poll
			// problem and recovers on the next tick
			s.logger.Warn("reload after action failed",
				slog.String("action", name),
				slog.String("error", err.Error()))
		}
	}
	return nil
}
