package gamesync

import (
	"context"
	"log/slog"
	"time"

	"github.com/smeargame/smearcli/internal/model"
)

// DefaultPollInterval is how often the status endpoint is polled while
// the gate is open
const DefaultPollInterval = 2 * time.Second

// GameAPI is the slice of the API client the watcher needs
type GameAPI interface {
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	GetGameStatus(ctx context.Context, id model.GameID) (*model.StatusDelta, error)
}

// SnapshotCache persists last-known snapshots for offline display.
// Saves are best-effort; failures are logged, never surfaced.
type SnapshotCache interface {
	SaveSnapshot(ctx context.Context, game *model.Game) error
}

// UpdateFunc is invoked after every applied response with the new
// snapshot and its resolved phase
type UpdateFunc func(game *model.Game, phase model.Phase)

// WatcherConfig configures a Watcher
type WatcherConfig struct {
	API      GameAPI
	Cache    SnapshotCache // optional
	Logger   *slog.Logger
	Interval time.Duration // defaults to DefaultPollInterval
	OnUpdate UpdateFunc    // optional
}

// Watcher drives the sync loop for one game at a time: bind the store,
// perform a full reload, then poll the status endpoint and merge
// deltas until stopped or retargeted.
type Watcher struct {
	api      GameAPI
	store    *Store
	poller   *Poller
	cache    SnapshotCache
	logger   *slog.Logger
	interval time.Duration
	onUpdate UpdateFunc
}

// NewWatcher creates a watcher around a fresh store and poller
func NewWatcher(cfg WatcherConfig) *Watcher {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{
		api:      cfg.API,
		store:    NewStore(),
		poller:   NewPoller(cfg.Logger),
		cache:    cfg.Cache,
		logger:   cfg.Logger,
		interval: interval,
		onUpdate: cfg.OnUpdate,
	}
}

// Store exposes the snapshot store
func (w *Watcher) Store() *Store {
	return w.store
}

// Poller exposes the poll schedule
func (w *Watcher) Poller() *Poller {
	return w.poller
}

// Watch binds to a game and starts the reload/poll loop. Watching a
// different game retargets: the old schedule is cancelled and responses
// to requests against the old id are dropped by the store. The initial
// full reload's error is returned, but polling starts regardless so a
// transient failure recovers on the next tick.
func (w *Watcher) Watch(ctx context.Context, id model.GameID) error {
	w.poller.Stop()
	w.store.Bind(id)

	err := w.FullReload(ctx)
	w.poller.Start(ctx, w.interval, w.statusTick)
	return err
}

// Stop cancels the poll schedule. Must be called when the owning view
// is torn down.
func (w *Watcher) Stop() {
	w.poller.Stop()
}

// FullReload fetches and installs a complete snapshot. Called on watch
// start and after every successful user action.
func (w *Watcher) FullReload(ctx context.Context) error {
	id := w.store.GameID()
	ticket := w.store.Issue()

	game, err := w.api.GetGame(ctx, id)
	if err != nil {
		return err
	}
	if err := w.store.Replace(ticket, game); err != nil {
		return err
	}
	w.afterApply(ctx)
	return nil
}

func (w *Watcher) statusTick(ctx context.Context) error {
	id := w.store.GameID()
	ticket := w.store.Issue()

	delta, err := w.api.GetGameStatus(ctx, id)
	if err != nil {
		return err
	}
	if err := w.store.Merge(ticket, delta); err != nil {
		return err
	}
	w.afterApply(ctx)
	return nil
}

func (w *Watcher) afterApply(ctx context.Context) {
	game := w.store.Snapshot()
	phase := model.ResolvePhase(game)

	// Nothing left to poll for once the game is decided
	w.poller.SetGate(phase != model.PhaseGameResults)

	if w.cache != nil && game != nil {
		if err := w.cache.SaveSnapshot(ctx, game); err != nil {
			w.logger.Warn("failed to cache snapshot",
				slog.String("game_id", string(game.ID)),
				slog.String("error", err.Error()))
		}
	}

	if w.onUpdate != nil {
		w.onUpdate(game, phase)
	}
}
