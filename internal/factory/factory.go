// Package factory wires the client's components together for the CLI
// and for integration tests.
package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/smeargame/smearcli/internal/api"
	"github.com/smeargame/smearcli/internal/dependencies/clock"
	"github.com/smeargame/smearcli/internal/dependencies/random"
	"github.com/smeargame/smearcli/internal/gamesync"
	"github.com/smeargame/smearcli/internal/store"
	filestore "github.com/smeargame/smearcli/internal/store/file"
	"github.com/smeargame/smearcli/internal/store/memory"
	redisstore "github.com/smeargame/smearcli/internal/store/redis"
)

// Store type constants
const (
	StoreTypeMemory = "memory"
	StoreTypeFile   = "file"
	StoreTypeRedis  = "redis"
)

// App contains all wired client components
type App struct {
	// Local persistence
	Store store.Store

	// Server API
	Client *api.Client

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	Logger       *slog.Logger
	PollInterval time.Duration
}

// Config holds configuration for the client factory
type Config struct {
	// ServerURL is the base URL of the Smear server's JSON API
	ServerURL string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StoreType selects the local store backend ("memory", "file" or "redis")
	// If empty, defaults to "file"
	StoreType string
	// StoreDir is the directory for the file store (optional)
	// If empty, defaults to the conventional location under $HOME
	StoreDir string
	// RedisConfig holds Redis connection settings (required if StoreType is "redis")
	RedisConfig *redisstore.Config
	// PollInterval overrides the default status poll cadence (optional)
	PollInterval time.Duration
}

// New creates a new client app with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if cfg.ServerURL == "" {
		return nil, errors.New("ServerURL is required")
	}

	storeType := cfg.StoreType
	if storeType == "" {
		storeType = StoreTypeFile
	}

	var st store.Store
	switch storeType {
	case StoreTypeMemory:
		st = memory.New()
	case StoreTypeFile:
		dir := cfg.StoreDir
		if dir == "" {
			dir = filestore.DefaultDir()
		}
		st = filestore.New(dir)
	case StoreTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StoreType is redis")
		}
		redisStore, err := redisstore.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		st = redisStore
	default:
		return nil, errors.New("invalid StoreType: must be 'memory', 'file' or 'redis'")
	}

	interval := cfg.PollInterval
	if interval <= 0 {
		interval = gamesync.DefaultPollInterval
	}

	return &App{
		Store:        st,
		Client:       api.NewClient(cfg.ServerURL, logger),
		Clock:        clock.New(),
		Random:       random.New(),
		Logger:       logger,
		PollInterval: interval,
	}, nil
}

// NewWatcher creates a watcher bound to the app's client and store
func (a *App) NewWatcher(onUpdate gamesync.UpdateFunc) *gamesync.Watcher {
	return gamesync.NewWatcher(gamesync.WatcherConfig{
		API:      a.Client,
		Cache:    a.Store,
		Logger:   a.Logger,
		Interval: a.PollInterval,
		OnUpdate: onUpdate,
	})
}

// Close releases any held resources, such as the redis connection pool
func (a *App) Close() error {
	if closer, ok := a.Store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
