package gamesync

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// TickFunc is one poll attempt
type TickFunc func(ctx context.Context) error

// Poller runs a tick function on a fixed interval behind a gate. A
// closed gate keeps the timer alive but makes ticks no-ops, so the
// owning view holds one long-lived schedule instead of tearing timers
// down whenever the need to poll changes. Stop must be called when the
// owning view goes away; the schedule never outlives its context.
type Poller struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	gate   atomic.Bool
	logger *slog.Logger
}

// NewPoller creates a stopped poller with an open gate
func NewPoller(logger *slog.Logger) *Poller {
	p := &Poller{logger: logger}
	p.gate.Store(true)
	return p
}

// Start schedules tick every interval until Stop is called or ctx is
// cancelled. Any previous schedule is stopped first.
func (p *Poller) Start(ctx context.Context, interval time.Duration, tick TickFunc) {
	p.Stop()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	p.mu.Lock()
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	go p.run(ctx, interval, tick, done)
}

func (p *Poller) run(ctx context.Context, interval time.Duration, tick TickFunc, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.gate.Load() {
				continue
			}
			if err := tick(ctx); err != nil {
				if errors.Is(err, ErrStaleResponse) || errors.Is(err, context.Canceled) {
					continue
				}
				// A transient poll failure must not block an active
				// game; log and keep polling.
				p.logger.Warn("poll tick failed", slog.String("error", err.Error()))
			}
		}
	}
}

// SetGate opens or closes the gate. Ticks while the gate is closed do
// not issue network calls.
func (p *Poller) SetGate(open bool) {
	p.gate.Store(open)
}

// Gate reports whether ticks currently issue network calls
func (p *Poller) Gate() bool {
	return p.gate.Load()
}

// Running reports whether a schedule is active
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Stop cancels the schedule unconditionally and waits for the loop to
// exit. Stopping a stopped poller is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}
