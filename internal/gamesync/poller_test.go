package gamesync

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/smeargame/smearcli/internal/testutil"
)

type PollerSuite struct {
	suite.Suite
	poller *Poller
}

func TestPollerSuite(t *testing.T) {
	suite.Run(t, new(PollerSuite))
}

func (s *PollerSuite) SetupTest() {
	s.poller = NewPoller(testutil.NopLogger())
}

func (s *PollerSuite) TearDownTest() {
	s.poller.Stop()
}

func (s *PollerSuite) TestTicksRunWhileGateOpen() {
	var ticks atomic.Int64
	s.poller.Start(context.Background(), 5*time.Millisecond, func(ctx context.Context) error {
		ticks.Add(1)
		return nil
	})

	s.Eventually(func() bool { return ticks.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func (s *PollerSuite) TestClosedGateSuppressesTicksWithoutStoppingTimer() {
	var ticks atomic.Int64
	s.poller.SetGate(false)
	s.poller.Start(context.Background(), 5*time.Millisecond, func(ctx context.Context) error {
		ticks.Add(1)
		return nil
	})

	time.Sleep(50 * time.Millisecond)
	s.EqualValues(0, ticks.Load())
	s.True(s.poller.Running())

	// Reopening the gate resumes ticks on the same schedule
	s.poller.SetGate(true)
	s.Eventually(func() bool { return ticks.Load() >= 1 }, time.Second, 5*time.Millisecond)
}

func (s *PollerSuite) TestStopCancelsSchedule() {
	var ticks atomic.Int64
	s.poller.Start(context.Background(), 5*time.Millisecond, func(ctx context.Context) error {
		ticks.Add(1)
		return nil
	})
	s.Eventually(func() bool { return ticks.Load() >= 1 }, time.Second, 5*time.Millisecond)

	s.poller.Stop()
	s.False(s.poller.Running())

	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	s.Equal(after, ticks.Load())
}

func (s *PollerSuite) TestStopIsIdempotent() {
	s.poller.Start(context.Background(), time.Hour, func(ctx context.Context) error { return nil })
	s.poller.Stop()
	s.poller.Stop()
	s.False(s.poller.Running())
}

func (s *PollerSuite) TestStartReplacesPreviousSchedule() {
	var first, second atomic.Int64
	s.poller.Start(context.Background(), 5*time.Millisecond, func(ctx context.Context) error {
		first.Add(1)
		return nil
	})
	s.Eventually(func() bool { return first.Load() >= 1 }, time.Second, 5*time.Millisecond)

	s.poller.Start(context.Background(), 5*time.Millisecond, func(ctx context.Context) error {
		second.Add(1)
		return nil
	})
	s.Eventually(func() bool { return second.Load() >= 1 }, time.Second, 5*time.Millisecond)

	stale := first.Load()
	time.Sleep(30 * time.Millisecond)
	s.Equal(stale, first.Load())
}

func (s *PollerSuite) TestTickErrorsDoNotStopPolling() {
	var ticks atomic.Int64
	s.poller.Start(context.Background(), 5*time.Millisecond, func(ctx context.Context) error {
		ticks.Add(1)
		if ticks.Load()%2 == 1 {
			return errors.New("transient")
		}
		return nil
	})

	s.Eventually(func() bool { return ticks.Load() >= 4 }, time.Second, 5*time.Millisecond)
}

func (s *PollerSuite) TestContextCancellationStopsSchedule() {
	ctx, cancel := context.WithCancel(context.Background())
	var ticks atomic.Int64
	s.poller.Start(ctx, 5*time.Millisecond, func(ctx context.Context) error {
		ticks.Add(1)
		return nil
	})
	s.Eventually(func() bool { return ticks.Load() >= 1 }, time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	s.Equal(after, ticks.Load())
}
