package action

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/smeargame/smearcli/internal/testutil"
)

type SubmitterSuite struct {
	suite.Suite
	reloads atomic.Int64
}

func TestSubmitterSuite(t *testing.T) {
	suite.Run(t, new(SubmitterSuite))
}

func (s *SubmitterSuite) SetupTest() {
	s.reloads.Store(0)
}

func (s *SubmitterSuite) newSubmitter() *Submitter {
	return NewSubmitter(func(ctx context.Context) error {
		s.reloads.Add(1)
		return nil
	}, testutil.NopLogger())
}

func (s *SubmitterSuite) TestSuccessTriggersReload() {
	sub := s.newSubmitter()

	err := sub.Submit(context.Background(), "bid", func(ctx context.Context) error {
		return nil
	})
	s.Require().NoError(err)
	s.EqualValues(1, s.reloads.Load())
	s.False(sub.Loading())
}

func (s *SubmitterSuite) TestFailureReturnsErrorWithoutReload() {
	sub := s.newSubmitter()
	boom := errors.New("bid too low")

	err := sub.Submit(context.Background(), "bid", func(ctx context.Context) error {
		return boom
	})
	s.ErrorIs(err, boom)
	s.EqualValues(0, s.reloads.Load())
	s.False(sub.Loading())
}

func (s *SubmitterSuite) TestSecondSubmissionWhileInFlightIsRefused() {
	sub := s.newSubmitter()

	firstStarted := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int64

	go func() {
		_ = sub.Submit(context.Background(), "bid", func(ctx context.Context) error {
			calls.Add(1)
			close(firstStarted)
			<-release
			return nil
		})
	}()

	<-firstStarted
	s.True(sub.Loading())

	// Any action on the same game overlaps, not just a duplicate
	err := sub.Submit(context.Background(), "play_card", func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})
	s.ErrorIs(err, ErrActionInFlight)

	close(release)
	s.Eventually(func() bool { return !sub.Loading() }, time.Second, time.Millisecond)
	s.EqualValues(1, calls.Load())
}

func (s *SubmitterSuite) TestSubmitterIsReusableAfterCompletion() {
	sub := s.newSubmitter()

	for i := 0; i < 3; i++ {
		err := sub.Submit(context.Background(), "bid", func(ctx context.Context) error {
			return nil
		})
		s.Require().NoError(err)
	}
	s.EqualValues(3, s.reloads.Load())
}

func (s *SubmitterSuite) TestFailedReloadDoesNotFailTheAction() {
	sub := NewSubmitter(func(ctx context.Context) error {
		return errors.New("poll hiccup")
	}, testutil.NopLogger())

	err := sub.Submit(context.Background(), "bid", func(ctx context.Context) error {
		return nil
	})
	s.NoError(err)
}
