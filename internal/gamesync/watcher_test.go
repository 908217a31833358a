package gamesync

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/smeargame/smearcli/internal/model"
	"github.com/smeargame/smearcli/internal/testutil"
)

type fakeGameAPI struct {
	mu          sync.Mutex
	games       map[model.GameID]*model.Game
	deltas      map[model.GameID]*model.StatusDelta
	statusCalls map[model.GameID]int
}

func newFakeGameAPI() *fakeGameAPI {
	return &fakeGameAPI{
		games:       make(map[model.GameID]*model.Game),
		deltas:      make(map[model.GameID]*model.StatusDelta),
		statusCalls: make(map[model.GameID]int),
	}
}

func (f *fakeGameAPI) setGame(g *model.Game) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.games[g.ID] = g
}

func (f *fakeGameAPI) setDelta(id model.GameID, d *model.StatusDelta) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deltas[id] = d
}

func (f *fakeGameAPI) statusCallCount(id model.GameID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusCalls[id]
}

func (f *fakeGameAPI) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return g.Clone(), nil
}

func (f *fakeGameAPI) GetGameStatus(ctx context.Context, id model.GameID) (*model.StatusDelta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls[id]++
	if d, ok := f.deltas[id]; ok {
		return d, nil
	}
	return &model.StatusDelta{}, nil
}

type update struct {
	game  *model.Game
	phase model.Phase
}

type WatcherSuite struct {
	suite.Suite
	api     *fakeGameAPI
	updates chan update
	watcher *Watcher
}

func TestWatcherSuite(t *testing.T) {
	suite.Run(t, new(WatcherSuite))
}

func (s *WatcherSuite) SetupTest() {
	s.api = newFakeGameAPI()
	s.updates = make(chan update, 64)
	s.watcher = NewWatcher(WatcherConfig{
		API:      s.api,
		Logger:   testutil.NopLogger(),
		Interval: 5 * time.Millisecond,
		OnUpdate: func(g *model.Game, p model.Phase) {
			s.updates <- update{game: g, phase: p}
		},
	})
}

func (s *WatcherSuite) TearDownTest() {
	s.watcher.Stop()
}

func (s *WatcherSuite) waitFor(match func(update) bool) update {
	s.T().Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case u := <-s.updates:
			if match(u) {
				return u
			}
		case <-deadline:
			s.FailNow("timed out waiting for update")
			return update{}
		}
	}
}

func (s *WatcherSuite) waitForPhase(phase model.Phase) update {
	s.T().Helper()
	return s.waitFor(func(u update) bool { return u.phase == phase })
}

func (s *WatcherSuite) TestWatchPerformsInitialFullReload() {
	s.api.setGame(snapshot("game-7", model.GameStateStarting))

	s.Require().NoError(s.watcher.Watch(context.Background(), "game-7"))

	u := s.waitForPhase(model.PhaseWaitingRoom)
	s.Equal(model.GameID("game-7"), u.game.ID)
	s.True(s.watcher.Poller().Running())
}

func (s *WatcherSuite) TestStatusPollMergesDelta() {
	s.api.setGame(snapshot("game-7", model.GameStateStarting))
	s.Require().NoError(s.watcher.Watch(context.Background(), "game-7"))
	s.waitForPhase(model.PhaseWaitingRoom)

	s.api.setDelta("game-7", &model.StatusDelta{State: statePtr(model.GameStateBidding)})

	// The poll merges only the changed field; the rest of the full
	// snapshot survives
	u := s.waitFor(func(u update) bool {
		return u.game != nil && u.game.State == model.GameStateBidding
	})
	s.Equal("Friday night smear", u.game.Name)
}

func (s *WatcherSuite) TestGateClosesOnceGameIsDecided() {
	g := snapshot("game-7", model.GameStateGameOver)
	s.api.setGame(g)

	s.Require().NoError(s.watcher.Watch(context.Background(), "game-7"))
	s.waitForPhase(model.PhaseGameResults)

	s.False(s.watcher.Poller().Gate())
	calls := s.api.statusCallCount("game-7")
	time.Sleep(30 * time.Millisecond)
	s.Equal(calls, s.api.statusCallCount("game-7"))
}

func (s *WatcherSuite) TestRetargetSwitchesGames() {
	s.api.setGame(snapshot("game-7", model.GameStateStarting))
	s.api.setGame(snapshot("game-9", model.GameStateStarting))

	s.Require().NoError(s.watcher.Watch(context.Background(), "game-7"))
	s.waitForPhase(model.PhaseWaitingRoom)

	s.Require().NoError(s.watcher.Watch(context.Background(), "game-9"))

	got := s.watcher.Store().Snapshot()
	s.Equal(model.GameID("game-9"), got.ID)

	// Polling against the old id stops once retargeted
	old := s.api.statusCallCount("game-7")
	time.Sleep(30 * time.Millisecond)
	s.Equal(old, s.api.statusCallCount("game-7"))
}

func (s *WatcherSuite) TestWatchSurfacesInitialLoadErrorButKeepsPolling() {
	err := s.watcher.Watch(context.Background(), "game-7")
	s.Error(err)
	s.True(s.watcher.Poller().Running())

	// The game appearing later recovers on a subsequent full reload
	s.api.setGame(snapshot("game-7", model.GameStateStarting))
	s.Require().NoError(s.watcher.FullReload(context.Background()))
	s.Equal(model.PhaseWaitingRoom, s.watcher.Store().Phase())
}

func (s *WatcherSuite) TestFullReloadReplacesSnapshotWholesale() {
	s.api.setGame(snapshot("game-7", model.GameStateStarting))
	s.Require().NoError(s.watcher.Watch(context.Background(), "game-7"))
	s.waitForPhase(model.PhaseWaitingRoom)

	next := snapshot("game-7", model.GameStateBidding)
	next.CurrentHand = &model.Hand{ID: "h-1"}
	s.api.setGame(next)

	s.Require().NoError(s.watcher.FullReload(context.Background()))
	s.Equal(model.PhaseBidding, s.watcher.Store().Phase())
}
