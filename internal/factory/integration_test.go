package factory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/smeargame/smearcli/internal/action"
	"github.com/smeargame/smearcli/internal/model"
	"github.com/smeargame/smearcli/internal/session"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.app.AddUser("alice@example.com", "hunter2", session.User{
		ID:    "u-alice",
		Name:  "Alice",
		Email: "alice@example.com",
	})
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	s.app.Shutdown()
}

// Test: the full client flow from login to a playable hand, with the
// watcher observing every transition
func (s *IntegrationSuite) TestCompleteClientFlow() {
	// Step 1: Sign in and persist the session
	creds, err := s.app.Client.Login(s.ctx, "alice@example.com", "hunter2")
	s.Require().NoError(err)
	s.Require().NoError(s.app.Store.SaveSession(s.ctx, creds))
	ctx := session.WithCredentials(s.ctx, creds)

	// Step 2: A lobby appears on the server; join it and seat a computer
	s.app.Fake.AddGame(&model.Game{
		ID:    "game-1",
		Name:  "Friday night smear",
		State: model.GameStateStarting,
		Teams: []model.Team{
			{ID: "t-1", Name: "Us"},
			{ID: "t-2", Name: "Them"},
		},
	})
	s.Require().NoError(s.app.Client.JoinGame(ctx, "game-1", ""))
	bot, err := s.app.Client.AddComputerPlayer(ctx, "game-1")
	s.Require().NoError(err)

	// Step 3: Start watching; the initial reload lands in the store
	var mu sync.Mutex
	var phases []model.Phase
	watcher := s.app.NewWatcher(func(game *model.Game, phase model.Phase) {
		mu.Lock()
		defer mu.Unlock()
		if len(phases) == 0 || phases[len(phases)-1] != phase {
			phases = append(phases, phase)
		}
	})
	defer watcher.Stop()

	s.Require().NoError(watcher.Watch(ctx, "game-1"))
	s.Equal(model.PhaseWaitingRoom, watcher.Store().Phase())

	// Step 4: Start the game with Alice and the computer on opposite teams
	snapshot := watcher.Store().Snapshot()
	var me model.PlayerID
	for _, p := range snapshot.Players {
		if !p.IsComputer() {
			me = p.ID
		}
	}
	submitter := action.NewSubmitter(watcher.FullReload, s.app.Logger)
	err = submitter.Submit(ctx, "start_game", func(ctx context.Context) error {
		return s.app.Client.StartGame(ctx, "game-1", []model.TeamAssignment{
			{ID: "t-1", Players: []model.PlayerID{me}},
			{ID: "t-2", Players: []model.PlayerID{bot.ID}},
		})
	})
	s.Require().NoError(err)
	s.Equal(model.PhaseBidding, watcher.Store().Phase())

	// Step 5: Bid; the computer passes, so Alice wins the bid
	hand := watcher.Store().Snapshot().CurrentHand
	err = submitter.Submit(ctx, "submit_bid", func(ctx context.Context) error {
		return s.app.Client.SubmitBid(ctx, "game-1", hand.ID, 3)
	})
	s.Require().NoError(err)
	s.Equal(model.PhaseDeclaringTrump, watcher.Store().Phase())

	// Step 6: Declare trump and play the first card of the hand
	hand = watcher.Store().Snapshot().CurrentHand
	err = submitter.Submit(ctx, "declare_trump", func(ctx context.Context) error {
		return s.app.Client.DeclareTrump(ctx, "game-1", hand.ID, *hand.HighBid, "spades")
	})
	s.Require().NoError(err)
	s.Equal(model.PhasePlayingTrick, watcher.Store().Phase())

	hand = watcher.Store().Snapshot().CurrentHand
	err = submitter.Submit(ctx, "play_card", func(ctx context.Context) error {
		return s.app.Client.PlayCard(ctx, "game-1", hand.ID, hand.Trick.ID, hand.Cards[0])
	})
	s.Require().NoError(err)
	s.Equal(model.PhasePlayingTrick, watcher.Store().Phase())

	// The watcher saw every phase in order, no flicker backwards
	mu.Lock()
	defer mu.Unlock()
	s.Equal([]model.Phase{
		model.PhaseWaitingRoom,
		model.PhaseBidding,
		model.PhaseDeclaringTrump,
		model.PhasePlayingTrick,
	}, phases)
}

// Test: a game ending closes the poll gate and the cached snapshot
// survives for later display
func (s *IntegrationSuite) TestGameOverStopsPollingAndCaches() {
	creds, err := s.app.Client.Login(s.ctx, "alice@example.com", "hunter2")
	s.Require().NoError(err)
	ctx := session.WithCredentials(s.ctx, creds)

	s.app.Fake.AddGame(&model.Game{
		ID:    "game-9",
		Name:  "Finished game",
		State: model.GameStateGameOver,
		Players: []model.Player{
			{ID: "p-1", Name: "Alice", Winner: true},
		},
	})

	watcher := s.app.NewWatcher(nil)
	defer watcher.Stop()

	s.Require().NoError(watcher.Watch(ctx, "game-9"))
	s.Equal(model.PhaseGameResults, watcher.Store().Phase())
	s.False(watcher.Poller().Gate())

	cached, err := s.app.Store.GetSnapshot(s.ctx, "game-9")
	s.Require().NoError(err)
	s.Equal(model.GameStateGameOver, cached.State)
}

// Test: the session survives a restart via the store
func (s *IntegrationSuite) TestSessionRoundTrip() {
	creds, err := s.app.Client.Login(s.ctx, "alice@example.com", "hunter2")
	s.Require().NoError(err)
	s.Require().NoError(s.app.Store.SaveSession(s.ctx, creds))

	restored, err := s.app.Store.GetSession(s.ctx)
	s.Require().NoError(err)
	ctx := session.WithCredentials(s.ctx, restored)

	s.app.Fake.AddGame(&model.Game{ID: "game-1", State: model.GameStateStarting})
	game, err := s.app.Client.GetGame(ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.GameID("game-1"), game.ID)

	// Logout invalidates it
	s.Require().NoError(s.app.Client.Logout(ctx))
	_, err = s.app.Client.GetGame(ctx, "game-1")
	s.Error(err)

	// Poll interval default sanity
	s.Less(s.app.PollInterval, time.Second)
}
