package gamesync

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/smeargame/smearcli/internal/model"
)

type StoreSuite struct {
	suite.Suite
	store *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.store = NewStore()
	s.store.Bind("game-7")
}

func statePtr(st model.GameState) *model.GameState { return &st }

func snapshot(id model.GameID, state model.GameState) *model.Game {
	return &model.Game{
		ID:    id,
		Name:  "Friday night smear",
		State: state,
		Players: []model.Player{
			{ID: "p-a", Name: "A"},
			{ID: "p-b", Name: "B"},
		},
		NumPlayers: 2,
	}
}

func (s *StoreSuite) TestReplaceInstallsSnapshot() {
	ticket := s.store.Issue()
	s.Require().NoError(s.store.Replace(ticket, snapshot("game-7", model.GameStateStarting)))

	got := s.store.Snapshot()
	s.Require().NotNil(got)
	s.Equal(model.GameID("game-7"), got.ID)
	s.Equal(model.GameStateStarting, got.State)
	s.Equal(model.PhaseWaitingRoom, s.store.Phase())
}

func (s *StoreSuite) TestMergeEmptyDeltaIsNoOp() {
	full := s.store.Issue()
	s.Require().NoError(s.store.Replace(full, snapshot("game-7", model.GameStateStarting)))
	before := s.store.Snapshot()

	status := s.store.Issue()
	s.Require().NoError(s.store.Merge(status, &model.StatusDelta{}))

	s.Equal(before, s.store.Snapshot())
}

func (s *StoreSuite) TestMergeOverwritesOnlyPresentFields() {
	full := s.store.Issue()
	s.Require().NoError(s.store.Replace(full, snapshot("game-7", model.GameStateStarting)))

	status := s.store.Issue()
	s.Require().NoError(s.store.Merge(status, &model.StatusDelta{
		State: statePtr(model.GameStateBidding),
	}))

	got := s.store.Snapshot()
	s.Equal(model.GameStateBidding, got.State)
	// Untouched fields survive the merge
	s.Equal("Friday night smear", got.Name)
	s.Len(got.Players, 2)
}

func (s *StoreSuite) TestStaleMergeAfterNewerReplaceIsDiscarded() {
	status := s.store.Issue()
	full := s.store.Issue()

	// Full reload's response lands first despite the status request
	// having been dispatched earlier
	s.Require().NoError(s.store.Replace(full, snapshot("game-7", model.GameStateBidding)))

	err := s.store.Merge(status, &model.StatusDelta{State: statePtr(model.GameStateStarting)})
	s.ErrorIs(err, ErrStaleResponse)
	s.Equal(model.GameStateBidding, s.store.Snapshot().State)
}

func (s *StoreSuite) TestInOrderResponsesBothApply() {
	status := s.store.Issue()
	full := s.store.Issue()

	s.Require().NoError(s.store.Merge(status, &model.StatusDelta{State: statePtr(model.GameStateStarting)}))
	s.Require().NoError(s.store.Replace(full, snapshot("game-7", model.GameStateBidding)))

	s.Equal(model.GameStateBidding, s.store.Snapshot().State)
}

func (s *StoreSuite) TestTicketFromOldBindingIsRejected() {
	old := s.store.Issue()

	// User navigates from game 7 to game 9 while the poll is in flight
	s.store.Bind("game-9")
	full := s.store.Issue()
	s.Require().NoError(s.store.Replace(full, snapshot("game-9", model.GameStateStarting)))

	err := s.store.Merge(old, &model.StatusDelta{State: statePtr(model.GameStateGameOver)})
	s.ErrorIs(err, ErrStaleResponse)

	got := s.store.Snapshot()
	s.Equal(model.GameID("game-9"), got.ID)
	s.Equal(model.GameStateStarting, got.State)
}

func (s *StoreSuite) TestBindDiscardsHeldSnapshot() {
	full := s.store.Issue()
	s.Require().NoError(s.store.Replace(full, snapshot("game-7", model.GameStateBidding)))

	s.store.Bind("game-9")
	s.Nil(s.store.Snapshot())
	s.Equal(model.PhaseLoading, s.store.Phase())
}

func (s *StoreSuite) TestRebindToSameGameKeepsSnapshot() {
	full := s.store.Issue()
	s.Require().NoError(s.store.Replace(full, snapshot("game-7", model.GameStateBidding)))

	s.store.Bind("game-7")
	s.NotNil(s.store.Snapshot())
}

func (s *StoreSuite) TestSnapshotIsACopy() {
	full := s.store.Issue()
	s.Require().NoError(s.store.Replace(full, snapshot("game-7", model.GameStateStarting)))

	got := s.store.Snapshot()
	got.Name = "mutated"
	got.Players[0].Name = "mutated"

	fresh := s.store.Snapshot()
	s.Equal("Friday night smear", fresh.Name)
	s.Equal("A", fresh.Players[0].Name)
}

func (s *StoreSuite) TestReplaceThenEmptyMergeEqualsReplaceAlone() {
	full := s.store.Issue()
	s.Require().NoError(s.store.Replace(full, snapshot("game-7", model.GameStateStarting)))
	reference := s.store.Snapshot()

	status := s.store.Issue()
	s.Require().NoError(s.store.Merge(status, &model.StatusDelta{}))
	s.Equal(reference, s.store.Snapshot())
}
