package model

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type PhaseSuite struct {
	suite.Suite
}

func TestPhaseSuite(t *testing.T) {
	suite.Run(t, new(PhaseSuite))
}

func strPtr(s string) *string { return &s }

func bidIDPtr(id BidID) *BidID { return &id }

func playerIDPtr(id PlayerID) *PlayerID { return &id }

func fourPlayers() []Player {
	return []Player{
		{ID: "p-a", Name: "A"},
		{ID: "p-b", Name: "B"},
		{ID: "p-c", Name: "C"},
		{ID: "p-d", Name: "D"},
	}
}

func (s *PhaseSuite) TestNilGameIsLoading() {
	s.Equal(PhaseLoading, ResolvePhase(nil))
}

func (s *PhaseSuite) TestStartingIsWaitingRoom() {
	g := &Game{
		ID:      "g-1",
		State:   GameStateStarting,
		Players: fourPlayers(),
		Teams:   []Team{{ID: "t-1"}, {ID: "t-2"}},
	}
	s.Equal(PhaseWaitingRoom, ResolvePhase(g))
}

func (s *PhaseSuite) TestGameOverStateIsGameResults() {
	g := &Game{ID: "g-1", State: GameStateGameOver}
	s.Equal(PhaseGameResults, ResolvePhase(g))
}

func (s *PhaseSuite) TestWinnerPresentIsGameResults() {
	g := &Game{
		ID:      "g-1",
		State:   GameStatePlayingTrick,
		Players: []Player{{ID: "p-a", Winner: true}},
		CurrentHand: &Hand{
			ID:      "h-1",
			HighBid: bidIDPtr("b-1"),
			Trump:   strPtr("S"),
		},
	}
	s.Equal(PhaseGameResults, ResolvePhase(g))
}

func (s *PhaseSuite) TestMissingHandIsGameResults() {
	g := &Game{ID: "g-1", State: GameStateBidding}
	s.Equal(PhaseGameResults, ResolvePhase(g))
}

func (s *PhaseSuite) TestTerminalHandIsGameResults() {
	g := &Game{
		ID:          "g-1",
		State:       GameStateHandOver,
		CurrentHand: &Hand{ID: "h-1", GameOver: true},
	}
	s.Equal(PhaseGameResults, ResolvePhase(g))
}

func (s *PhaseSuite) TestNoHighBidIsBidding() {
	g := &Game{
		ID:          "g-1",
		State:       GameStateBidding,
		Players:     fourPlayers(),
		CurrentHand: &Hand{ID: "h-1"},
	}
	s.Equal(PhaseBidding, ResolvePhase(g))
}

func (s *PhaseSuite) TestHighBidWithoutTrumpIsDeclaringTrump() {
	g := &Game{
		ID:      "g-1",
		State:   GameStateDeclaringTrump,
		Players: fourPlayers(),
		CurrentHand: &Hand{
			ID:      "h-1",
			Bids:    []Bid{{ID: "b-1", Player: "p-a", Value: 3}},
			HighBid: bidIDPtr("b-1"),
			Bidder:  playerIDPtr("p-a"),
		},
	}
	s.Equal(PhaseDeclaringTrump, ResolvePhase(g))
}

func (s *PhaseSuite) TestBidSubmissionAdvancesBiddingToDeclaringTrump() {
	h := &Hand{ID: "h-1"}
	g := &Game{
		ID:          "g-1",
		State:       GameStateBidding,
		Players:     fourPlayers(),
		CurrentHand: h,
	}
	s.Equal(PhaseBidding, ResolvePhase(g))

	h.Bids = []Bid{{ID: "b-1", Player: "p-a", Value: 3}}
	h.HighBid = bidIDPtr("b-1")
	s.Equal(PhaseDeclaringTrump, ResolvePhase(g))
}

func (s *PhaseSuite) TestOpenTrickIsPlayingTrick() {
	g := &Game{
		ID:      "g-1",
		State:   GameStatePlayingTrick,
		Players: fourPlayers(),
		CurrentHand: &Hand{
			ID:      "h-1",
			Bids:    []Bid{{ID: "b-1", Player: "p-a", Value: 3}},
			HighBid: bidIDPtr("b-1"),
			Trump:   strPtr("S"),
			Trick: &Trick{
				ID:           "tr-1",
				ActivePlayer: playerIDPtr("p-b"),
				Plays:        []Play{{Player: "p-a", Card: "AS"}},
			},
		},
	}
	s.Equal(PhasePlayingTrick, ResolvePhase(g))
}

func (s *PhaseSuite) TestClosedTrickIsHandResults() {
	g := &Game{
		ID:      "g-1",
		State:   GameStateHandOver,
		Players: fourPlayers(),
		CurrentHand: &Hand{
			ID:      "h-1",
			Bids:    []Bid{{ID: "b-1", Player: "p-a", Value: 3}},
			HighBid: bidIDPtr("b-1"),
			Trump:   strPtr("S"),
			Trick: &Trick{
				ID: "tr-1",
				Plays: []Play{
					{Player: "p-a", Card: "AS"},
					{Player: "p-b", Card: "KS"},
					{Player: "p-c", Card: "QS"},
					{Player: "p-d", Card: "JS"},
				},
			},
		},
	}
	s.Equal(PhaseHandResults, ResolvePhase(g))
}

func (s *PhaseSuite) TestMissingTrickWithTrumpIsHandResults() {
	g := &Game{
		ID:      "g-1",
		State:   GameStatePlayingTrick,
		Players: fourPlayers(),
		CurrentHand: &Hand{
			ID:      "h-1",
			Bids:    []Bid{{ID: "b-1", Player: "p-a", Value: 3}},
			HighBid: bidIDPtr("b-1"),
			Trump:   strPtr("H"),
		},
	}
	s.Equal(PhaseHandResults, ResolvePhase(g))
}

func (s *PhaseSuite) TestBidderWithoutHighBidIsUnknown() {
	g := &Game{
		ID:      "g-1",
		State:   GameStateBidding,
		Players: fourPlayers(),
		CurrentHand: &Hand{
			ID:     "h-1",
			Bidder: playerIDPtr("p-a"),
		},
	}
	s.Equal(PhaseUnknown, ResolvePhase(g))
}

func (s *PhaseSuite) TestResolveIsDeterministic() {
	g := &Game{
		ID:          "g-1",
		State:       GameStateBidding,
		Players:     fourPlayers(),
		CurrentHand: &Hand{ID: "h-1"},
	}
	first := ResolvePhase(g)
	second := ResolvePhase(g)
	s.Equal(first, second)
}

func (s *PhaseSuite) TestResolveIsTotalOverOddSnapshots() {
	snapshots := []*Game{
		nil,
		{},
		{State: "garbage"},
		{State: GameStatePlayingTrick, CurrentHand: &Hand{}},
		{State: GameStateBidding, CurrentHand: &Hand{Trick: &Trick{}}},
		{Players: []Player{{ID: "p-a"}}, CurrentHand: &Hand{Trump: strPtr("S")}},
	}
	valid := map[Phase]bool{
		PhaseLoading:        true,
		PhaseWaitingRoom:    true,
		PhaseBidding:        true,
		PhaseDeclaringTrump: true,
		PhasePlayingTrick:   true,
		PhaseHandResults:    true,
		PhaseGameResults:    true,
		PhaseUnknown:        true,
	}
	for _, g := range snapshots {
		s.True(valid[ResolvePhase(g)])
	}
}
