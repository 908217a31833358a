package model

// Phase is the single render phase derived from a game snapshot.
// Exactly one phase applies to any snapshot.
type Phase string

const (
	PhaseLoading        Phase = "loading"
	PhaseWaitingRoom    Phase = "waiting_room"
	PhaseBidding        Phase = "bidding"
	PhaseDeclaringTrump Phase = "declaring_trump"
	PhasePlayingTrick   Phase = "playing_trick"
	PhaseHandResults    Phase = "hand_results"
	PhaseGameResults    Phase = "game_results"
	PhaseUnknown        Phase = "unknown"
)

// ResolvePhase maps a snapshot to its render phase. It is a pure
// function of the snapshot, evaluated first-match in precedence order,
// and never panics: snapshots that fit no rule resolve to PhaseUnknown,
// which callers render as a recoverable state.
func ResolvePhase(g *Game) Phase {
	if g == nil {
		return PhaseLoading
	}
	if g.State == GameStateStarting {
		return PhaseWaitingRoom
	}
	if g.State == GameStateGameOver || g.HasWinner() {
		return PhaseGameResults
	}
	h := g.CurrentHand
	if h == nil || h.GameOver {
		return PhaseGameResults
	}
	if h.HighBid == nil {
		if !h.BiddingClosed() {
			return PhaseBidding
		}
		// Bidding closed without a recorded winner; the next poll
		// should bring a consistent snapshot.
		return PhaseUnknown
	}
	if h.Trump == nil {
		return PhaseDeclaringTrump
	}
	if h.Trick != nil && !h.Trick.Complete(g.PlayerCount()) {
		return PhasePlayingTrick
	}
	return PhaseHandResults
}
