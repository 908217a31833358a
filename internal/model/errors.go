package model

import "errors"

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrNoCurrentHand  = errors.New("game has no current hand")
	ErrNoCurrentTrick = errors.New("hand has no current trick")
	ErrNoWinningBid   = errors.New("hand has no winning bid")

	// Local store errors
	ErrNoSession        = errors.New("no stored session")
	ErrSnapshotNotFound = errors.New("no cached snapshot for game")
)
