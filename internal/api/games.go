package api

import (
	"context"
	"fmt"

	"github.com/smeargame/smearcli/internal/model"
)

// Request payloads for game endpoints

type joinRequest struct {
	Passcode string `json:"passcode,omitempty"`
}

type addPlayerResponse struct {
	Player model.Player `json:"player"`
}

type removePlayerRequest struct {
	ID model.PlayerID `json:"id"`
}

type startRequest struct {
	Teams []model.TeamAssignment `json:"teams"`
}

type bidRequest struct {
	Bid int `json:"bid"`
}

type trumpRequest struct {
	Trump string `json:"trump"`
}

type playRequest struct {
	Card string `json:"card"`
}

type scoresResponse struct {
	Scores []model.ScoreSeries `json:"scores"`
}

// GetGame fetches the full snapshot of a game
func (c *Client) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var game model.Game
	if err := c.Get(ctx, fmt.Sprintf("/games/%s", id), &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// GetGameStatus fetches the cheap partial snapshot polled between full
// reloads
func (c *Client) GetGameStatus(ctx context.Context, id model.GameID) (*model.StatusDelta, error) {
	var delta model.StatusDelta
	if err := c.Get(ctx, fmt.Sprintf("/games/%s/status", id), &delta); err != nil {
		return nil, err
	}
	return &delta, nil
}

// JoinGame joins a game, with an optional passcode for private games
func (c *Client) JoinGame(ctx context.Context, id model.GameID, passcode string) error {
	return c.Post(ctx, fmt.Sprintf("/games/%s/join", id), joinRequest{Passcode: passcode}, nil)
}

// DeleteGame cancels a game the caller manages
func (c *Client) DeleteGame(ctx context.Context, id model.GameID) error {
	return c.Delete(ctx, fmt.Sprintf("/games/%s", id), nil)
}

// AddComputerPlayer asks the server to seat a computer player and
// returns the created player
func (c *Client) AddComputerPlayer(ctx context.Context, id model.GameID) (*model.Player, error) {
	var resp addPlayerResponse
	if err := c.Post(ctx, fmt.Sprintf("/games/%s/player", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Player, nil
}

// RemovePlayer removes a player from a game that has not started
func (c *Client) RemovePlayer(ctx context.Context, id model.GameID, playerID model.PlayerID) error {
	return c.Delete(ctx, fmt.Sprintf("/games/%s/player", id), removePlayerRequest{ID: playerID})
}

// StartGame starts the game with the given team assignments
func (c *Client) StartGame(ctx context.Context, id model.GameID, teams []model.TeamAssignment) error {
	if teams == nil {
		teams = []model.TeamAssignment{}
	}
	return c.Post(ctx, fmt.Sprintf("/games/%s/start", id), startRequest{Teams: teams}, nil)
}

// SubmitBid submits a bid for the current hand. A bid of zero passes.
func (c *Client) SubmitBid(ctx context.Context, gameID model.GameID, handID model.HandID, bid int) error {
	return c.Post(ctx, fmt.Sprintf("/games/%s/hands/%s/bids", gameID, handID), bidRequest{Bid: bid}, nil)
}

// DeclareTrump sets the trump suit on the winning bid
func (c *Client) DeclareTrump(ctx context.Context, gameID model.GameID, handID model.HandID, bidID model.BidID, trump string) error {
	return c.Patch(ctx, fmt.Sprintf("/games/%s/hands/%s/bids/%s", gameID, handID, bidID), trumpRequest{Trump: trump}, nil)
}

// PlayCard plays a card into the current trick
func (c *Client) PlayCard(ctx context.Context, gameID model.GameID, handID model.HandID, trickID model.TrickID, card string) error {
	return c.Post(ctx, fmt.Sprintf("/games/%s/hands/%s/tricks/%s/plays", gameID, handID, trickID), playRequest{Card: card}, nil)
}

// ToggleAutoPilot toggles server-side play for the caller's seat
func (c *Client) ToggleAutoPilot(ctx context.Context, id model.GameID) error {
	return c.Post(ctx, fmt.Sprintf("/games/%s/auto_pilot", id), nil, nil)
}

// GetScores fetches the per-contestant score history for charting
func (c *Client) GetScores(ctx context.Context, id model.GameID) ([]model.ScoreSeries, error) {
	var resp scoresResponse
	if err := c.Get(ctx, fmt.Sprintf("/games/%s/scores", id), &resp); err != nil {
		return nil, err
	}
	return resp.Scores, nil
}
