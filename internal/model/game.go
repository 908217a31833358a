package model

// GameID uniquely identifies a game
type GameID string

// GameState represents the server-side lifecycle state of a game.
// An empty state means the server has not reported one.
type GameState string

const (
	GameStateUnknown        GameState = ""
	GameStateStarting       GameState = "starting"
	GameStateBidding        GameState = "bidding"
	GameStateDeclaringTrump GameState = "declaring_trump"
	GameStatePlayingTrick   GameState = "playing_trick"
	GameStateHandOver       GameState = "hand_over"
	GameStateGameOver       GameState = "game_over"
)

// Game is the last-known snapshot of a single game as reported by the
// server. It is owned by the sync store; nothing else writes to it.
type Game struct {
	ID           GameID    `json:"id"`
	Name         string    `json:"name"`
	State        GameState `json:"state"`
	Players      []Player  `json:"players"`
	Teams        []Team    `json:"teams"`
	CurrentHand  *Hand     `json:"current_hand,omitempty"`
	NumPlayers   int       `json:"num_players"`
	NumTeams     int       `json:"num_teams"`
	SinglePlayer bool      `json:"single_player"`
	MustBidToWin bool      `json:"must_bid_to_win"`
}

// Player returns the player with the given id, or nil
func (g *Game) Player(id PlayerID) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// Team returns the team with the given id, or nil
func (g *Game) Team(id TeamID) *Team {
	for i := range g.Teams {
		if g.Teams[i].ID == id {
			return &g.Teams[i]
		}
	}
	return nil
}

// PlayerIDs returns the ids of all players in server order
func (g *Game) PlayerIDs() []PlayerID {
	ids := make([]PlayerID, len(g.Players))
	for i, p := range g.Players {
		ids[i] = p.ID
	}
	return ids
}

// TeamIDs returns the ids of all teams in server order
func (g *Game) TeamIDs() []TeamID {
	ids := make([]TeamID, len(g.Teams))
	for i, t := range g.Teams {
		ids[i] = t.ID
	}
	return ids
}

// HasWinner reports whether any player or team carries the terminal
// winner flag
func (g *Game) HasWinner() bool {
	for i := range g.Players {
		if g.Players[i].Winner {
			return true
		}
	}
	for i := range g.Teams {
		if g.Teams[i].Winner {
			return true
		}
	}
	return false
}

// PlayerCount returns the declared player count, falling back to the
// length of the player list when the server omits it
func (g *Game) PlayerCount() int {
	if g.NumPlayers > 0 {
		return g.NumPlayers
	}
	return len(g.Players)
}

// Clone returns a deep copy of the snapshot
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	out := *g
	if g.Players != nil {
		out.Players = make([]Player, len(g.Players))
		for i := range g.Players {
			out.Players[i] = g.Players[i].clone()
		}
	}
	if g.Teams != nil {
		out.Teams = make([]Team, len(g.Teams))
		for i := range g.Teams {
			out.Teams[i] = g.Teams[i].clone()
		}
	}
	out.CurrentHand = g.CurrentHand.Clone()
	return &out
}
