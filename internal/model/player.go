package model

// PlayerID uniquely identifies a player (a seat, human or computer)
type PlayerID string

// TeamID uniquely identifies a team
type TeamID string

// Player is one seat in a game
type Player struct {
	ID     PlayerID `json:"id"`
	Name   string   `json:"name"`
	UserID *string  `json:"user_id"` // nil for computer players
	TeamID *TeamID  `json:"team_id"` // nil until assigned to a team
	Winner bool     `json:"winner"`
}

// IsComputer reports whether the seat is played by the server
func (p *Player) IsComputer() bool {
	return p.UserID == nil
}

func (p *Player) clone() Player {
	out := *p
	if p.UserID != nil {
		v := *p.UserID
		out.UserID = &v
	}
	if p.TeamID != nil {
		v := *p.TeamID
		out.TeamID = &v
	}
	return out
}

// Team is an ordered grouping of players competing together
type Team struct {
	ID      TeamID     `json:"id"`
	Name    string     `json:"name"`
	Winner  bool       `json:"winner"`
	Players []PlayerID `json:"players"`
}

func (t *Team) clone() Team {
	out := *t
	if t.Players != nil {
		out.Players = make([]PlayerID, len(t.Players))
		copy(out.Players, t.Players)
	}
	return out
}

// TeamAssignment is the per-team membership list sent when starting a game
type TeamAssignment struct {
	ID      TeamID     `json:"id"`
	Players []PlayerID `json:"players"`
}
