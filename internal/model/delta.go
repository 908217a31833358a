package model

// StatusDelta is the partial snapshot returned by the cheap status
// endpoint. Fields left nil were not sent and must not be touched when
// the delta is merged; this keeps the status payload distinct from a
// full snapshot at the type level instead of relying on duck-typed
// merging.
type StatusDelta struct {
	Name         *string    `json:"name,omitempty"`
	State        *GameState `json:"state,omitempty"`
	Players      []Player   `json:"players,omitempty"`
	Teams        []Team     `json:"teams,omitempty"`
	CurrentHand  *Hand      `json:"current_hand,omitempty"`
	NumPlayers   *int       `json:"num_players,omitempty"`
	NumTeams     *int       `json:"num_teams,omitempty"`
	SinglePlayer *bool      `json:"single_player,omitempty"`
	MustBidToWin *bool      `json:"must_bid_to_win,omitempty"`
}

// IsEmpty reports whether the delta carries no fields at all
func (d *StatusDelta) IsEmpty() bool {
	return d == nil || (d.Name == nil &&
		d.State == nil &&
		d.Players == nil &&
		d.Teams == nil &&
		d.CurrentHand == nil &&
		d.NumPlayers == nil &&
		d.NumTeams == nil &&
		d.SinglePlayer == nil &&
		d.MustBidToWin == nil)
}

// ApplyTo overwrites every field present in the delta on the given
// snapshot, leaving absent fields untouched
func (d *StatusDelta) ApplyTo(g *Game) {
	if d == nil || g == nil {
		return
	}
	if d.Name != nil {
		g.Name = *d.Name
	}
	if d.State != nil {
		g.State = *d.State
	}
	if d.Players != nil {
		players := make([]Player, len(d.Players))
		for i := range d.Players {
			players[i] = d.Players[i].clone()
		}
		g.Players = players
	}
	if d.Teams != nil {
		teams := make([]Team, len(d.Teams))
		for i := range d.Teams {
			teams[i] = d.Teams[i].clone()
		}
		g.Teams = teams
	}
	if d.CurrentHand != nil {
		g.CurrentHand = d.CurrentHand.Clone()
	}
	if d.NumPlayers != nil {
		g.NumPlayers = *d.NumPlayers
	}
	if d.NumTeams != nil {
		g.NumTeams = *d.NumTeams
	}
	if d.SinglePlayer != nil {
		g.SinglePlayer = *d.SinglePlayer
	}
	if d.MustBidToWin != nil {
		g.MustBidToWin = *d.MustBidToWin
	}
}
