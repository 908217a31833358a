// Package teams maintains the waiting-room partition of players into
// bench and team groups while a game is being assembled. The partition
// is view-local state; it is discarded once the game leaves the
// waiting room.
package teams

import (
	"github.com/smeargame/smearcli/internal/model"
)

// GroupKey identifies one group in the partition
type GroupKey string

// Bench is the pool of players not yet assigned to a team
const Bench GroupKey = "bench"

// TeamGroup returns the group key for a team
func TeamGroup(id model.TeamID) GroupKey {
	return GroupKey(id)
}

// Engine holds the partition: bench plus one ordered group per team.
// Every player known to the engine is in exactly one group.
type Engine struct {
	teamIDs []model.TeamID
	players []model.PlayerID // authoritative order from the last Reconcile
	groups  map[GroupKey][]model.PlayerID
}

// New creates an engine with the given teams and an empty bench
func New(teamIDs []model.TeamID) *Engine {
	e := &Engine{
		teamIDs: make([]model.TeamID, len(teamIDs)),
		groups:  make(map[GroupKey][]model.PlayerID, len(teamIDs)+1),
	}
	copy(e.teamIDs, teamIDs)
	e.groups[Bench] = []model.PlayerID{}
	for _, id := range teamIDs {
		e.groups[TeamGroup(id)] = []model.PlayerID{}
	}
	return e
}

// NewFromGame creates an engine for a game's teams and reconciles it
// against the game's current players
func NewFromGame(g *model.Game) *Engine {
	e := New(g.TeamIDs())
	e.Reconcile(g.PlayerIDs())
	return e
}

// TeamIDs returns the configured teams in order
func (e *Engine) TeamIDs() []model.TeamID {
	out := make([]model.TeamID, len(e.teamIDs))
	copy(out, e.teamIDs)
	return out
}

// Group returns the members of a group in order
func (e *Engine) Group(key GroupKey) []model.PlayerID {
	members, ok := e.groups[key]
	if !ok {
		return nil
	}
	out := make([]model.PlayerID, len(members))
	copy(out, members)
	return out
}

// GroupOf returns the group currently holding the player, or "" if the
// player is unknown
func (e *Engine) GroupOf(player model.PlayerID) GroupKey {
	for key, members := range e.groups {
		for _, id := range members {
			if id == player {
				return key
			}
		}
	}
	return ""
}

func (e *Engine) indexIn(key GroupKey, player model.PlayerID) int {
	for i, id := range e.groups[key] {
		if id == player {
			return i
		}
	}
	return -1
}

// Relocate removes the player from fromGroup and inserts it into
// toGroup at toIndex. If the player is not currently in fromGroup the
// call is a silent no-op: the authoritative list may have changed under
// an in-progress drag and that must not crash the view.
func (e *Engine) Relocate(player model.PlayerID, fromGroup GroupKey, toIndex int, toGroup GroupKey) {
	if _, ok := e.groups[fromGroup]; !ok {
		return
	}
	if _, ok := e.groups[toGroup]; !ok {
		return
	}

	i := e.indexIn(fromGroup, player)
	if i < 0 {
		return
	}

	from := e.groups[fromGroup]
	e.groups[fromGroup] = append(from[:i], from[i+1:]...)

	to := e.groups[toGroup]
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(to) {
		toIndex = len(to)
	}
	to = append(to, "")
	copy(to[toIndex+1:], to[toIndex:])
	to[toIndex] = player
	e.groups[toGroup] = to
}

// Reconcile brings the partition in line with a fresh authoritative
// player list: players the engine has never seen join the bench, and
// players no longer present are removed from whichever group holds
// them. Group membership and ordering of unaffected players is
// preserved; this is never a reset-and-rebuild.
func (e *Engine) Reconcile(players []model.PlayerID) {
	e.players = make([]model.PlayerID, len(players))
	copy(e.players, players)

	present := make(map[model.PlayerID]bool, len(players))
	for _, id := range players {
		present[id] = true
	}

	known := make(map[model.PlayerID]bool)
	for key, members := range e.groups {
		kept := members[:0]
		for _, id := range members {
			if present[id] {
				kept = append(kept, id)
				known[id] = true
			}
		}
		e.groups[key] = kept
	}

	for _, id := range players {
		if !known[id] {
			e.groups[Bench] = append(e.groups[Bench], id)
		}
	}
}

// AutoAssign deals the authoritative player list round-robin across the
// teams in player order, clearing the bench. With no teams configured
// it is a no-op.
func (e *Engine) AutoAssign() {
	n := len(e.teamIDs)
	if n == 0 {
		return
	}
	e.groups[Bench] = []model.PlayerID{}
	for _, id := range e.teamIDs {
		e.groups[TeamGroup(id)] = []model.PlayerID{}
	}
	for i, player := range e.players {
		key := TeamGroup(e.teamIDs[i%n])
		e.groups[key] = append(e.groups[key], player)
	}
}

// Reset moves every player back to the bench, in authoritative order
func (e *Engine) Reset() {
	for _, id := range e.teamIDs {
		e.groups[TeamGroup(id)] = []model.PlayerID{}
	}
	bench := make([]model.PlayerID, len(e.players))
	copy(bench, e.players)
	e.groups[Bench] = bench
}

// StartPayload emits the per-team membership lists used as the request
// body for starting the game. Teams with no members are included; the
// server decides whether that is acceptable.
func (e *Engine) StartPayload() []model.TeamAssignment {
	out := make([]model.TeamAssignment, 0, len(e.teamIDs))
	for _, id := range e.teamIDs {
		members := e.Group(TeamGroup(id))
		if members == nil {
			members = []model.PlayerID{}
		}
		out = append(out, model.TeamAssignment{ID: id, Players: members})
	}
	return out
}
