package ui

import (
	"fmt"
	"strings"

	"github.com/smeargame/smearcli/internal/model"
	"github.com/smeargame/smearcli/internal/teams"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title()))
	b.WriteString("\n\n")

	switch m.phase {
	case model.PhaseLoading:
		b.WriteString("Loading game state...\n")
	case model.PhaseWaitingRoom:
		b.WriteString(m.viewWaitingRoom())
	case model.PhaseBidding:
		b.WriteString(m.viewBidding())
	case model.PhaseDeclaringTrump:
		b.WriteString(m.viewDeclaringTrump())
	case model.PhasePlayingTrick:
		b.WriteString(m.viewPlayingTrick())
	case model.PhaseHandResults:
		b.WriteString(m.viewHandResults())
	case model.PhaseGameResults:
		b.WriteString(m.viewGameResults())
	default:
		b.WriteString("Waiting for the server to catch up...\n")
	}

	if m.errText != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errText))
		b.WriteString("\n")
	}
	if m.pending {
		b.WriteString("\n")
		b.WriteString(blurredStyle.Render("Sending..."))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) title() string {
	if m.game != nil && m.game.Name != "" {
		return fmt.Sprintf("Smear - %s", m.game.Name)
	}
	return fmt.Sprintf("Smear - %s", m.gameID)
}

func (m Model) help() string {
	switch m.phase {
	case model.PhaseWaitingRoom:
		return "j/k: select  1-9: assign team  b: bench  a: auto  r: reset  c: add computer  x: remove  s: start  q: quit"
	case model.PhaseBidding:
		return "0-9: bid (0 passes)  q: quit"
	case model.PhaseDeclaringTrump:
		return "s: spades  h: hearts  d: diamonds  c: clubs  q: quit"
	case model.PhasePlayingTrick:
		return "h/l: select card  enter: play  q: quit"
	default:
		return "q: quit"
	}
}

func (m Model) viewWaitingRoom() string {
	if m.game == nil || m.engine == nil {
		return ""
	}
	var b strings.Builder

	players := m.game.PlayerIDs()
	b.WriteString("Players:\n")
	for i, id := range players {
		line := playerName(m.game, id)
		if p := m.game.Player(id); p != nil && p.IsComputer() {
			line += " (computer)"
		}
		if group := m.engine.GroupOf(id); group != "" && group != teams.Bench {
			line += fmt.Sprintf("  [%s]", m.teamLabel(group))
		}
		if i == m.selected {
			b.WriteString(focusedStyle.Render("> " + line))
		} else {
			b.WriteString(blurredStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString(gameInfoStyle.Render(m.viewGroups()))
	b.WriteString("\n")
	return b.String()
}

// viewGroups renders the working partition: each team's members plus
// the unassigned bench.
func (m Model) viewGroups() string {
	var lines []string
	for i, teamID := range m.engine.TeamIDs() {
		group := teams.TeamGroup(teamID)
		members := m.engine.Group(group)
		lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, m.teamLabel(group), m.memberNames(members)))
	}
	bench := m.engine.Group(teams.Bench)
	if len(bench) > 0 {
		lines = append(lines, fmt.Sprintf("Bench: %s", m.memberNames(bench)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) teamLabel(group teams.GroupKey) string {
	for _, t := range m.game.Teams {
		if teams.TeamGroup(t.ID) == group {
			return t.Name
		}
	}
	return string(group)
}

func (m Model) memberNames(ids []model.PlayerID) string {
	if len(ids) == 0 {
		return "(empty)"
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = playerName(m.game, id)
	}
	return strings.Join(names, ", ")
}

func (m Model) viewBidding() string {
	hand := currentHand(m.game)
	if hand == nil {
		return ""
	}
	var b strings.Builder

	b.WriteString(m.viewCards(hand, -1))
	b.WriteString("\nBids so far:\n")
	if len(hand.Bids) == 0 {
		b.WriteString(blurredStyle.Render("  (none)"))
		b.WriteString("\n")
	}
	for _, bid := range hand.Bids {
		label := fmt.Sprintf("%d", bid.Value)
		if bid.IsPass() {
			label = "pass"
		}
		b.WriteString(fmt.Sprintf("  %s: %s\n", playerName(m.game, bid.Player), label))
	}
	return b.String()
}

func (m Model) viewDeclaringTrump() string {
	hand := currentHand(m.game)
	if hand == nil {
		return ""
	}
	var b strings.Builder

	b.WriteString(m.viewCards(hand, -1))
	if hand.Bidder != nil {
		b.WriteString(fmt.Sprintf("\n%s won the bidding", playerName(m.game, *hand.Bidder)))
		for _, bid := range hand.Bids {
			if hand.HighBid != nil && bid.ID == *hand.HighBid {
				b.WriteString(fmt.Sprintf(" at %d", bid.Value))
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("Pick a trump suit.\n")
	return b.String()
}

func (m Model) viewPlayingTrick() string {
	hand := currentHand(m.game)
	if hand == nil || hand.Trick == nil {
		return ""
	}
	var b strings.Builder

	if hand.Trump != nil {
		b.WriteString(gameInfoStyle.Render(fmt.Sprintf("Trump: %s", *hand.Trump)))
		b.WriteString("\n")
	}
	if hand.Trick.ActivePlayer != nil {
		b.WriteString(fmt.Sprintf("Active: %s\n", playerName(m.game, *hand.Trick.ActivePlayer)))
	}

	if len(hand.Trick.Plays) > 0 {
		b.WriteString("On the table:\n")
		for _, play := range hand.Trick.Plays {
			b.WriteString(fmt.Sprintf("  %s: %s\n", playerName(m.game, play.Player), play.Card))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.viewCards(hand, m.selectedCard))
	return b.String()
}

// viewCards renders the local player's hand, highlighting the card at
// the cursor when one is in use.
func (m Model) viewCards(hand *model.Hand, cursor int) string {
	if len(hand.Cards) == 0 {
		return ""
	}
	rendered := make([]string, len(hand.Cards))
	for i, card := range hand.Cards {
		if i == cursor {
			rendered[i] = focusedStyle.Render("[" + card + "]")
		} else {
			rendered[i] = cardStyle.Render(card)
		}
	}
	return "Your cards: " + strings.Join(rendered, " ") + "\n"
}

func (m Model) viewHandResults() string {
	return "Hand complete. Waiting for the next deal...\n"
}

func (m Model) viewGameResults() string {
	var b strings.Builder
	b.WriteString(winnerStyle.Render("Game over"))
	b.WriteString("\n")

	if m.game != nil {
		for _, t := range m.game.Teams {
			if t.Winner {
				b.WriteString(winnerStyle.Render(fmt.Sprintf("Winners: %s", t.Name)))
				b.WriteString("\n")
			}
		}
		for _, p := range m.game.Players {
			if p.Winner {
				b.WriteString(winnerStyle.Render(fmt.Sprintf("Winner: %s", p.Name)))
				b.WriteString("\n")
			}
		}
	}

	if len(m.scores) > 0 {
		b.WriteString("\nScores:\n")
		for _, series := range m.scores {
			b.WriteString(fmt.Sprintf("  %s: %d\n", series.Name, series.Final()))
		}
	}
	return b.String()
}
