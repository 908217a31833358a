package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/smeargame/smearcli/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

// PrintGame outputs a game snapshot with its resolved phase
func (o *Output) PrintGame(g *model.Game) {
	if o.format == "json" {
		o.printJSON(map[string]any{
			"game":  g,
			"phase": model.ResolvePhase(g),
		})
		return
	}
	o.printGameText(g)
}

// PrintScores outputs the per-hand score history
func (o *Output) PrintScores(scores []model.ScoreSeries) {
	if o.format == "json" {
		o.printJSON(map[string]any{"scores": scores})
		return
	}

	if len(scores) == 0 {
		fmt.Println("No scores yet")
		return
	}
	for _, series := range scores {
		fmt.Printf("%s: %d\n", series.Name, series.Final())
		points := make([]string, len(series.Points))
		for i, p := range series.Points {
			points[i] = fmt.Sprintf("hand %d: %d", p.Hand, p.Score)
		}
		if len(points) > 0 {
			fmt.Printf("  %s\n", strings.Join(points, ", "))
		}
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printGameText(g *model.Game) {
	phase := model.ResolvePhase(g)

	fmt.Printf("Game: %s (%s)\n", g.Name, g.ID)
	fmt.Printf("Phase: %s\n", phase)

	if len(g.Players) > 0 {
		fmt.Printf("Players (%d):\n", len(g.Players))
		for _, p := range g.Players {
			seat := ""
			if p.IsComputer() {
				seat = " [computer]"
			}
			team := ""
			if p.TeamID != nil {
				team = fmt.Sprintf(" - team %s", *p.TeamID)
			}
			winner := ""
			if p.Winner {
				winner = " [winner]"
			}
			fmt.Printf("  - %s (%s)%s%s%s\n", p.Name, p.ID, seat, team, winner)
		}
	}

	for _, t := range g.Teams {
		winner := ""
		if t.Winner {
			winner = " [winner]"
		}
		fmt.Printf("Team %s (%s)%s: %s\n", t.Name, t.ID, winner, joinPlayerIDs(t.Players))
	}

	hand := g.CurrentHand
	if hand == nil {
		return
	}

	if len(hand.Cards) > 0 {
		fmt.Printf("Your cards: %s\n", strings.Join(hand.Cards, " "))
	}
	for _, b := range hand.Bids {
		label := fmt.Sprintf("%d", b.Value)
		if b.IsPass() {
			label = "pass"
		}
		marker := ""
		if hand.HighBid != nil && b.ID == *hand.HighBid {
			marker = " *"
		}
		fmt.Printf("Bid: %s by %s%s\n", label, b.Player, marker)
	}
	if hand.Trump != nil {
		fmt.Printf("Trump: %s\n", *hand.Trump)
	}
	if trick := hand.Trick; trick != nil {
		if trick.ActivePlayer != nil {
			fmt.Printf("Active player: %s\n", *trick.ActivePlayer)
		}
		for _, play := range trick.Plays {
			fmt.Printf("Played: %s by %s\n", play.Card, play.Player)
		}
	}
}

func joinPlayerIDs(ids []model.PlayerID) string {
	if len(ids) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
