// Package ui is the interactive watch view: a terminal UI that follows
// one game and submits actions for the signed-in player's seat.
package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smeargame/smearcli/internal/action"
	"github.com/smeargame/smearcli/internal/api"
	"github.com/smeargame/smearcli/internal/factory"
	"github.com/smeargame/smearcli/internal/model"
	"github.com/smeargame/smearcli/internal/teams"
)

// watcher is the slice of the sync watcher the UI drives
type watcher interface {
	Watch(ctx context.Context, id model.GameID) error
	FullReload(ctx context.Context) error
	Stop()
}

// suitKeys maps suit selection keys to trump declarations
var suitKeys = map[string]string{
	"s": "spades",
	"h": "hearts",
	"d": "diamonds",
	"c": "clubs",
}

// Model is the state of the watch view
type Model struct {
	ctx       context.Context
	client    *api.Client
	watcher   watcher
	submitter *action.Submitter
	updates   <-chan updateMsg

	gameID model.GameID
	game   *model.Game
	phase  model.Phase

	// Waiting room team assembly
	engine   *teams.Engine
	selected int

	// Trick play card selection
	selectedCard int

	// Results
	scores       []model.ScoreSeries
	scoresLoaded bool

	errText string
	pending bool
}

// Config holds the dependencies of the watch view
type Config struct {
	Client    *api.Client
	Watcher   watcher
	Submitter *action.Submitter
	Updates   <-chan updateMsg
	GameID    model.GameID
}

// NewModel creates the watch view model
func NewModel(ctx context.Context, cfg Config) Model {
	return Model{
		ctx:       ctx,
		client:    cfg.Client,
		watcher:   cfg.Watcher,
		submitter: cfg.Submitter,
		updates:   cfg.Updates,
		gameID:    cfg.GameID,
		phase:     model.PhaseLoading,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		startWatch(m.ctx, m.watcher, m.gameID),
		waitForUpdate(m.updates),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.watcher.Stop()
			return m, tea.Quit
		}
		if m.pending {
			// One action at a time; ignore input until it lands
			return m, nil
		}
		return m.handlePhaseKeys(msg)

	case updateMsg:
		m.game = msg.game
		m.phase = msg.phase
		m.syncEngine()
		if m.phase == model.PhaseGameResults && !m.scoresLoaded {
			m.scoresLoaded = true
			cmds = append(cmds, fetchScores(m.ctx, m.client, m.gameID))
		}
		cmds = append(cmds, waitForUpdate(m.updates))

	case errorMsg:
		m.errText = string(msg)
		m.pending = false

	case actionDoneMsg:
		m.errText = ""
		m.pending = false

	case scoresMsg:
		m.scores = msg
	}

	return m, tea.Batch(cmds...)
}

// syncEngine keeps the waiting-room partition reconciled against the
// latest snapshot. Leaving the waiting room discards it.
func (m *Model) syncEngine() {
	if m.phase != model.PhaseWaitingRoom || m.game == nil {
		m.engine = nil
		return
	}
	if m.engine == nil {
		m.engine = teams.NewFromGame(m.game)
		return
	}
	m.engine.Reconcile(m.game.PlayerIDs())
}

func (m Model) handlePhaseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case model.PhaseWaitingRoom:
		return m.handleWaitingRoomKeys(msg)
	case model.PhaseBidding:
		return m.handleBiddingKeys(msg)
	case model.PhaseDeclaringTrump:
		return m.handleTrumpKeys(msg)
	case model.PhasePlayingTrick:
		return m.handleTrickKeys(msg)
	}
	return m, nil
}

func (m Model) handleWaitingRoomKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.engine == nil || m.game == nil {
		return m, nil
	}
	players := m.game.PlayerIDs()
	if len(players) > 0 {
		if m.selected >= len(players) {
			m.selected = len(players) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
	}

	key := msg.String()
	switch key {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(players)-1 {
			m.selected++
		}
		return m, nil
	case "a":
		m.engine.AutoAssign()
		return m, nil
	case "r":
		m.engine.Reset()
		return m, nil
	case "b":
		if len(players) > 0 {
			p := players[m.selected]
			from := m.engine.GroupOf(p)
			m.engine.Relocate(p, from, len(m.engine.Group(teams.Bench)), teams.Bench)
		}
		return m, nil
	case "c":
		m.pending = true
		return m, submitAction(m.ctx, m.submitter, "add_computer", func(ctx context.Context) error {
			_, err := m.client.AddComputerPlayer(ctx, m.gameID)
			return err
		})
	case "x":
		if len(players) == 0 {
			return m, nil
		}
		target := players[m.selected]
		m.pending = true
		return m, submitAction(m.ctx, m.submitter, "remove_player", func(ctx context.Context) error {
			return m.client.RemovePlayer(ctx, m.gameID, target)
		})
	case "enter", "s":
		payload := m.engine.StartPayload()
		m.pending = true
		return m, submitAction(m.ctx, m.submitter, "start_game", func(ctx context.Context) error {
			return m.client.StartGame(ctx, m.gameID, payload)
		})
	}

	// Digits assign the selected player to the numbered team
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' && len(players) > 0 {
		teamIDs := m.engine.TeamIDs()
		idx := int(key[0] - '1')
		if idx < len(teamIDs) {
			p := players[m.selected]
			from := m.engine.GroupOf(p)
			to := teams.TeamGroup(teamIDs[idx])
			m.engine.Relocate(p, from, len(m.engine.Group(to)), to)
		}
	}
	return m, nil
}

func (m Model) handleBiddingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.game == nil || m.game.CurrentHand == nil {
		return m, nil
	}
	key := msg.String()
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return m, nil
	}

	value := int(key[0] - '0')
	handID := m.game.CurrentHand.ID
	m.pending = true
	return m, submitAction(m.ctx, m.submitter, "submit_bid", func(ctx context.Context) error {
		return m.client.SubmitBid(ctx, m.gameID, handID, value)
	})
}

func (m Model) handleTrumpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	hand := currentHand(m.game)
	if hand == nil || hand.HighBid == nil {
		return m, nil
	}
	suit, ok := suitKeys[msg.String()]
	if !ok {
		return m, nil
	}

	handID := hand.ID
	bidID := *hand.HighBid
	m.pending = true
	return m, submitAction(m.ctx, m.submitter, "declare_trump", func(ctx context.Context) error {
		return m.client.DeclareTrump(ctx, m.gameID, handID, bidID, suit)
	})
}

func (m Model) handleTrickKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	hand := currentHand(m.game)
	if hand == nil || hand.Trick == nil {
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		if m.selectedCard > 0 {
			m.selectedCard--
		}
	case "right", "l":
		if m.selectedCard < len(hand.Cards)-1 {
			m.selectedCard++
		}
	case "enter":
		if m.selectedCard >= len(hand.Cards) {
			return m, nil
		}
		card := hand.Cards[m.selectedCard]
		handID := hand.ID
		trickID := hand.Trick.ID
		m.pending = true
		return m, submitAction(m.ctx, m.submitter, "play_card", func(ctx context.Context) error {
			return m.client.PlayCard(ctx, m.gameID, handID, trickID, card)
		})
	}
	return m, nil
}

func currentHand(g *model.Game) *model.Hand {
	if g == nil {
		return nil
	}
	return g.CurrentHand
}

func playerName(g *model.Game, id model.PlayerID) string {
	if p := g.Player(id); p != nil {
		return p.Name
	}
	return string(id)
}

// Run starts the watch view for one game and blocks until it exits.
// It owns the watcher: updates flow through a buffered channel so a
// slow render never stalls the poll loop.
func Run(ctx context.Context, app *factory.App, id model.GameID) error {
	updates := make(chan updateMsg, 8)
	w := app.NewWatcher(func(game *model.Game, phase model.Phase) {
		select {
		case updates <- updateMsg{game: game, phase: phase}:
		default:
			// Drop in favour of the next update; snapshots are whole
		}
	})
	defer w.Stop()

	submitter := action.NewSubmitter(w.FullReload, app.Logger)

	m := NewModel(ctx, Config{
		Client:    app.Client,
		Watcher:   w,
		Submitter: submitter,
		Updates:   updates,
		GameID:    id,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch view failed: %w", err)
	}
	return nil
}
