package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smeargame/smearcli/internal/action"
	"github.com/smeargame/smearcli/internal/api"
	"github.com/smeargame/smearcli/internal/model"
)

// updateMsg carries a fresh snapshot from the watcher
type updateMsg struct {
	game  *model.Game
	phase model.Phase
}

// errorMsg carries the human-readable form of a failed action
type errorMsg string

// actionDoneMsg clears the pending state after a successful action
type actionDoneMsg struct{}

// scoresMsg carries the fetched score history
type scoresMsg []model.ScoreSeries

// waitForUpdate blocks on the watcher's update channel. The update
// loop re-issues it after every message.
func waitForUpdate(ch <-chan updateMsg) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return nil
		}
		return update
	}
}

// startWatch kicks off the watcher for the target game
func startWatch(ctx context.Context, w watcher, id model.GameID) tea.Cmd {
	return func() tea.Msg {
		if err := w.Watch(ctx, id); err != nil {
			return errorMsg(api.UserMessage(err))
		}
		return nil
	}
}

// submitAction runs a state-changing call through the submitter
func submitAction(ctx context.Context, submitter *action.Submitter, name string, call action.Call) tea.Cmd {
	return func() tea.Msg {
		if err := submitter.Submit(ctx, name, call); err != nil {
			return errorMsg(api.UserMessage(err))
		}
		return actionDoneMsg{}
	}
}

// fetchScores loads the score history for the results screen
func fetchScores(ctx context.Context, client *api.Client, id model.GameID) tea.Cmd {
	return func() tea.Msg {
		scores, err := client.GetScores(ctx, id)
		if err != nil {
			return errorMsg(api.UserMessage(err))
		}
		return scoresMsg(scores)
	}
}
