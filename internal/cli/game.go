package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smeargame/smearcli/internal/api"
	"github.com/smeargame/smearcli/internal/model"
	"github.com/smeargame/smearcli/internal/teams"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game operations",
	}

	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameCancelCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameAutopilotCmd())

	return cmd
}

func newGameGetCmd() *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "get <game-id>",
		Short: "Fetch a game snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := model.GameID(args[0])

			if cached {
				game, err := app.Store.GetSnapshot(cmd.Context(), id)
				if err != nil {
					return err
				}
				out.PrintGame(game)
				return nil
			}

			ctx, err := authedContext(cmd.Context())
			if err != nil {
				return err
			}

			game, err := app.Client.GetGame(ctx, id)
			if err != nil {
				return userError(err)
			}
			out.PrintGame(game)
			return nil
		},
	}

	cmd.Flags().BoolVar(&cached, "cached", false, "Show the locally cached snapshot instead of fetching")
	return cmd
}

func newGameJoinCmd() *cobra.Command {
	var passcode string

	cmd := &cobra.Command{
		Use:   "join <game-id>",
		Short: "Join a game that is waiting for players",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := authedContext(cmd.Context())
			if err != nil {
				return err
			}

			id := model.GameID(args[0])
			if err := app.Client.JoinGame(ctx, id, passcode); err != nil {
				return userError(err)
			}
			out.PrintMessage(fmt.Sprintf("Joined game %s", id))
			return nil
		},
	}

	cmd.Flags().StringVar(&passcode, "passcode", "", "Passcode for private games")
	return cmd
}

func newGameCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <game-id>",
		Short: "Cancel a game you manage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := authedContext(cmd.Context())
			if err != nil {
				return err
			}

			id := model.GameID(args[0])
			if err := app.Client.DeleteGame(ctx, id); err != nil {
				return userError(err)
			}
			_ = app.Store.DeleteSnapshot(cmd.Context(), id)
			out.PrintMessage(fmt.Sprintf("Cancelled game %s", id))
			return nil
		},
	}
}

func newGameStartCmd() *cobra.Command {
	var auto bool

	cmd := &cobra.Command{
		Use:   "start <game-id>",
		Short: "Start a game, optionally auto-assigning teams",
		Long: `Start a game. With --auto-teams, unassigned players are dealt
round-robin onto the game's teams first. Without it, the server
receives the current team arrangement as-is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := authedContext(cmd.Context())
			if err != nil {
				return err
			}

			id := model.GameID(args[0])
			game, err := app.Client.GetGame(ctx, id)
			if err != nil {
				return userError(err)
			}

			engine := teams.NewFromGame(game)
			if auto {
				engine.AutoAssign()
			}

			if err := app.Client.StartGame(ctx, id, engine.StartPayload()); err != nil {
				return userError(err)
			}
			out.PrintMessage(fmt.Sprintf("Started game %s", id))
			return nil
		},
	}

	cmd.Flags().BoolVar(&auto, "auto-teams", false, "Auto-assign benched players to teams")
	return cmd
}

func newGameAutopilotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "autopilot <game-id>",
		Short: "Toggle server-side play for your seat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := authedContext(cmd.Context())
			if err != nil {
				return err
			}

			id := model.GameID(args[0])
			if err := app.Client.ToggleAutoPilot(ctx, id); err != nil {
				return userError(err)
			}
			out.PrintMessage("Toggled auto-pilot")
			return nil
		},
	}
}

// userError prints the human-readable form of an API error and returns
// the original for the exit code
func userError(err error) error {
	out.PrintError(errors.New(api.UserMessage(err)))
	return err
}

// fetchGame is a helper for action commands that need the current
// snapshot to derive entity ids
func fetchGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	game, err := app.Client.GetGame(ctx, id)
	if err != nil {
		return nil, userError(err)
	}
	return game, nil
}
