package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smeargame/smearcli/internal/model"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Seat management for games that have not started",
	}

	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerRemoveCmd())

	return cmd
}

func newPlayerAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <game-id>",
		Short: "Seat a computer player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := authedContext(cmd.Context())
			if err != nil {
				return err
			}

			player, err := app.Client.AddComputerPlayer(ctx, model.GameID(args[0]))
			if err != nil {
				return userError(err)
			}
			out.PrintMessage(fmt.Sprintf("Seated %s (%s)", player.Name, player.ID))
			return nil
		},
	}
}

func newPlayerRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <game-id> <player-id>",
		Short: "Remove a player from a game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := authedContext(cmd.Context())
			if err != nil {
				return err
			}

			playerID := model.PlayerID(args[1])
			if err := app.Client.RemovePlayer(ctx, model.GameID(args[0]), playerID); err != nil {
				return userError(err)
			}
			out.PrintMessage(fmt.Sprintf("Removed player %s", playerID))
			return nil
		},
	}
}
