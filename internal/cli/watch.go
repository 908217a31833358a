package cli

import (
	"github.com/spf13/cobra"

	"github.com/smeargame/smearcli/internal/model"
	"github.com/smeargame/smearcli/internal/ui"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <game-id>",
		Short: "Follow a game interactively",
		Long: `Watch opens a full-screen view of a game that stays in sync with the
server and lets you act on your seat: assemble teams and start the game,
bid, declare trump, and play cards as each phase comes around.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := authedContext(cmd.Context())
			if err != nil {
				return err
			}
			return ui.Run(ctx, app, model.GameID(args[0]))
		},
	}
}
