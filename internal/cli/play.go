package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smeargame/smearcli/internal/action"
	"github.com/smeargame/smearcli/internal/model"
)

// submit wraps an action call with the single in-flight guard and a
// reload that prints the resulting snapshot
func submit(ctx context.Context, id model.GameID, name string, call action.Call) error {
	submitter := action.NewSubmitter(func(ctx context.Context) error {
		game, err := app.Client.GetGame(ctx, id)
		if err != nil {
			return err
		}
		_ = app.Store.SaveSnapshot(ctx, game)
		out.PrintGame(game)
		return nil
	}, app.Logger)

	if err := submitter.Submit(ctx, name, call); err != nil {
		return userError(err)
	}
	return nil
}

func newBidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bid <game-id> <value>",
		Short: "Bid on the current hand (0 passes)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := authedContext(cmd.Context())
			if err != nil {
				return err
			}

			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid bid %q: must be a number", args[1])
			}

			id := model.GameID(args[0])
			game, err := fetchGame(ctx, id)
			if err != nil {
				return err
			}
			if game.CurrentHand == nil {
				return errors.New("the game has no hand in progress")
			}
			handID := game.CurrentHand.ID

			return submit(ctx, id, "submit_bid", func(ctx context.Context) error {
				return app.Client.SubmitBid(ctx, id, handID, value)
			})
		},
	}
}

func newTrumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trump <game-id> <suit>",
		Short: "Declare trump on your winning bid",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := authedContext(cmd.Context())
			if err != nil {
				return err
			}

			id := model.GameID(args[0])
			game, err := fetchGame(ctx, id)
			if err != nil {
				return err
			}
			if game.CurrentHand == nil {
				return errors.New("the game has no hand in progress")
			}
			if game.CurrentHand.HighBid == nil {
				return errors.New("bidding has not concluded yet")
			}
			handID := game.CurrentHand.ID
			bidID := *game.CurrentHand.HighBid
			suit := args[1]

			return submit(ctx, id, "declare_trump", func(ctx context.Context) error {
				return app.Client.DeclareTrump(ctx, id, handID, bidID, suit)
			})
		},
	}
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <game-id> <card>",
		Short: "Play a card into the current trick",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := authedContext(cmd.Context())
			if err != nil {
				return err
			}

			id := model.GameID(args[0])
			game, err := fetchGame(ctx, id)
			if err != nil {
				return err
			}
			if game.CurrentHand == nil || game.CurrentHand.Trick == nil {
				return errors.New("the game has no trick in progress")
			}
			handID := game.CurrentHand.ID
			trickID := game.CurrentHand.Trick.ID
			card := args[1]

			return submit(ctx, id, "play_card", func(ctx context.Context) error {
				return app.Client.PlayCard(ctx, id, handID, trickID, card)
			})
		},
	}
}

func newScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores <game-id>",
		Short: "Show the per-hand score history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := authedContext(cmd.Context())
			if err != nil {
				return err
			}

			scores, err := app.Client.GetScores(ctx, model.GameID(args[0]))
			if err != nil {
				return userError(err)
			}
			out.PrintScores(scores)
			return nil
		},
	}
}
