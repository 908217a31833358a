// Package cli implements the smear command line client.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/smeargame/smearcli/internal/factory"
	"github.com/smeargame/smearcli/internal/model"
	"github.com/smeargame/smearcli/internal/session"
)

var (
	cfg *Config
	app *factory.App
	out *Output
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "smear",
		Short: "CLI client for the Smear card game",
		Long: `smear is a client for playing Smear against a game server.

It signs in, joins games, follows them as they progress, and submits
bids, trump declarations, and card plays. The server is authoritative
for all rules; this client renders its state and relays your actions.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := cfg.newApp()
			if err != nil {
				return err
			}
			app = a
			out = NewOutput(cfg.Output)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app != nil {
				return app.Close()
			}
			return nil
		},
		SilenceUsage: true,
	}

	cfg.registerFlags(rootCmd)

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newBidCmd())
	rootCmd.AddCommand(newTrumpCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newScoresCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// authedContext loads the stored session and attaches it to the context
func authedContext(ctx context.Context) (context.Context, error) {
	creds, err := app.Store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNoSession) {
			return nil, errNotSignedIn
		}
		return nil, err
	}
	return session.WithCredentials(ctx, creds), nil
}
