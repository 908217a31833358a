package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smeargame/smearcli/internal/api"
)

var errNotSignedIn = errors.New("not signed in: run 'smear login' first")

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the server and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email is required")
			}
			if password == "" {
				// Read the password from stdin rather than forcing it
				// onto the command line
				fmt.Fprint(os.Stderr, "Password: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimSpace(line)
			}

			creds, err := app.Client.Login(cmd.Context(), email, password)
			if err != nil {
				out.PrintError(errors.New(api.UserMessage(err)))
				return err
			}

			if err := app.Store.SaveSession(cmd.Context(), creds); err != nil {
				return err
			}

			out.PrintMessage(fmt.Sprintf("Signed in as %s", creds.User.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (env: SMEAR_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Account password; prompted if omitted")
	if env := os.Getenv("SMEAR_EMAIL"); env != "" {
		email = env
	}
	if env := os.Getenv("SMEAR_PASSWORD"); env != "" {
		password = env
	}

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := authedContext(cmd.Context())
			if err != nil {
				return err
			}

			// Best effort: the local session is dropped even if the
			// server call fails
			if err := app.Client.Logout(ctx); err != nil {
				app.Logger.Warn("server logout failed", "error", err)
			}
			if err := app.Store.DeleteSession(cmd.Context()); err != nil {
				return err
			}

			out.PrintMessage("Signed out")
			return nil
		},
	}
}
