package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdesk/taskdesk/internal/app"
	"github.com/taskdesk/taskdesk/internal/infra/auth"
	"github.com/taskdesk/taskdesk/internal/usecase"
)

// newLoginCommand creates the login command.
func newLoginCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Token  string
		UserID int
	}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Persist authentication locally",
		Long: `Store a bearer token and the acting user for later commands.

The user id is recovered from the token's claims when possible;
pass --user to set or override it explicitly.

Examples:
  taskdesk login --token "$TOKEN"
  taskdesk login --token "$TOKEN" --user 42`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID := opts.UserID
			if opts.Token != "" && userID == 0 {
				claims, err := auth.Inspect(opts.Token)
				if err != nil {
					return fmt.Errorf("inspect token: %w", err)
				}
				userID = claims.UserID
			}
			if userID == 0 {
				return fmt.Errorf("user id not found in token, pass --user")
			}

			out, err := c.LoginUseCase().Execute(cmd.Context(), usecase.LoginInput{
				Token:  opts.Token,
				UserID: userID,
			})
			if err != nil {
				return err
			}

			user := out.Session.User
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (id %d, %s)\n",
				user.Name, user.ID, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Token, "token", "", "Bearer token")
	cmd.Flags().IntVar(&opts.UserID, "user", 0, "Acting user id (overrides the token's claims)")

	return cmd
}

// newLogoutCommand creates the logout command.
func newLogoutCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.Sessions.Clear(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
