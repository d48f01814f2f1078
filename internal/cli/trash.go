package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdesk/taskdesk/internal/app"
	"github.com/taskdesk/taskdesk/internal/usecase"
)

// newRmCommand creates the rm command (soft delete).
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Move a task to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser(c)
			if err != nil {
				return err
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			if err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{
				User:   user,
				TaskID: id,
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved task #%d to the trash\n", id)
			return nil
		},
	}
}

// newRestoreCommand creates the restore command.
func newRestoreCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore a task from the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser(c)
			if err != nil {
				return err
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			if err := c.RestoreTaskUseCase().Execute(cmd.Context(), usecase.RestoreTaskInput{
				User:   user,
				TaskID: id,
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Restored task #%d\n", id)
			return nil
		},
	}
}

// newPurgeCommand creates the purge command (permanent delete).
func newPurgeCommand(c *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "purge <id>",
		Short: "Permanently delete a trashed task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser(c)
			if err != nil {
				return err
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("purging is irreversible, pass --yes to confirm")
			}

			if err := c.PurgeTaskUseCase().Execute(cmd.Context(), usecase.PurgeTaskInput{
				User:   user,
				TaskID: id,
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Permanently deleted task #%d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm permanent deletion")
	return cmd
}
