// Package cli provides the command-line interface for taskdesk.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdesk/taskdesk/internal/app"
	"github.com/taskdesk/taskdesk/internal/domain"
)

// Command group IDs.
const (
	groupSetup  = "setup"
	groupTask   = "task"
	groupBrowse = "browse"
)

// NewRootCommand creates the root command for taskdesk.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskdesk",
		Short: "Task management client",
		Long: `taskdesk is a terminal client for the task management service.
Tasks move through a lifecycle (new, acknowledged, in progress, paused,
completed) with per-role permissions, comments, checklists and an
append-only history. Run without arguments to open the task browser.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil || c.Config == nil {
				return nil
			}
			for _, w := range c.Config.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Default: launch the TUI browser.
			return launchTUIFunc(c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupBrowse, Title: "Browsing:"},
	)

	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	loginCmd := newLoginCommand(c)
	loginCmd.GroupID = groupSetup

	logoutCmd := newLogoutCommand(c)
	logoutCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	newCmd := newNewCommand(c)
	newCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupTask

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupTask

	statusCmd := newStatusCommand(c)
	statusCmd.GroupID = groupTask

	commentCmd := newCommentCommand(c)
	commentCmd.GroupID = groupTask

	checkCmd := newCheckCommand(c)
	checkCmd.GroupID = groupTask

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupTask

	restoreCmd := newRestoreCommand(c)
	restoreCmd.GroupID = groupTask

	purgeCmd := newPurgeCommand(c)
	purgeCmd.GroupID = groupTask

	watchCmd := newWatchCommand(c)
	watchCmd.GroupID = groupBrowse

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupBrowse

	root.AddCommand(
		initCmd,
		loginCmd,
		logoutCmd,
		configCmd,
		newCmd,
		listCmd,
		showCmd,
		editCmd,
		statusCmd,
		commentCmd,
		checkCmd,
		rmCmd,
		restoreCmd,
		purgeCmd,
		watchCmd,
		tuiCmd,
	)

	return root
}

// requireUser returns the acting user or ErrNotLoggedIn.
func requireUser(c *app.Container) (*domain.User, error) {
	user := c.User()
	if user == nil {
		return nil, domain.ErrNotLoggedIn
	}
	return user, nil
}
