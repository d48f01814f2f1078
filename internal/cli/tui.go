package cli

import (
	"github.com/spf13/cobra"
	"github.com/taskdesk/taskdesk/internal/app"
	"github.com/taskdesk/taskdesk/internal/tui"
)

// launchTUIFunc is a function variable so tests can stub the launch.
var launchTUIFunc = launchTUI

// newTUICommand creates the tui command.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the task browser",
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}

func launchTUI(c *app.Container) error {
	return tui.Run(c)
}
