package cli

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/taskdesk/taskdesk/internal/app"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the merged configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := toml.Marshal(c.Config)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, _ = cmd.OutOrStdout().Write(data)
			return nil
		},
	}
}
