package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/taskdesk/taskdesk/internal/app"
	"github.com/taskdesk/taskdesk/internal/domain"
)

// defaultConfigTemplate is written by taskdesk init.
const defaultConfigTemplate = `# taskdesk configuration
[api]
# base_url = "https://tasks.example.com/api"
# timeout_seconds = 15

[tui]
# group_by = "time"        # time | process | priority
# page_size = 50
# load_more_threshold = 10

[log]
# level = "info"           # debug | info | warn | error
# max_size_mb = 10
# max_backups = 3
`

// newInitCommand creates the init command.
func newInitCommand(_ *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a local .taskdesk config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get current directory: %w", err)
			}

			dir := domain.LocalDir(cwd)
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}

			path := filepath.Join(dir, domain.ConfigFileName)
			if _, err := os.Stat(path); err == nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
				return nil
			}
			if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o600); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
}
