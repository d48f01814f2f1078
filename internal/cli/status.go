package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taskdesk/taskdesk/internal/app"
	"github.com/taskdesk/taskdesk/internal/usecase"
)

// newStatusCommand creates the status command.
func newStatusCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Result string
		Hours  float64
	}

	cmd := &cobra.Command{
		Use:   "status <id> [action]",
		Short: "Show or apply status actions",
		Long: `With only an id, list the status actions currently available to you.
With an action name, apply it.

Completing actions require --result. Some actions post a comment as a
side effect (acknowledging, the director's direct start).

Examples:
  taskdesk status 12
  taskdesk status 12 acknowledge
  taskdesk status 12 complete --result "Deployed to production" --hours 6.5`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser(c)
			if err != nil {
				return err
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			if len(args) == 1 {
				out, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{
					User:   user,
					TaskID: id,
				})
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "Task #%d is %s\n", id, out.Task.Status.Display())
				if len(out.Actions) == 0 {
					_, _ = fmt.Fprintln(w, "No actions available")
					return nil
				}
				for _, action := range out.Actions {
					suffix := ""
					if action.NeedsResult {
						suffix = " (requires --result)"
					}
					_, _ = fmt.Fprintf(w, "  %-12s %s -> %s%s\n",
						action.Name, action.Label, action.Target.Display(), suffix)
				}
				return nil
			}

			out, err := c.ChangeStatusUseCase().Execute(cmd.Context(), usecase.ChangeStatusInput{
				User:        user,
				Action:      strings.ToLower(args[1]),
				Result:      opts.Result,
				ActualHours: opts.Hours,
				TaskID:      id,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task #%d is now %s\n", id, out.Task.Status.Display())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Result, "result", "", "Completion result text")
	cmd.Flags().Float64Var(&opts.Hours, "hours", 0, "Actual hours spent")

	return cmd
}
