package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/taskdesk/taskdesk/internal/app"
	"github.com/taskdesk/taskdesk/internal/domain"
	"github.com/taskdesk/taskdesk/internal/usecase"
)

// newWatchCommand creates the watch command: a foreground polling loop
// that refetches notifications every 30 seconds and recomputes the
// overdue flags of cached tasks every 60 seconds.
func newWatchCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Poll notifications and overdue changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := requireUser(c)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Prime the cache so the overdue recompute has tasks to work on.
			if _, err := c.ListTasksUseCase().Execute(ctx, usecase.ListTasksInput{
				Filter: domain.TaskFilter{AssigneeID: user.ID},
			}); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			poll := c.PollNotificationsUseCase()
			seen := make(map[int]bool)

			scheduler := cron.New()
			_, err = scheduler.AddFunc("@every 30s", func() {
				out, err := poll.Execute(ctx, usecase.PollNotificationsInput{UserID: user.ID})
				if err != nil {
					c.Logger.Warn(0, "notify", fmt.Sprintf("poll failed: %v", err))
					return
				}
				for _, n := range out.Unread {
					if seen[n.ID] {
						continue
					}
					seen[n.ID] = true
					if n.TaskID > 0 {
						_, _ = fmt.Fprintf(w, "[%s] #%d %s\n", n.Created.Format("15:04"), n.TaskID, n.Text)
					} else {
						_, _ = fmt.Fprintf(w, "[%s] %s\n", n.Created.Format("15:04"), n.Text)
					}
				}
			})
			if err != nil {
				return fmt.Errorf("schedule notification poll: %w", err)
			}

			_, err = scheduler.AddFunc("@every 60s", func() {
				if c.Cache == nil {
					return
				}
				if changed := c.Cache.RefreshOverdue(c.Clock.Now()); changed > 0 {
					_, _ = fmt.Fprintf(w, "%d task(s) changed overdue state\n", changed)
				}
			})
			if err != nil {
				return fmt.Errorf("schedule overdue recompute: %w", err)
			}

			_, _ = fmt.Fprintln(w, "Watching for notifications (Ctrl-C to stop)")
			scheduler.Start()
			<-ctx.Done()
			<-scheduler.Stop().Done()
			return nil
		},
	}
}
