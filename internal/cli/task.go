package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskdesk/taskdesk/internal/app"
	"github.com/taskdesk/taskdesk/internal/domain"
	"github.com/taskdesk/taskdesk/internal/usecase"
)

// dueDateLayouts are the accepted --due formats.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDueDate(s string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse due date %q (use RFC3339 or YYYY-MM-DD)", s)
}

func parseTaskID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

// newNewCommand creates the new command for creating tasks.
func newNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Due         string
		From        string
		Tags        []string
		Assignees   []int
		Observers   []int
		Process     int
		Priority    int
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new task",
		Long: `Create a new task.

A title, at least one assignee and a future due date are required;
these are checked before any request is sent.

Examples:
  # Create a task
  taskdesk new --title "Prepare report" --assignee 4 --due 2026-09-01

  # Create a task with priority and tags
  taskdesk new --title "Fix invoice export" --assignee 4 --due "2026-09-01 18:00" \
    --priority 2 --tag finance --tag urgent

  # Create several tasks from a YAML file
  taskdesk new --from tasks.yaml

File format for --from:
  - title: First task
    priority: 3
    due: 2026-09-01T18:00:00Z
    assignees: [4]
    tags: [backend]
  - title: Second task
    due: 2026-09-02T12:00:00Z
    assignees: [4, 7]`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := requireUser(c); err != nil {
				return err
			}
			if opts.From != "" {
				return createTasksFromFile(cmd, c, opts.From)
			}

			var due time.Time
			if opts.Due != "" {
				parsed, err := parseDueDate(opts.Due)
				if err != nil {
					return err
				}
				due = parsed
			}

			out, err := c.NewTaskUseCase().Execute(cmd.Context(), usecase.NewTaskInput{
				Draft: domain.TaskDraft{
					Title:       opts.Title,
					Description: opts.Description,
					DueDate:     due,
					Tags:        opts.Tags,
					Assignees:   opts.Assignees,
					Observers:   opts.Observers,
					ProcessID:   opts.Process,
					Priority:    opts.Priority,
				},
			})
			if err != nil {
				return err
			}

			if len(opts.Tags) > 0 && c.Local != nil {
				_ = c.Local.RememberTags(opts.Tags)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required unless --from is used)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Task description")
	cmd.Flags().StringVar(&opts.Due, "due", "", "Due date (required unless --from is used)")
	cmd.Flags().IntSliceVar(&opts.Assignees, "assignee", nil, "Assignee user id (can specify multiple)")
	cmd.Flags().IntSliceVar(&opts.Observers, "observer", nil, "Observer user id (can specify multiple)")
	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "Tags (can specify multiple)")
	cmd.Flags().IntVar(&opts.Process, "process", 0, "Business process id")
	cmd.Flags().IntVar(&opts.Priority, "priority", 3, "Priority 1-5 (1 = critical)")
	cmd.Flags().StringVar(&opts.From, "from", "", "Create tasks from a YAML file")

	return cmd
}

// createTasksFromFile creates tasks from a YAML file.
func createTasksFromFile(cmd *cobra.Command, c *app.Container, filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	out, err := c.CreateTasksFromFileUseCase().Execute(cmd.Context(), usecase.CreateTasksFromFileInput{
		Content: content,
	})
	if out != nil {
		// Tasks created before a mid-batch failure are still reported.
		for _, task := range out.Tasks {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d: %s\n", task.ID, task.Title)
		}
	}
	return err
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Status string
		Mine   bool
		Over   bool
		Trash  bool
		Page   int
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := requireUser(c)
			if err != nil {
				return err
			}

			filter := domain.TaskFilter{
				Status:      domain.Status(opts.Status),
				OverdueOnly: opts.Over,
				DeletedOnly: opts.Trash,
				Page:        opts.Page,
				PageSize:    c.Config.TUI.PageSize,
			}
			if opts.Status != "" && !filter.Status.IsValid() {
				return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, opts.Status)
			}
			if opts.Mine {
				filter.AssigneeID = user.ID
			}

			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{Filter: filter})
			if err != nil {
				return err
			}
			printTaskTable(cmd, out.Tasks, opts.Trash)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status")
	cmd.Flags().BoolVar(&opts.Mine, "mine", false, "Only tasks assigned to me")
	cmd.Flags().BoolVar(&opts.Over, "overdue", false, "Only overdue tasks")
	cmd.Flags().BoolVar(&opts.Trash, "trash", false, "Show the trash instead")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "Page to fetch")

	return cmd
}

func printTaskTable(cmd *cobra.Command, tasks []*domain.Task, trash bool) {
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].DueDate.Equal(tasks[j].DueDate) {
			return tasks[i].DueDate.Before(tasks[j].DueDate)
		}
		return tasks[i].ID < tasks[j].ID
	})

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	if trash {
		_, _ = fmt.Fprintln(w, "ID\tDELETED\tTITLE")
		for _, t := range tasks {
			deleted := ""
			if t.DeletedAt != nil {
				deleted = t.DeletedAt.Format("2006-01-02 15:04")
			}
			_, _ = fmt.Fprintf(w, "#%d\t%s\t%s\n", t.ID, deleted, t.Title)
		}
	} else {
		_, _ = fmt.Fprintln(w, "ID\tSTATUS\tP\tDUE\tTITLE")
		for _, t := range tasks {
			marker := ""
			if t.IsOverdue {
				marker = " !"
			} else if t.IsAlmostOverdue {
				marker = " ~"
			}
			_, _ = fmt.Fprintf(w, "#%d\t%s\t%d\t%s%s\t%s\n",
				t.ID, t.Status.Display(), t.Priority,
				t.DueDate.Format("2006-01-02 15:04"), marker, t.Title)
		}
	}
	_ = w.Flush()
}

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task",
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

			out, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{
				User:   user,
				TaskID: id,
			})
			if err != nil {
				return err
			}
			printTaskDetail(cmd, out)
			return nil
		},
	}
}

func printTaskDetail(cmd *cobra.Command, out *usecase.ShowTaskOutput) {
	w := cmd.OutOrStdout()
	t := out.Task

	_, _ = fmt.Fprintf(w, "#%d %s\n", t.ID, t.Title)
	_, _ = fmt.Fprintf(w, "Status:   %s", t.Status.Display())
	switch {
	case t.IsDeleted:
		_, _ = fmt.Fprint(w, " (in trash)")
	case t.IsOverdue:
		_, _ = fmt.Fprint(w, " (overdue)")
	case t.IsAlmostOverdue:
		_, _ = fmt.Fprint(w, " (due soon)")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Priority: %d\n", t.Priority)
	_, _ = fmt.Fprintf(w, "Due:      %s\n", t.DueDate.Format("2006-01-02 15:04"))
	_, _ = fmt.Fprintf(w, "Creator:  %d\n", t.Creator.ID)
	if len(t.Assignees) > 0 {
		ids := make([]string, len(t.Assignees))
		for i, a := range t.Assignees {
			ids[i] = strconv.Itoa(a.ID)
		}
		_, _ = fmt.Fprintf(w, "Assignees: %s\n", strings.Join(ids, ", "))
	}
	if len(t.Tags) > 0 {
		_, _ = fmt.Fprintf(w, "Tags:     %s\n", strings.Join(t.Tags, ", "))
	}
	if t.Description != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", t.Description)
	}
	if t.Result != "" {
		_, _ = fmt.Fprintf(w, "\nResult: %s\n", t.Result)
	}

	if len(t.Checklist) > 0 {
		_, _ = fmt.Fprintln(w, "\nChecklist:")
		for _, item := range t.Checklist {
			mark := " "
			if item.Completed {
				mark = "x"
			}
			_, _ = fmt.Fprintf(w, "  %s[%s] %s\n", strings.Repeat("  ", item.Level), mark, item.Text)
		}
	}
	if len(t.Comments) > 0 {
		_, _ = fmt.Fprintf(w, "\nComments (%d):\n", len(t.Comments))
		for _, comment := range t.Comments {
			edited := ""
			if comment.IsEdited {
				edited = " (edited)"
			}
			_, _ = fmt.Fprintf(w, "  [%d] %s user %d%s: %s\n",
				comment.ID, comment.Created.Format("2006-01-02 15:04"), comment.AuthorID, edited, comment.Text)
		}
	}

	if len(out.Actions) > 0 {
		names := make([]string, len(out.Actions))
		for i, a := range out.Actions {
			names[i] = a.Name
		}
		_, _ = fmt.Fprintf(w, "\nAvailable actions: %s\n", strings.Join(names, ", "))
	}
}

// newEditCommand creates the edit command.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Due         string
		Tags        []string
		Assignees   []int
		Priority    int
		Process     int
		Hours       float64
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit task fields",
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

			var patch domain.TaskPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &opts.Title
			}
			if flags.Changed("body") {
				patch.Description = &opts.Description
			}
			if flags.Changed("due") {
				due, err := parseDueDate(opts.Due)
				if err != nil {
					return err
				}
				patch.DueDate = &due
			}
			if flags.Changed("priority") {
				patch.Priority = &opts.Priority
			}
			if flags.Changed("process") {
				patch.ProcessID = &opts.Process
			}
			if flags.Changed("tag") {
				patch.Tags = &opts.Tags
			}
			if flags.Changed("assignee") {
				patch.Assignees = &opts.Assignees
			}
			if flags.Changed("hours") {
				patch.ActualHours = &opts.Hours
			}

			out, err := c.EditTaskUseCase().Execute(cmd.Context(), usecase.EditTaskInput{
				User:   user,
				Patch:  patch,
				TaskID: id,
			})
			if err != nil {
				return err
			}

			if flags.Changed("tag") && c.Local != nil {
				_ = c.Local.RememberTags(opts.Tags)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Description, "body", "", "New description")
	cmd.Flags().StringVar(&opts.Due, "due", "", "New due date")
	cmd.Flags().IntVar(&opts.Priority, "priority", 0, "New priority 1-5")
	cmd.Flags().IntVar(&opts.Process, "process", 0, "New business process id (0 clears)")
	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "Replace tags (can specify multiple)")
	cmd.Flags().IntSliceVar(&opts.Assignees, "assignee", nil, "Replace assignees (can specify multiple)")
	cmd.Flags().Float64Var(&opts.Hours, "hours", 0, "Actual hours spent")

	return cmd
}
