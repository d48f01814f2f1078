package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdesk/taskdesk/internal/app"
	"github.com/taskdesk/taskdesk/internal/domain"
	"github.com/taskdesk/taskdesk/internal/usecase"
)

// newCheckCommand creates the check command with its subcommands.
func newCheckCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Manage task checklists",
		Long: `Manage a task's checklist.

Items nest up to five levels deep. Structural subcommands (indent,
outdent, up, down) move an item together with its nested children and
are no-ops at the boundaries.`,
	}

	cmd.AddCommand(
		newCheckAddCommand(c),
		newCheckToggleCommand(c),
		newCheckEditCommand(c),
		newCheckRmCommand(c),
		newCheckMoveCommand(c, "indent", "Indent an item one level", domain.ChecklistOp{Action: "indent"}),
		newCheckMoveCommand(c, "outdent", "Outdent an item one level", domain.ChecklistOp{Action: "outdent"}),
		newCheckMoveCommand(c, "up", "Move an item up among its siblings", domain.ChecklistOp{Action: "move", Direction: "up"}),
		newCheckMoveCommand(c, "down", "Move an item down among its siblings", domain.ChecklistOp{Action: "move", Direction: "down"}),
	)
	return cmd
}

func checklistInput(c *app.Container, args []string, withText bool) (usecase.ChecklistInput, error) {
	user, err := requireUser(c)
	if err != nil {
		return usecase.ChecklistInput{}, err
	}
	taskID, err := parseTaskID(args[0])
	if err != nil {
		return usecase.ChecklistInput{}, err
	}

	in := usecase.ChecklistInput{User: user, TaskID: taskID}
	rest := args[1:]
	if len(rest) > 0 {
		if withText && len(rest) == 1 {
			in.Text = rest[0]
			return in, nil
		}
		itemID, err := parseTaskID(rest[0])
		if err != nil {
			return in, fmt.Errorf("invalid item id %q", rest[0])
		}
		in.ItemID = itemID
		if len(rest) > 1 {
			in.Text = rest[1]
		}
	}
	return in, nil
}

func printChecklist(cmd *cobra.Command, out *usecase.ChecklistOutput) {
	w := cmd.OutOrStdout()
	for _, item := range out.Items {
		mark := " "
		if item.Completed {
			mark = "x"
		}
		indent := ""
		for i := 0; i < item.Level; i++ {
			indent += "  "
		}
		_, _ = fmt.Fprintf(w, "%s[%s] %d. %s\n", indent, mark, item.ID, item.Text)
	}
}

func newCheckAddCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "add <task-id> <text>",
		Short: "Add a checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := checklistInput(c, args, true)
			if err != nil {
				return err
			}
			out, err := c.ChecklistUseCase().Add(cmd.Context(), in)
			if err != nil {
				return err
			}
			printChecklist(cmd, out)
			return nil
		},
	}
}

func newCheckToggleCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <task-id> <item-id>",
		Short: "Toggle an item's completion",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := checklistInput(c, args, false)
			if err != nil {
				return err
			}
			out, err := c.ChecklistUseCase().Toggle(cmd.Context(), in)
			if err != nil {
				return err
			}
			printChecklist(cmd, out)
			return nil
		},
	}
}

func newCheckEditCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <task-id> <item-id> <text>",
		Short: "Edit an item's text",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := checklistInput(c, args, false)
			if err != nil {
				return err
			}
			out, err := c.ChecklistUseCase().Edit(cmd.Context(), in)
			if err != nil {
				return err
			}
			printChecklist(cmd, out)
			return nil
		},
	}
}

func newCheckRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <task-id> <item-id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := checklistInput(c, args, false)
			if err != nil {
				return err
			}
			out, err := c.ChecklistUseCase().Delete(cmd.Context(), in)
			if err != nil {
				return err
			}
			printChecklist(cmd, out)
			return nil
		},
	}
}

func newCheckMoveCommand(c *app.Container, use, short string, op domain.ChecklistOp) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <task-id> <item-id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := checklistInput(c, args, false)
			if err != nil {
				return err
			}
			out, err := c.ChecklistUseCase().Restructure(cmd.Context(), in, op)
			if err != nil {
				return err
			}
			printChecklist(cmd, out)
			return nil
		},
	}
}
