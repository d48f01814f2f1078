package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/taskdesk/taskdesk/internal/app"
	"github.com/taskdesk/taskdesk/internal/usecase"
)

// newCommentCommand creates the comment command with its subcommands.
func newCommentCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Manage task comments",
	}

	cmd.AddCommand(
		newCommentAddCommand(c),
		newCommentEditCommand(c),
		newCommentRmCommand(c),
	)
	return cmd
}

func newCommentAddCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "add <task-id> <text>",
		Short: "Add a comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser(c)
			if err != nil {
				return err
			}
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			out, err := c.AddCommentUseCase().Execute(cmd.Context(), usecase.AddCommentInput{
				User:   user,
				Text:   args[1],
				TaskID: id,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added comment %d to task #%d\n", out.Comment.ID, id)
			return nil
		},
	}
}

func newCommentEditCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <task-id> <comment-id> <text>",
		Short: "Edit a comment (author or director only)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser(c)
			if err != nil {
				return err
			}
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			commentID, err := parseTaskID(args[1])
			if err != nil {
				return err
			}

			_, err = c.EditCommentUseCase().Execute(cmd.Context(), usecase.EditCommentInput{
				User:      user,
				Text:      args[2],
				TaskID:    taskID,
				CommentID: commentID,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Edited comment %d\n", commentID)
			return nil
		},
	}
}

func newCommentRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <task-id> <comment-id>",
		Short: "Delete a comment (author or director only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser(c)
			if err != nil {
				return err
			}
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			commentID, err := parseTaskID(args[1])
			if err != nil {
				return err
			}

			if err := c.DeleteCommentUseCase().Execute(cmd.Context(), usecase.DeleteCommentInput{
				User:      user,
				TaskID:    taskID,
				CommentID: commentID,
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted comment %d\n", commentID)
			return nil
		},
	}
}
