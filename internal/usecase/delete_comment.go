package usecase

import (
	"context"
	"fmt"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// DeleteCommentInput contains the parameters for deleting a comment.
type DeleteCommentInput struct {
	User      *domain.User // Acting user (required)
	TaskID    int          // Task ID (required)
	CommentID int          // Comment ID (required)
}

// DeleteComment is the use case for deleting a comment.
type DeleteComment struct {
	tasks  domain.TaskService
	logger domain.Logger
}

// NewDeleteComment creates a new DeleteComment use case.
func NewDeleteComment(tasks domain.TaskService, logger domain.Logger) *DeleteComment {
	return &DeleteComment{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute deletes a comment. Only the comment's author or a director
// may delete it.
func (uc *DeleteComment) Execute(ctx context.Context, in DeleteCommentInput) error {
	task, err := uc.tasks.GetTask(ctx, in.TaskID)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}
	if task.IsDeleted {
		return domain.ErrTaskDeleted
	}
	if err := checkCommentOwnership(task, in.CommentID, in.User); err != nil {
		return err
	}

	if err := uc.tasks.DeleteComment(ctx, in.TaskID, in.CommentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	uc.logger.Info(in.TaskID, "comment", fmt.Sprintf("deleted comment %d", in.CommentID))
	return nil
}
