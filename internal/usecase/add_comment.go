package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// AddCommentInput contains the parameters for adding a comment.
type AddCommentInput struct {
	User   *domain.User // Acting user (required)
	Text   string       // Comment text (required)
	TaskID int          // Task ID (required)
}

// AddCommentOutput contains the result of adding a comment.
type AddCommentOutput struct {
	Comment *domain.Comment
}

// AddComment is the use case for adding a comment to a task.
type AddComment struct {
	tasks  domain.TaskService
	logger domain.Logger
}

// NewAddComment creates a new AddComment use case.
func NewAddComment(tasks domain.TaskService, logger domain.Logger) *AddComment {
	return &AddComment{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute adds a comment to a task.
func (uc *AddComment) Execute(ctx context.Context, in AddCommentInput) (*AddCommentOutput, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, fmt.Errorf("comment text is required")
	}

	task, err := uc.tasks.GetTask(ctx, in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task.IsDeleted {
		return nil, domain.ErrTaskDeleted
	}
	if !domain.Evaluate(task, in.User).CanComment {
		return nil, domain.ErrPermissionDenied
	}

	comment, err := uc.tasks.AddComment(ctx, in.TaskID, domain.CommentDraft{Text: text})
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	uc.logger.Info(in.TaskID, "comment", "added comment")
	return &AddCommentOutput{Comment: comment}, nil
}
