package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// EditCommentInput contains the parameters for editing a comment.
type EditCommentInput struct {
	User      *domain.User // Acting user (required)
	Text      string       // New comment text (required)
	TaskID    int          // Task ID (required)
	CommentID int          // Comment ID (required)
}

// EditCommentOutput contains the edited comment.
type EditCommentOutput struct {
	Comment *domain.Comment
}

// EditComment is the use case for editing an existing comment.
type EditComment struct {
	tasks  domain.TaskService
	logger domain.Logger
}

// NewEditComment creates a new EditComment use case.
func NewEditComment(tasks domain.TaskService, logger domain.Logger) *EditComment {
	return &EditComment{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute edits a comment. Only the comment's author or a director may
// edit it; the edit marks the comment as edited.
func (uc *EditComment) Execute(ctx context.Context, in EditCommentInput) (*EditCommentOutput, error) {
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
	if err := checkCommentOwnership(task, in.CommentID, in.User); err != nil {
		return nil, err
	}

	comment, err := uc.tasks.UpdateComment(ctx, in.TaskID, in.CommentID, text)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	uc.logger.Info(in.TaskID, "comment", fmt.Sprintf("edited comment %d", in.CommentID))
	return &EditCommentOutput{Comment: comment}, nil
}

// checkCommentOwnership enforces the author-or-director rule for
// comment mutations.
func checkCommentOwnership(task *domain.Task, commentID int, user *domain.User) error {
	for i := range task.Comments {
		if task.Comments[i].ID != commentID {
			continue
		}
		if user != nil && (task.Comments[i].AuthorID == user.ID || user.Role == domain.RoleDirector) {
			return nil
		}
		return domain.ErrPermissionDenied
	}
	return domain.ErrCommentNotFound
}
