package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// ChangeStatusInput contains the parameters for applying a status action.
// Fields are ordered to minimize memory padding.
type ChangeStatusInput struct {
	User        *domain.User // Acting user (required)
	Action      string       // Action name (acknowledge, start, pause, ...)
	Result      string       // Completion result, required by NeedsResult actions
	ActualHours float64      // Actual hours spent, optional
	TaskID      int          // Task ID (required)
}

// ChangeStatusOutput contains the result of the transition.
type ChangeStatusOutput struct {
	Task   *domain.Task
	Action domain.Action
}

// ChangeStatus is the use case for applying one of the status actions
// currently available to the user.
type ChangeStatus struct {
	tasks  domain.TaskService
	logger domain.Logger
}

// NewChangeStatus creates a new ChangeStatus use case.
func NewChangeStatus(tasks domain.TaskService, logger domain.Logger) *ChangeStatus {
	return &ChangeStatus{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute applies the named action. The action must be in the set
// computed for the user, which also enforces the transition table and
// role gates. An action with an auto-comment posts the comment first;
// the two calls are not atomic, so a status failure can leave the
// comment behind. Result-bearing actions additionally post the result
// as a result comment.
func (uc *ChangeStatus) Execute(ctx context.Context, in ChangeStatusInput) (*ChangeStatusOutput, error) {
	task, err := uc.tasks.GetTask(ctx, in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task.IsDeleted {
		return nil, domain.ErrTaskDeleted
	}

	actions := domain.AvailableActions(task, in.User)
	action := domain.FindAction(actions, in.Action)
	if action == nil {
		return nil, fmt.Errorf("%w: %q on %s task", domain.ErrActionNotAvailable, in.Action, task.Status.Display())
	}

	result := strings.TrimSpace(in.Result)
	if action.NeedsResult && result == "" {
		return nil, domain.ErrResultRequired
	}

	if action.AutoComment != "" {
		if _, err := uc.tasks.AddComment(ctx, in.TaskID, domain.CommentDraft{Text: action.AutoComment}); err != nil {
			return nil, fmt.Errorf("post auto comment: %w", err)
		}
		uc.logger.Debug(in.TaskID, "status", fmt.Sprintf("posted auto comment for %s", action.Name))
	}
	if action.NeedsResult {
		if _, err := uc.tasks.AddComment(ctx, in.TaskID, domain.CommentDraft{Text: result, IsResult: true}); err != nil {
			return nil, fmt.Errorf("post result comment: %w", err)
		}
	}

	updated, err := uc.tasks.ChangeStatus(ctx, in.TaskID, domain.StatusChange{
		Status:      action.Target,
		Result:      result,
		ActualHours: in.ActualHours,
	})
	if err != nil {
		return nil, fmt.Errorf("change status: %w", err)
	}

	uc.logger.Info(in.TaskID, "status",
		fmt.Sprintf("applied %s: %s to %s", action.Name, task.Status, updated.Status))
	return &ChangeStatusOutput{Task: updated, Action: *action}, nil
}
