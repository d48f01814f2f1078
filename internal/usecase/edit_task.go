package usecase

import (
	"context"
	"fmt"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// EditTaskInput contains the parameters for editing a task.
type EditTaskInput struct {
	User   *domain.User     // Acting user (required)
	Patch  domain.TaskPatch // Fields to change (nil pointers = no change)
	TaskID int              // Task ID to edit (required)
}

// EditTaskOutput contains the result of editing a task.
type EditTaskOutput struct {
	Task *domain.Task
}

// EditTask is the use case for editing an existing task.
type EditTask struct {
	tasks  domain.TaskService
	logger domain.Logger
}

// NewEditTask creates a new EditTask use case.
func NewEditTask(tasks domain.TaskService, logger domain.Logger) *EditTask {
	return &EditTask{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute edits a task with the given input. Validation and the
// permission check happen before any network call; a soft-deleted task
// rejects the edit outright.
func (uc *EditTask) Execute(ctx context.Context, in EditTaskInput) (*EditTaskOutput, error) {
	if in.Patch.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	if in.Patch.Title != nil && *in.Patch.Title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if in.Patch.Priority != nil && (*in.Patch.Priority < 1 || *in.Patch.Priority > 5) {
		return nil, domain.ErrInvalidPriority
	}
	if in.Patch.Assignees != nil && len(*in.Patch.Assignees) == 0 {
		return nil, domain.ErrNoAssignees
	}

	task, err := uc.tasks.GetTask(ctx, in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task.IsDeleted {
		return nil, domain.ErrTaskDeleted
	}
	if !domain.Evaluate(task, in.User).CanEdit {
		return nil, domain.ErrPermissionDenied
	}

	updated, err := uc.tasks.UpdateTask(ctx, in.TaskID, in.Patch)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	uc.logger.Info(in.TaskID, "task", "updated task fields")
	return &EditTaskOutput{Task: updated}, nil
}
