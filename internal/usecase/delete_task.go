package usecase

import (
	"context"
	"fmt"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// DeleteTaskInput contains the parameters for soft-deleting a task.
type DeleteTaskInput struct {
	User   *domain.User // Acting user (required)
	TaskID int          // Task ID (required)
}

// DeleteTask is the use case for moving a task to the trash.
type DeleteTask struct {
	tasks  domain.TaskService
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskService, logger domain.Logger) *DeleteTask {
	return &DeleteTask{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute soft-deletes a task. Only the creator or a director may
// delete; deleting an already-deleted task is rejected.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) error {
	task, err := uc.tasks.GetTask(ctx, in.TaskID)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}
	if task.IsDeleted {
		return domain.ErrTaskDeleted
	}
	if !canManageTrash(task, in.User) {
		return domain.ErrPermissionDenied
	}

	if err := uc.tasks.DeleteTask(ctx, in.TaskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	uc.logger.Info(in.TaskID, "task", "moved task to trash")
	return nil
}

// canManageTrash reports whether the user may delete, restore or purge
// the task. Capabilities cannot be used here because a deleted task
// evaluates to none.
func canManageTrash(task *domain.Task, user *domain.User) bool {
	if user == nil {
		return false
	}
	return task.IsCreator(user.ID) || user.Role == domain.RoleDirector
}
