package usecase

import (
	"context"
	"fmt"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// RestoreTaskInput contains the parameters for restoring a task.
type RestoreTaskInput struct {
	User   *domain.User // Acting user (required)
	TaskID int          // Task ID (required)
}

// RestoreTask is the use case for restoring a task from the trash.
type RestoreTask struct {
	tasks  domain.TaskService
	logger domain.Logger
}

// NewRestoreTask creates a new RestoreTask use case.
func NewRestoreTask(tasks domain.TaskService, logger domain.Logger) *RestoreTask {
	return &RestoreTask{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute restores a soft-deleted task. Only the creator or a director
// may restore; a task that is not in the trash is rejected.
func (uc *RestoreTask) Execute(ctx context.Context, in RestoreTaskInput) error {
	task, err := uc.tasks.GetTask(ctx, in.TaskID)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}
	if !task.IsDeleted {
		return fmt.Errorf("task %d is not in the trash", in.TaskID)
	}
	if !canManageTrash(task, in.User) {
		return domain.ErrPermissionDenied
	}

	if err := uc.tasks.RestoreTask(ctx, in.TaskID); err != nil {
		return fmt.Errorf("restore task: %w", err)
	}

	uc.logger.Info(in.TaskID, "task", "restored task from trash")
	return nil
}
