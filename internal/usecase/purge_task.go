package usecase

import (
	"context"
	"fmt"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// PurgeTaskInput contains the parameters for permanently deleting a task.
type PurgeTaskInput struct {
	User   *domain.User // Acting user (required)
	TaskID int          // Task ID (required)
}

// PurgeTask is the use case for permanently deleting a trashed task.
type PurgeTask struct {
	tasks  domain.TaskService
	logger domain.Logger
}

// NewPurgeTask creates a new PurgeTask use case.
func NewPurgeTask(tasks domain.TaskService, logger domain.Logger) *PurgeTask {
	return &PurgeTask{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute permanently deletes a task. The task must already be in the
// trash; only the creator or a director may purge it.
func (uc *PurgeTask) Execute(ctx context.Context, in PurgeTaskInput) error {
	task, err := uc.tasks.GetTask(ctx, in.TaskID)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}
	if !task.IsDeleted {
		return fmt.Errorf("task %d must be in the trash before purging", in.TaskID)
	}
	if !canManageTrash(task, in.User) {
		return domain.ErrPermissionDenied
	}

	if err := uc.tasks.PurgeTask(ctx, in.TaskID); err != nil {
		return fmt.Errorf("purge task: %w", err)
	}

	uc.logger.Info(in.TaskID, "task", "permanently deleted task")
	return nil
}
