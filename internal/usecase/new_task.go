package usecase

import (
	"context"
	"fmt"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// NewTaskInput contains the parameters for creating a task.
type NewTaskInput struct {
	Draft domain.TaskDraft
}

// NewTaskOutput contains the result of creating a task.
type NewTaskOutput struct {
	Task *domain.Task
}

// NewTask is the use case for creating a single task.
type NewTask struct {
	tasks  domain.TaskService
	logger domain.Logger
	clock  domain.Clock
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(tasks domain.TaskService, logger domain.Logger, clock domain.Clock) *NewTask {
	return &NewTask{
		tasks:  tasks,
		logger: logger,
		clock:  clock,
	}
}

// Execute validates the draft and creates the task. Validation failures
// are reported before any network call.
func (uc *NewTask) Execute(ctx context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	draft := in.Draft
	if draft.Priority == 0 {
		draft.Priority = 3
	}
	if err := draft.Validate(uc.clock.Now()); err != nil {
		return nil, err
	}

	task, err := uc.tasks.CreateTask(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	uc.logger.Info(task.ID, "task", fmt.Sprintf("created task %q", task.Title))
	return &NewTaskOutput{Task: task}, nil
}
