package usecase

import (
	"context"
	"fmt"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	User   *domain.User // Acting user (required)
	TaskID int          // Task ID (required)
}

// ShowTaskOutput contains the task together with what the acting user
// may do with it.
type ShowTaskOutput struct {
	Task         *domain.Task
	Actions      []domain.Action
	Capabilities domain.Capabilities
}

// ShowTask is the use case for showing a single task.
type ShowTask struct {
	tasks domain.TaskService
	clock domain.Clock
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(tasks domain.TaskService, clock domain.Clock) *ShowTask {
	return &ShowTask{
		tasks: tasks,
		clock: clock,
	}
}

// Execute fetches a task and evaluates the acting user's capabilities
// and available status actions against it.
func (uc *ShowTask) Execute(ctx context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	task, err := uc.tasks.GetTask(ctx, in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	task.RefreshOverdue(uc.clock.Now())

	return &ShowTaskOutput{
		Task:         task,
		Capabilities: domain.Evaluate(task, in.User),
		Actions:      domain.AvailableActions(task, in.User),
	}, nil
}
