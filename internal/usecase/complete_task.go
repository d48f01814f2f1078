package usecase

import (
	"context"
	"fmt"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// CompleteTaskInput contains the parameters for completing a task.
// Fields are ordered to minimize memory padding.
type CompleteTaskInput struct {
	User        *domain.User // Acting user (required)
	Result      string       // Completion result (required)
	ActualHours float64      // Actual hours spent, optional
	TaskID      int          // Task ID (required)
}

// CompleteTaskOutput contains the completed task.
type CompleteTaskOutput struct {
	Task *domain.Task
}

// CompleteTask is the use case behind the completion dialog: it picks
// the result-bearing action for the task's current status (complete
// from in_progress, approve from on_control) and applies it.
type CompleteTask struct {
	change *ChangeStatus
	tasks  domain.TaskService
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(tasks domain.TaskService, logger domain.Logger) *CompleteTask {
	return &CompleteTask{
		change: NewChangeStatus(tasks, logger),
		tasks:  tasks,
	}
}

// Execute completes the task with the given result.
func (uc *CompleteTask) Execute(ctx context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	task, err := uc.tasks.GetTask(ctx, in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	name := "complete"
	if task.Status == domain.StatusOnControl {
		name = "approve"
	}

	out, err := uc.change.Execute(ctx, ChangeStatusInput{
		User:        in.User,
		Action:      name,
		Result:      in.Result,
		ActualHours: in.ActualHours,
		TaskID:      in.TaskID,
	})
	if err != nil {
		return nil, err
	}
	return &CompleteTaskOutput{Task: out.Task}, nil
}
