// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Filter domain.TaskFilter
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks []*domain.Task
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	tasks domain.TaskService
	clock domain.Clock
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskService, clock domain.Clock) *ListTasks {
	return &ListTasks{
		tasks: tasks,
		clock: clock,
	}
}

// Execute lists tasks matching the filter. Overdue display flags are
// recomputed locally so they reflect the current clock rather than the
// moment the server built the response.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	tasks, err := uc.tasks.ListTasks(ctx, in.Filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	now := uc.clock.Now()
	for _, task := range tasks {
		task.RefreshOverdue(now)
	}
	return &ListTasksOutput{Tasks: tasks}, nil
}
