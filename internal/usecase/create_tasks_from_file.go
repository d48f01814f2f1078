package usecase

import (
	"context"
	"fmt"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// CreateTasksFromFileInput contains the parameters for bulk task creation.
type CreateTasksFromFileInput struct {
	Content []byte // YAML document with one or more task drafts
}

// CreateTasksFromFileOutput contains the created tasks.
type CreateTasksFromFileOutput struct {
	Tasks []*domain.Task
}

// CreateTasksFromFile is the use case for creating tasks from a YAML file.
type CreateTasksFromFile struct {
	tasks  domain.TaskService
	logger domain.Logger
	clock  domain.Clock
}

// NewCreateTasksFromFile creates a new CreateTasksFromFile use case.
func NewCreateTasksFromFile(tasks domain.TaskService, logger domain.Logger, clock domain.Clock) *CreateTasksFromFile {
	return &CreateTasksFromFile{
		tasks:  tasks,
		logger: logger,
		clock:  clock,
	}
}

// Execute parses and validates the whole document first, then creates
// the tasks in order. A mid-batch failure returns the tasks created so
// far alongside the error.
func (uc *CreateTasksFromFile) Execute(ctx context.Context, in CreateTasksFromFileInput) (*CreateTasksFromFileOutput, error) {
	drafts, err := domain.ParseTaskDrafts(in.Content, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("no tasks defined in file")
	}

	out := &CreateTasksFromFileOutput{}
	for i, draft := range drafts {
		task, err := uc.tasks.CreateTask(ctx, draft)
		if err != nil {
			return out, fmt.Errorf("create task %d of %d: %w", i+1, len(drafts), err)
		}
		uc.logger.Info(task.ID, "task", fmt.Sprintf("created task %q", task.Title))
		out.Tasks = append(out.Tasks, task)
	}
	return out, nil
}
