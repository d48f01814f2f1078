package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdesk/taskdesk/internal/domain"
	"github.com/taskdesk/taskdesk/internal/testutil"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestEditTask_Execute_Success(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	seedTask(tasks, domain.StatusInProgress)
	creator := &domain.User{ID: 2, Role: domain.RoleEmployee}

	uc := NewEditTask(tasks, &testutil.MockLogger{})
	out, err := uc.Execute(context.Background(), EditTaskInput{
		User:   creator,
		Patch:  domain.TaskPatch{Title: strPtr("Renamed"), Priority: intPtr(2)},
		TaskID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", out.Task.Title)
	assert.Equal(t, 2, out.Task.Priority)
}

func TestEditTask_Execute_ValidationBeforeNetwork(t *testing.T) {
	tests := []struct {
		name   string
		patch  domain.TaskPatch
		expect error
	}{
		{"empty patch", domain.TaskPatch{}, domain.ErrNoFieldsToUpdate},
		{"empty title", domain.TaskPatch{Title: strPtr("")}, domain.ErrEmptyTitle},
		{"priority out of range", domain.TaskPatch{Priority: intPtr(9)}, domain.ErrInvalidPriority},
		{"no assignees", domain.TaskPatch{Assignees: &[]int{}}, domain.ErrNoAssignees},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := testutil.NewMockTaskService()
			seedTask(tasks, domain.StatusInProgress)
			creator := &domain.User{ID: 2, Role: domain.RoleEmployee}

			uc := NewEditTask(tasks, &testutil.MockLogger{})
			_, err := uc.Execute(context.Background(), EditTaskInput{User: creator, Patch: tt.patch, TaskID: 1})

			assert.ErrorIs(t, err, tt.expect)
			assert.Zero(t, tasks.Calls["GetTask"])
			assert.Zero(t, tasks.Calls["UpdateTask"])
		})
	}
}

func TestEditTask_Execute_DeletedTask(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	task := seedTask(tasks, domain.StatusInProgress)
	task.IsDeleted = true
	creator := &domain.User{ID: 2, Role: domain.RoleEmployee}

	uc := NewEditTask(tasks, &testutil.MockLogger{})
	_, err := uc.Execute(context.Background(), EditTaskInput{
		User:   creator,
		Patch:  domain.TaskPatch{Title: strPtr("Renamed")},
		TaskID: 1,
	})

	assert.ErrorIs(t, err, domain.ErrTaskDeleted)
	assert.Zero(t, tasks.Calls["UpdateTask"])
}

func TestEditTask_Execute_PermissionDenied(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	seedTask(tasks, domain.StatusInProgress)
	// The assignee may work the task but not edit its fields.
	assignee := &domain.User{ID: 4, Role: domain.RoleEmployee}

	uc := NewEditTask(tasks, &testutil.MockLogger{})
	_, err := uc.Execute(context.Background(), EditTaskInput{
		User:   assignee,
		Patch:  domain.TaskPatch{Title: strPtr("Renamed")},
		TaskID: 1,
	})

	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.Zero(t, tasks.Calls["UpdateTask"])
}

func TestEditTask_Execute_DirectorMayEdit(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	seedTask(tasks, domain.StatusInProgress)
	director := &domain.User{ID: 9, Role: domain.RoleDirector}

	uc := NewEditTask(tasks, &testutil.MockLogger{})
	_, err := uc.Execute(context.Background(), EditTaskInput{
		User:   director,
		Patch:  domain.TaskPatch{Title: strPtr("Renamed")},
		TaskID: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", tasks.Tasks[1].Title)
}
