package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdesk/taskdesk/internal/domain"
	"github.com/taskdesk/taskdesk/internal/testutil"
)

func TestShowTask_Execute_ActionsAndCapabilities(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	seedTask(tasks, domain.StatusInProgress)
	clock := &testutil.MockClock{NowTime: tasks.NowTime}
	assignee := &domain.User{ID: 4, Role: domain.RoleEmployee}

	uc := NewShowTask(tasks, clock)
	out, err := uc.Execute(context.Background(), ShowTaskInput{User: assignee, TaskID: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Task.ID)
	assert.True(t, out.Capabilities.CanChangeStatus)
	assert.True(t, out.Capabilities.CanComment)
	assert.False(t, out.Capabilities.CanEdit)

	var names []string
	for _, a := range out.Actions {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"pause", "complete", "submit"}, names)
}

func TestShowTask_Execute_RefreshesOverdue(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	task := seedTask(tasks, domain.StatusInProgress)
	task.DueDate = tasks.NowTime.Add(-time.Hour)
	clock := &testutil.MockClock{NowTime: tasks.NowTime}
	assignee := &domain.User{ID: 4, Role: domain.RoleEmployee}

	uc := NewShowTask(tasks, clock)
	out, err := uc.Execute(context.Background(), ShowTaskInput{User: assignee, TaskID: 1})
	require.NoError(t, err)

	assert.True(t, out.Task.IsOverdue)
}

func TestShowTask_Execute_DeletedTaskHasNoActions(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	task := seedTask(tasks, domain.StatusInProgress)
	task.IsDeleted = true
	clock := &testutil.MockClock{NowTime: tasks.NowTime}
	creator := &domain.User{ID: 2, Role: domain.RoleEmployee}

	uc := NewShowTask(tasks, clock)
	out, err := uc.Execute(context.Background(), ShowTaskInput{User: creator, TaskID: 1})
	require.NoError(t, err)

	assert.Empty(t, out.Actions)
	assert.Equal(t, domain.Capabilities{}, out.Capabilities)
}

func TestShowTask_Execute_NotFound(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	clock := &testutil.MockClock{NowTime: tasks.NowTime}

	uc := NewShowTask(tasks, clock)
	_, err := uc.Execute(context.Background(), ShowTaskInput{User: &domain.User{ID: 4}, TaskID: 9})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
