package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdesk/taskdesk/internal/domain"
	"github.com/taskdesk/taskdesk/internal/testutil"
)

func TestCompleteTask_Execute_FromInProgress(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	seedTask(tasks, domain.StatusInProgress)
	assignee := &domain.User{ID: 4, Role: domain.RoleEmployee}

	uc := NewCompleteTask(tasks, &testutil.MockLogger{})
	out, err := uc.Execute(context.Background(), CompleteTaskInput{
		User:   assignee,
		Result: "Shipped",
		TaskID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, out.Task.Status)
	assert.Equal(t, "Shipped", out.Task.Result)
}

func TestCompleteTask_Execute_FromOnControlApproves(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	seedTask(tasks, domain.StatusOnControl)
	creator := &domain.User{ID: 2, Role: domain.RoleEmployee}

	uc := NewCompleteTask(tasks, &testutil.MockLogger{})
	out, err := uc.Execute(context.Background(), CompleteTaskInput{
		User:   creator,
		Result: "Accepted",
		TaskID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, out.Task.Status)
	entries := statusChangedEntries(tasks.Tasks[1])
	require.Len(t, entries, 1)
	assert.Equal(t, string(domain.StatusOnControl), entries[0].OldValue)
}

func TestCompleteTask_Execute_NotCompletable(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	seedTask(tasks, domain.StatusPaused)
	assignee := &domain.User{ID: 4, Role: domain.RoleEmployee}

	uc := NewCompleteTask(tasks, &testutil.MockLogger{})
	_, err := uc.Execute(context.Background(), CompleteTaskInput{
		User:   assignee,
		Result: "Shipped",
		TaskID: 1,
	})

	assert.ErrorIs(t, err, domain.ErrActionNotAvailable)
}

func TestCompleteTask_Execute_AssigneeCannotApprove(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	seedTask(tasks, domain.StatusOnControl)
	assignee := &domain.User{ID: 4, Role: domain.RoleEmployee}

	uc := NewCompleteTask(tasks, &testutil.MockLogger{})
	_, err := uc.Execute(context.Background(), CompleteTaskInput{
		User:   assignee,
		Result: "Accepted",
		TaskID: 1,
	})

	assert.ErrorIs(t, err, domain.ErrActionNotAvailable)
}
