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

func TestListTasks_Execute_RefreshesOverdue(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	overdue := seedTask(tasks, domain.StatusInProgress)
	overdue.DueDate = tasks.NowTime.Add(-time.Hour)
	soon := &domain.Task{
		ID:        2,
		Title:     "Review draft",
		Status:    domain.StatusNew,
		Creator:   domain.Ref(2),
		Assignees: []domain.UserRef{domain.Ref(4)},
		DueDate:   tasks.NowTime.Add(12 * time.Hour),
	}
	tasks.Seed(soon)
	clock := &testutil.MockClock{NowTime: tasks.NowTime}

	uc := NewListTasks(tasks, clock)
	out, err := uc.Execute(context.Background(), ListTasksInput{})
	require.NoError(t, err)
	require.Len(t, out.Tasks, 2)

	byID := make(map[int]*domain.Task)
	for _, task := range out.Tasks {
		byID[task.ID] = task
	}
	assert.True(t, byID[1].IsOverdue)
	assert.False(t, byID[1].IsAlmostOverdue)
	assert.False(t, byID[2].IsOverdue)
	assert.True(t, byID[2].IsAlmostOverdue)
}

func TestListTasks_Execute_ExcludesDeletedByDefault(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	seedTask(tasks, domain.StatusInProgress)
	trashed := &domain.Task{ID: 2, Title: "Old", Status: domain.StatusNew, IsDeleted: true}
	tasks.Seed(trashed)
	clock := &testutil.MockClock{NowTime: tasks.NowTime}

	uc := NewListTasks(tasks, clock)
	out, err := uc.Execute(context.Background(), ListTasksInput{})
	require.NoError(t, err)

	require.Len(t, out.Tasks, 1)
	assert.Equal(t, 1, out.Tasks[0].ID)
}

func TestListTasks_Execute_TrashView(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	seedTask(tasks, domain.StatusInProgress)
	trashed := &domain.Task{ID: 2, Title: "Old", Status: domain.StatusNew, IsDeleted: true}
	tasks.Seed(trashed)
	clock := &testutil.MockClock{NowTime: tasks.NowTime}

	uc := NewListTasks(tasks, clock)
	out, err := uc.Execute(context.Background(), ListTasksInput{
		Filter: domain.TaskFilter{DeletedOnly: true},
	})
	require.NoError(t, err)

	require.Len(t, out.Tasks, 1)
	assert.Equal(t, 2, out.Tasks[0].ID)
}
