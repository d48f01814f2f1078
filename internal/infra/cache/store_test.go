package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdesk/taskdesk/internal/domain"
	"github.com/taskdesk/taskdesk/internal/testutil"
)

func newTestStore(t *testing.T) (*Store, *testutil.MockTaskService) {
	t.Helper()
	remote := testutil.NewMockTaskService()
	clock := &testutil.MockClock{NowTime: remote.NowTime}
	return New(remote, clock, &testutil.MockLogger{}), remote
}

func prime(t *testing.T, store *Store, remote *testutil.MockTaskService, task *domain.Task) {
	t.Helper()
	remote.Seed(task)
	_, err := store.GetTask(context.Background(), task.ID)
	require.NoError(t, err)
}

func TestStore_GetTask_Caches(t *testing.T) {
	store, remote := newTestStore(t)
	prime(t, store, remote, &domain.Task{ID: 1, Title: "Prepare report", Status: domain.StatusNew})

	cached := store.Cached(1)
	require.NotNil(t, cached)
	assert.Equal(t, "Prepare report", cached.Title)

	// The returned copy is detached from the cache.
	cached.Title = "mutated"
	assert.Equal(t, "Prepare report", store.Cached(1).Title)
}

func TestStore_UpdateTask_RollsBackOnFailure(t *testing.T) {
	store, remote := newTestStore(t)
	prime(t, store, remote, &domain.Task{ID: 1, Title: "Prepare report", Status: domain.StatusNew})

	remote.Err = assert.AnError
	title := "Renamed"
	_, err := store.UpdateTask(context.Background(), 1, domain.TaskPatch{Title: &title})

	require.Error(t, err)
	assert.Equal(t, "Prepare report", store.Cached(1).Title)
}

func TestStore_UpdateTask_RejectsDeletedBeforeNetwork(t *testing.T) {
	store, remote := newTestStore(t)
	prime(t, store, remote, &domain.Task{ID: 1, Title: "Old", Status: domain.StatusNew, IsDeleted: true})

	title := "Renamed"
	_, err := store.UpdateTask(context.Background(), 1, domain.TaskPatch{Title: &title})

	assert.ErrorIs(t, err, domain.ErrTaskDeleted)
	assert.Zero(t, remote.Calls["UpdateTask"])
}

func TestStore_ChangeStatus_RollsBackOnFailure(t *testing.T) {
	store, remote := newTestStore(t)
	prime(t, store, remote, &domain.Task{ID: 1, Status: domain.StatusInProgress})

	remote.Err = assert.AnError
	_, err := store.ChangeStatus(context.Background(), 1, domain.StatusChange{Status: domain.StatusPaused})

	require.Error(t, err)
	assert.Equal(t, domain.StatusInProgress, store.Cached(1).Status)
}

func TestStore_ChangeStatus_AppliesOptimistically(t *testing.T) {
	store, remote := newTestStore(t)
	prime(t, store, remote, &domain.Task{ID: 1, Status: domain.StatusInProgress})

	task, err := store.ChangeStatus(context.Background(), 1, domain.StatusChange{Status: domain.StatusPaused})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaused, task.Status)
	assert.Equal(t, domain.StatusPaused, store.Cached(1).Status)
	assert.Equal(t, 1, remote.Calls["ChangeStatus"])
}

func TestStore_UpdateTaskDebounced_Coalesces(t *testing.T) {
	store, remote := newTestStore(t)
	store.SetDebounce(20 * time.Millisecond)
	prime(t, store, remote, &domain.Task{ID: 1, Title: "Old", Status: domain.StatusNew})

	done := make(chan error, 1)
	first := "First"
	second := "Second"
	store.UpdateTaskDebounced(context.Background(), 1, domain.TaskPatch{Title: &first}, nil)
	store.UpdateTaskDebounced(context.Background(), 1, domain.TaskPatch{Title: &second}, func(_ *domain.Task, err error) {
		done <- err
	})

	// The local copy reflects the edit before the dispatch.
	assert.Equal(t, "Second", store.Cached(1).Title)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced update never dispatched")
	}

	assert.Equal(t, 1, remote.Calls["UpdateTask"])
	assert.Equal(t, "Second", store.Cached(1).Title)
}

func TestStore_FlushPending_DispatchesImmediately(t *testing.T) {
	store, remote := newTestStore(t)
	store.SetDebounce(time.Hour)
	prime(t, store, remote, &domain.Task{ID: 1, Title: "Old", Status: domain.StatusNew})

	done := make(chan error, 1)
	title := "Flushed"
	store.UpdateTaskDebounced(context.Background(), 1, domain.TaskPatch{Title: &title}, func(_ *domain.Task, err error) {
		done <- err
	})
	store.FlushPending(1)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("flush never dispatched")
	}
	assert.Equal(t, 1, remote.Calls["UpdateTask"])
}

func TestStore_AddComment_ReconcilesWithServer(t *testing.T) {
	store, remote := newTestStore(t)
	prime(t, store, remote, &domain.Task{ID: 1, Status: domain.StatusNew})

	comment, err := store.AddComment(context.Background(), 1, domain.CommentDraft{Text: "hello"})

	require.NoError(t, err)
	require.NotZero(t, comment.ID)
	cached := store.Cached(1)
	require.Len(t, cached.Comments, 1)
	assert.Equal(t, comment.ID, cached.Comments[0].ID)
}

func TestStore_AddComment_RollsBackOnFailure(t *testing.T) {
	store, remote := newTestStore(t)
	prime(t, store, remote, &domain.Task{ID: 1, Status: domain.StatusNew})

	remote.Err = assert.AnError
	_, err := store.AddComment(context.Background(), 1, domain.CommentDraft{Text: "hello"})

	require.Error(t, err)
	assert.Empty(t, store.Cached(1).Comments)
}

func TestStore_DeleteRestorePurge(t *testing.T) {
	store, remote := newTestStore(t)
	prime(t, store, remote, &domain.Task{ID: 1, Status: domain.StatusNew})

	require.NoError(t, store.DeleteTask(context.Background(), 1))
	assert.True(t, store.Cached(1).IsDeleted)
	assert.NotNil(t, store.Cached(1).DeletedAt)

	require.NoError(t, store.RestoreTask(context.Background(), 1))
	assert.False(t, store.Cached(1).IsDeleted)
	assert.Nil(t, store.Cached(1).DeletedAt)

	require.NoError(t, store.DeleteTask(context.Background(), 1))
	require.NoError(t, store.PurgeTask(context.Background(), 1))
	assert.Nil(t, store.Cached(1))
}

func TestStore_RefreshOverdue(t *testing.T) {
	store, remote := newTestStore(t)
	now := remote.NowTime
	prime(t, store, remote, &domain.Task{ID: 1, Status: domain.StatusInProgress, DueDate: now.Add(time.Hour)})
	prime(t, store, remote, &domain.Task{ID: 2, Status: domain.StatusInProgress, DueDate: now.Add(72 * time.Hour)})

	// One hour ahead the first task is almost overdue.
	changed := store.RefreshOverdue(now)
	assert.Equal(t, 1, changed)
	assert.True(t, store.Cached(1).IsAlmostOverdue)

	// Once past due, the flag flips again.
	changed = store.RefreshOverdue(now.Add(2 * time.Hour))
	assert.Equal(t, 1, changed)
	assert.True(t, store.Cached(1).IsOverdue)

	// A second pass with the same clock changes nothing.
	assert.Zero(t, store.RefreshOverdue(now.Add(2*time.Hour)))
}

func TestStore_RestructureChecklist_NotOptimistic(t *testing.T) {
	store, remote := newTestStore(t)
	prime(t, store, remote, &domain.Task{
		ID:     1,
		Status: domain.StatusNew,
		Checklist: []domain.ChecklistItem{
			{ID: 10, TaskID: 1, Level: 0, ItemOrder: 0},
			{ID: 11, TaskID: 1, Level: 0, ItemOrder: 1},
		},
	})

	// A boundary violation changes nothing locally.
	_, err := store.RestructureChecklist(context.Background(), 1, 10, domain.ChecklistOp{Action: "indent"})
	assert.ErrorIs(t, err, domain.ErrChecklistLevel)
	assert.Equal(t, 0, store.Cached(1).Checklist[0].Level)

	// A legal operation replaces the local list with the server's result.
	items, err := store.RestructureChecklist(context.Background(), 1, 11, domain.ChecklistOp{Action: "indent"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, store.Cached(1).Checklist[1].Level)
}
