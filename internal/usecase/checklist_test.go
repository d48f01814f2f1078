package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdesk/taskdesk/internal/domain"
	"github.com/taskdesk/taskdesk/internal/testutil"
)

func newChecklistFixture(t *testing.T, levels ...int) (*Checklist, *testutil.MockTaskService) {
	t.Helper()
	tasks := testutil.NewMockTaskService()
	task := seedTask(tasks, domain.StatusInProgress)
	for i, level := range levels {
		task.Checklist = append(task.Checklist, domain.ChecklistItem{
			ID:        i + 1,
			TaskID:    1,
			Text:      "step",
			Level:     level,
			ItemOrder: i,
		})
	}
	clock := &testutil.MockClock{NowTime: tasks.NowTime}
	return NewChecklist(tasks, &testutil.MockLogger{}, clock), tasks
}

func TestChecklist_Add_Success(t *testing.T) {
	uc, _ := newChecklistFixture(t)
	assignee := &domain.User{ID: 4, Role: domain.RoleEmployee}

	out, err := uc.Add(context.Background(), ChecklistInput{User: assignee, Text: " Draft outline ", TaskID: 1})
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.Equal(t, "Draft outline", out.Items[0].Text)
	assert.Equal(t, 0, out.Items[0].Level)
}

func TestChecklist_Add_EmptyText(t *testing.T) {
	uc, tasks := newChecklistFixture(t)
	assignee := &domain.User{ID: 4, Role: domain.RoleEmployee}

	_, err := uc.Add(context.Background(), ChecklistInput{User: assignee, Text: "   ", TaskID: 1})

	assert.Error(t, err)
	assert.Zero(t, tasks.Calls["AddChecklistItem"])
}

func TestChecklist_Add_PermissionDenied(t *testing.T) {
	uc, tasks := newChecklistFixture(t)
	outsider := &domain.User{ID: 7, Role: domain.RoleEmployee}

	_, err := uc.Add(context.Background(), ChecklistInput{User: outsider, Text: "step", TaskID: 1})

	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.Zero(t, tasks.Calls["AddChecklistItem"])
}

func TestChecklist_Toggle_StampsCompletion(t *testing.T) {
	uc, tasks := newChecklistFixture(t, 0)
	assignee := &domain.User{ID: 4, Role: domain.RoleEmployee}

	out, err := uc.Toggle(context.Background(), ChecklistInput{User: assignee, TaskID: 1, ItemID: 1})
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].Completed)
	assert.Equal(t, 4, out.Items[0].CompletedBy)
	require.NotNil(t, out.Items[0].CompletedAt)
	assert.Equal(t, tasks.NowTime, *out.Items[0].CompletedAt)
}

func TestChecklist_Toggle_ClearsCompletion(t *testing.T) {
	uc, tasks := newChecklistFixture(t, 0)
	now := tasks.NowTime
	tasks.Tasks[1].Checklist[0].Completed = true
	tasks.Tasks[1].Checklist[0].CompletedBy = 4
	tasks.Tasks[1].Checklist[0].CompletedAt = &now
	assignee := &domain.User{ID: 4, Role: domain.RoleEmployee}

	out, err := uc.Toggle(context.Background(), ChecklistInput{User: assignee, TaskID: 1, ItemID: 1})
	require.NoError(t, err)

	assert.False(t, out.Items[0].Completed)
	assert.Zero(t, out.Items[0].CompletedBy)
	assert.Nil(t, out.Items[0].CompletedAt)
}

func TestChecklist_Toggle_ItemNotFound(t *testing.T) {
	uc, _ := newChecklistFixture(t, 0)
	assignee := &domain.User{ID: 4, Role: domain.RoleEmployee}

	_, err := uc.Toggle(context.Background(), ChecklistInput{User: assignee, TaskID: 1, ItemID: 99})

	assert.ErrorIs(t, err, domain.ErrChecklistItemNotFound)
}

func TestChecklist_Edit_Success(t *testing.T) {
	uc, _ := newChecklistFixture(t, 0)
	creator := &domain.User{ID: 2, Role: domain.RoleEmployee}

	out, err := uc.Edit(context.Background(), ChecklistInput{User: creator, Text: "Revised step", TaskID: 1, ItemID: 1})
	require.NoError(t, err)

	assert.Equal(t, "Revised step", out.Items[0].Text)
}

func TestChecklist_Delete_Resequences(t *testing.T) {
	uc, _ := newChecklistFixture(t, 0, 1, 0)
	assignee := &domain.User{ID: 4, Role: domain.RoleEmployee}

	out, err := uc.Delete(context.Background(), ChecklistInput{User: assignee, TaskID: 1, ItemID: 1})
	require.NoError(t, err)

	require.Len(t, out.Items, 2)
	assert.Equal(t, 2, out.Items[0].ID)
	// The orphaned child is clamped back to the top level.
	assert.Equal(t, 0, out.Items[0].Level)
	assert.Equal(t, 0, out.Items[0].ItemOrder)
	assert.Equal(t, 1, out.Items[1].ItemOrder)
}

func TestChecklist_Restructure_Indent(t *testing.T) {
	uc, _ := newChecklistFixture(t, 0, 0)
	assignee := &domain.User{ID: 4, Role: domain.RoleEmployee}

	out, err := uc.Restructure(context.Background(),
		ChecklistInput{User: assignee, TaskID: 1, ItemID: 2},
		domain.ChecklistOp{Action: "indent"})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Items[1].Level)
}

func TestChecklist_Restructure_BoundarySurfaces(t *testing.T) {
	uc, tasks := newChecklistFixture(t, 0, 0)
	assignee := &domain.User{ID: 4, Role: domain.RoleEmployee}

	// The first item has no predecessor to nest under.
	_, err := uc.Restructure(context.Background(),
		ChecklistInput{User: assignee, TaskID: 1, ItemID: 1},
		domain.ChecklistOp{Action: "indent"})

	assert.ErrorIs(t, err, domain.ErrChecklistLevel)
	assert.Equal(t, 0, tasks.Tasks[1].Checklist[0].Level)
	// Boundary ops are rejected against the cached list, not the server.
	assert.Zero(t, tasks.Calls["RestructureChecklist"])
}

func TestChecklist_Restructure_MoveBoundaryLocal(t *testing.T) {
	uc, tasks := newChecklistFixture(t, 0, 1)
	assignee := &domain.User{ID: 4, Role: domain.RoleEmployee}

	// The only child has no sibling block to swap with.
	_, err := uc.Restructure(context.Background(),
		ChecklistInput{User: assignee, TaskID: 1, ItemID: 2},
		domain.ChecklistOp{Action: "move", Direction: "down"})

	assert.ErrorIs(t, err, domain.ErrChecklistBoundary)
	assert.Zero(t, tasks.Calls["RestructureChecklist"])
}

func TestChecklist_Restructure_MoveUp(t *testing.T) {
	uc, _ := newChecklistFixture(t, 0, 0)
	assignee := &domain.User{ID: 4, Role: domain.RoleEmployee}

	out, err := uc.Restructure(context.Background(),
		ChecklistInput{User: assignee, TaskID: 1, ItemID: 2},
		domain.ChecklistOp{Action: "move", Direction: "up"})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Items[0].ID)
	assert.Equal(t, 1, out.Items[1].ID)
}

func TestChecklist_DeletedTask(t *testing.T) {
	uc, tasks := newChecklistFixture(t, 0)
	tasks.Tasks[1].IsDeleted = true
	assignee := &domain.User{ID: 4, Role: domain.RoleEmployee}

	_, err := uc.Toggle(context.Background(), ChecklistInput{User: assignee, TaskID: 1, ItemID: 1})

	assert.ErrorIs(t, err, domain.ErrTaskDeleted)
}
