package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdesk/taskdesk/internal/domain"
	"github.com/taskdesk/taskdesk/internal/testutil"
)

var errCreateRejected = errors.New("create rejected")

const taskFileYAML = `
- title: First task
  due: 2026-09-01T18:00:00Z
  assignees: [4]
  tags: [backend]
- title: Second task
  priority: 2
  due: 2026-09-02T12:00:00Z
  assignees: [4, 7]
`

// failingCreateService fails CreateTask starting at the given call number.
type failingCreateService struct {
	*testutil.MockTaskService
	failAt int
	calls  int
}

func (s *failingCreateService) CreateTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	s.calls++
	if s.calls >= s.failAt {
		return nil, errCreateRejected
	}
	return s.MockTaskService.CreateTask(ctx, draft)
}

func TestCreateTasksFromFile_Execute_Success(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	clock := &testutil.MockClock{NowTime: tasks.NowTime}

	uc := NewCreateTasksFromFile(tasks, &testutil.MockLogger{}, clock)
	out, err := uc.Execute(context.Background(), CreateTasksFromFileInput{Content: []byte(taskFileYAML)})
	require.NoError(t, err)

	require.Len(t, out.Tasks, 2)
	assert.Equal(t, "First task", out.Tasks[0].Title)
	assert.Equal(t, 3, out.Tasks[0].Priority)
	assert.Equal(t, "Second task", out.Tasks[1].Title)
	assert.Equal(t, 2, out.Tasks[1].Priority)
	assert.Equal(t, 2, tasks.Calls["CreateTask"])
}

func TestCreateTasksFromFile_Execute_ValidatesWholeFileFirst(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	clock := &testutil.MockClock{NowTime: tasks.NowTime}
	content := []byte(`
- title: First task
  due: 2026-09-01T18:00:00Z
  assignees: [4]
- title: ""
  due: 2026-09-02T12:00:00Z
  assignees: [4]
`)

	uc := NewCreateTasksFromFile(tasks, &testutil.MockLogger{}, clock)
	_, err := uc.Execute(context.Background(), CreateTasksFromFileInput{Content: content})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	assert.Contains(t, err.Error(), "task 2")
	// Nothing is created when any entry fails validation.
	assert.Zero(t, tasks.Calls["CreateTask"])
}

func TestCreateTasksFromFile_Execute_EmptyFile(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	clock := &testutil.MockClock{NowTime: tasks.NowTime}

	uc := NewCreateTasksFromFile(tasks, &testutil.MockLogger{}, clock)
	_, err := uc.Execute(context.Background(), CreateTasksFromFileInput{Content: []byte("[]")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tasks defined")
}

func TestCreateTasksFromFile_Execute_MidBatchFailure(t *testing.T) {
	tasks := testutil.NewMockTaskService()
	clock := &testutil.MockClock{NowTime: tasks.NowTime}
	svc := &failingCreateService{MockTaskService: tasks, failAt: 2}

	uc := NewCreateTasksFromFile(svc, &testutil.MockLogger{}, clock)
	out, err := uc.Execute(context.Background(), CreateTasksFromFileInput{Content: []byte(taskFileYAML)})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create task 2 of 2")
	assert.ErrorIs(t, err, errCreateRejected)

	// The first task survives the failure.
	require.NotNil(t, out)
	require.Len(t, out.Tasks, 1)
	assert.Equal(t, "First task", out.Tasks[0].Title)
}
