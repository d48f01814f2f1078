// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockTaskService is an in-memory test double for domain.TaskService.
// It mimics the server's observable behavior: status changes append a
// history entry, deletes are soft, and transitions are validated.
// Fields are ordered to minimize memory padding.
type MockTaskService struct {
	Tasks map[int]*domain.Task

	// Err, when set, is returned by every call. Calls counts invocations
	// of the named method, letting tests assert a call never happened.
	Err   error
	Calls map[string]int

	NowTime   time.Time
	NextID    int
	nextSubID int
}

// NewMockTaskService creates a MockTaskService with initialized maps.
func NewMockTaskService() *MockTaskService {
	return &MockTaskService{
		Tasks:     make(map[int]*domain.Task),
		Calls:     make(map[string]int),
		NextID:    1,
		nextSubID: 1,
		NowTime:   time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
	}
}

// Seed stores a task under its ID.
func (m *MockTaskService) Seed(task *domain.Task) {
	m.Tasks[task.ID] = task
	if task.ID >= m.NextID {
		m.NextID = task.ID + 1
	}
}

func (m *MockTaskService) record(method string) error {
	m.Calls[method]++
	return m.Err
}

func (m *MockTaskService) get(id int) (*domain.Task, error) {
	task, ok := m.Tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// cloneTask copies a task the way a fresh response decode would: callers
// never observe the stored entity.
func cloneTask(t *domain.Task) *domain.Task {
	clone := *t
	clone.Tags = append([]string(nil), t.Tags...)
	clone.Assignees = append([]domain.UserRef(nil), t.Assignees...)
	clone.Observers = append([]domain.UserRef(nil), t.Observers...)
	clone.Comments = append([]domain.Comment(nil), t.Comments...)
	clone.History = append([]domain.HistoryEntry(nil), t.History...)
	clone.Checklist = append([]domain.ChecklistItem(nil), t.Checklist...)
	return &clone
}

// ListTasks returns all seeded tasks, honoring the deleted-only and
// include-deleted filter flags.
func (m *MockTaskService) ListTasks(_ context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	if err := m.record("ListTasks"); err != nil {
		return nil, err
	}
	var tasks []*domain.Task
	for _, t := range m.Tasks {
		if filter.DeletedOnly && !t.IsDeleted {
			continue
		}
		if !filter.DeletedOnly && !filter.IncludeDeleted && t.IsDeleted {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		tasks = append(tasks, cloneTask(t))
	}
	return tasks, nil
}

// GetTask retrieves a copy of a task by ID.
func (m *MockTaskService) GetTask(_ context.Context, id int) (*domain.Task, error) {
	if err := m.record("GetTask"); err != nil {
		return nil, err
	}
	task, err := m.get(id)
	if err != nil {
		return nil, err
	}
	return cloneTask(task), nil
}

// CreateTask stores a new task from the draft.
func (m *MockTaskService) CreateTask(_ context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	if err := m.record("CreateTask"); err != nil {
		return nil, err
	}
	task := &domain.Task{
		ID:          m.NextID,
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Priority:    draft.Priority,
		ProcessID:   draft.ProcessID,
		Tags:        draft.Tags,
		Status:      domain.StatusNew,
		Created:     m.NowTime,
	}
	for _, id := range draft.Assignees {
		task.Assignees = append(task.Assignees, domain.Ref(id))
	}
	for _, id := range draft.Observers {
		task.Observers = append(task.Observers, domain.Ref(id))
	}
	task.History = append(task.History, domain.HistoryEntry{
		ID:         m.takeSubID(),
		TaskID:     task.ID,
		ActionType: domain.ActionCreated,
		Created:    m.NowTime,
	})
	m.NextID++
	m.Tasks[task.ID] = task
	return cloneTask(task), nil
}

// UpdateTask applies the patch to the stored task.
func (m *MockTaskService) UpdateTask(_ context.Context, id int, patch domain.TaskPatch) (*domain.Task, error) {
	if err := m.record("UpdateTask"); err != nil {
		return nil, err
	}
	task, err := m.get(id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.ProcessID != nil {
		task.ProcessID = *patch.ProcessID
	}
	if patch.Tags != nil {
		task.Tags = *patch.Tags
	}
	if patch.Assignees != nil {
		task.Assignees = nil
		for _, uid := range *patch.Assignees {
			task.Assignees = append(task.Assignees, domain.Ref(uid))
		}
	}
	if patch.ActualHours != nil {
		task.ActualHours = *patch.ActualHours
	}
	task.History = append(task.History, domain.HistoryEntry{
		ID:         m.takeSubID(),
		TaskID:     id,
		ActionType: domain.ActionFieldChanged,
		Created:    m.NowTime,
	})
	return cloneTask(task), nil
}

// ChangeStatus validates the transition, applies it and appends a
// STATUS_CHANGED history entry, matching the server's side effect.
func (m *MockTaskService) ChangeStatus(_ context.Context, id int, change domain.StatusChange) (*domain.Task, error) {
	if err := m.record("ChangeStatus"); err != nil {
		return nil, err
	}
	task, err := m.get(id)
	if err != nil {
		return nil, err
	}
	if !task.Status.CanTransitionTo(change.Status) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, task.Status, change.Status)
	}
	task.History = append(task.History, domain.HistoryEntry{
		ID:         m.takeSubID(),
		TaskID:     id,
		ActionType: domain.ActionStatusChanged,
		OldValue:   string(task.Status),
		NewValue:   string(change.Status),
		Created:    m.NowTime,
	})
	task.Status = change.Status
	if change.Result != "" {
		task.Result = change.Result
	}
	if change.ActualHours != 0 {
		task.ActualHours = change.ActualHours
	}
	if change.Status == domain.StatusCompleted {
		now := m.NowTime
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
	return cloneTask(task), nil
}

// DeleteTask soft-deletes the task.
func (m *MockTaskService) DeleteTask(_ context.Context, id int) error {
	if err := m.record("DeleteTask"); err != nil {
		return err
	}
	task, err := m.get(id)
	if err != nil {
		return err
	}
	now := m.NowTime
	task.IsDeleted = true
	task.DeletedAt = &now
	task.History = append(task.History, domain.HistoryEntry{
		ID:         m.takeSubID(),
		TaskID:     id,
		ActionType: domain.ActionDeleted,
		Created:    m.NowTime,
	})
	return nil
}

// RestoreTask clears the soft-delete markers.
func (m *MockTaskService) RestoreTask(_ context.Context, id int) error {
	if err := m.record("RestoreTask"); err != nil {
		return err
	}
	task, err := m.get(id)
	if err != nil {
		return err
	}
	task.IsDeleted = false
	task.DeletedAt = nil
	task.DeletedBy = 0
	task.History = append(task.History, domain.HistoryEntry{
		ID:         m.takeSubID(),
		TaskID:     id,
		ActionType: domain.ActionRestored,
		Created:    m.NowTime,
	})
	return nil
}

// PurgeTask removes the task permanently.
func (m *MockTaskService) PurgeTask(_ context.Context, id int) error {
	if err := m.record("PurgeTask"); err != nil {
		return err
	}
	if _, err := m.get(id); err != nil {
		return err
	}
	delete(m.Tasks, id)
	return nil
}

// AddComment appends a comment to the task.
func (m *MockTaskService) AddComment(_ context.Context, taskID int, draft domain.CommentDraft) (*domain.Comment, error) {
	if err := m.record("AddComment"); err != nil {
		return nil, err
	}
	task, err := m.get(taskID)
	if err != nil {
		return nil, err
	}
	comment := domain.Comment{
		ID:       m.takeSubID(),
		TaskID:   taskID,
		Text:     draft.Text,
		IsResult: draft.IsResult,
		Created:  m.NowTime,
	}
	task.Comments = append(task.Comments, comment)
	return &comment, nil
}

// UpdateComment edits a comment's text and marks it edited.
func (m *MockTaskService) UpdateComment(_ context.Context, taskID, commentID int, text string) (*domain.Comment, error) {
	if err := m.record("UpdateComment"); err != nil {
		return nil, err
	}
	task, err := m.get(taskID)
	if err != nil {
		return nil, err
	}
	for i := range task.Comments {
		if task.Comments[i].ID == commentID {
			now := m.NowTime
			task.Comments[i].Text = text
			task.Comments[i].IsEdited = true
			task.Comments[i].EditedAt = &now
			return &task.Comments[i], nil
		}
	}
	return nil, domain.ErrCommentNotFound
}

// DeleteComment removes a comment.
func (m *MockTaskService) DeleteComment(_ context.Context, taskID, commentID int) error {
	if err := m.record("DeleteComment"); err != nil {
		return err
	}
	task, err := m.get(taskID)
	if err != nil {
		return err
	}
	for i := range task.Comments {
		if task.Comments[i].ID == commentID {
			task.Comments = append(task.Comments[:i], task.Comments[i+1:]...)
			return nil
		}
	}
	return domain.ErrCommentNotFound
}

// AddChecklistItem appends a top-level checklist item.
func (m *MockTaskService) AddChecklistItem(_ context.Context, taskID int, text string) (*domain.ChecklistItem, error) {
	if err := m.record("AddChecklistItem"); err != nil {
		return nil, err
	}
	task, err := m.get(taskID)
	if err != nil {
		return nil, err
	}
	item := domain.ChecklistItem{
		ID:        m.takeSubID(),
		TaskID:    taskID,
		Text:      text,
		ItemOrder: len(task.Checklist),
	}
	task.Checklist = append(task.Checklist, item)
	return &item, nil
}

// UpdateChecklistItem replaces the stored item with the given one.
func (m *MockTaskService) UpdateChecklistItem(_ context.Context, taskID int, item domain.ChecklistItem) (*domain.ChecklistItem, error) {
	if err := m.record("UpdateChecklistItem"); err != nil {
		return nil, err
	}
	task, err := m.get(taskID)
	if err != nil {
		return nil, err
	}
	for i := range task.Checklist {
		if task.Checklist[i].ID == item.ID {
			task.Checklist[i] = item
			return &task.Checklist[i], nil
		}
	}
	return nil, domain.ErrChecklistItemNotFound
}

// DeleteChecklistItem removes an item and resequences the rest.
func (m *MockTaskService) DeleteChecklistItem(_ context.Context, taskID, itemID int) error {
	if err := m.record("DeleteChecklistItem"); err != nil {
		return err
	}
	task, err := m.get(taskID)
	if err != nil {
		return err
	}
	for i := range task.Checklist {
		if task.Checklist[i].ID == itemID {
			task.Checklist = domain.Resequence(append(task.Checklist[:i:i], task.Checklist[i+1:]...))
			return nil
		}
	}
	return domain.ErrChecklistItemNotFound
}

// RestructureChecklist applies the structural op server-side and returns
// the re-leveled list.
func (m *MockTaskService) RestructureChecklist(_ context.Context, taskID, itemID int, op domain.ChecklistOp) ([]domain.ChecklistItem, error) {
	if err := m.record("RestructureChecklist"); err != nil {
		return nil, err
	}
	task, err := m.get(taskID)
	if err != nil {
		return nil, err
	}
	items, err := domain.RestructureItems(task.Checklist, itemID, op)
	if err != nil {
		return nil, err
	}
	task.Checklist = items
	return items, nil
}

func (m *MockTaskService) takeSubID() int {
	id := m.nextSubID + 1000
	m.nextSubID++
	return id
}

// MockDirectory is a test double for domain.Directory.
type MockDirectory struct {
	Users         []domain.User
	Processes     []domain.Process
	Tags          []string
	Notifications []domain.Notification
	ReadIDs       []int
	Err           error
}

// ListUsers returns the configured users.
func (m *MockDirectory) ListUsers(_ context.Context) ([]domain.User, error) {
	return m.Users, m.Err
}

// ListProcesses returns the configured business processes.
func (m *MockDirectory) ListProcesses(_ context.Context) ([]domain.Process, error) {
	return m.Processes, m.Err
}

// ListTags returns the configured tags.
func (m *MockDirectory) ListTags(_ context.Context) ([]string, error) {
	return m.Tags, m.Err
}

// ListNotifications returns the configured notifications.
func (m *MockDirectory) ListNotifications(_ context.Context, _ int) ([]domain.Notification, error) {
	return m.Notifications, m.Err
}

// MarkNotificationRead records the marked notification ID.
func (m *MockDirectory) MarkNotificationRead(_ context.Context, _, notificationID int) error {
	if m.Err != nil {
		return m.Err
	}
	m.ReadIDs = append(m.ReadIDs, notificationID)
	return nil
}

// MockSessionStore is a test double for domain.SessionStore.
type MockSessionStore struct {
	Session *domain.Session
	Err     error
	Cleared bool
}

// Load returns the configured session, or ErrNotLoggedIn when nil.
func (m *MockSessionStore) Load() (*domain.Session, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Session == nil {
		return nil, domain.ErrNotLoggedIn
	}
	return m.Session, nil
}

// Save stores the session.
func (m *MockSessionStore) Save(session *domain.Session) error {
	if m.Err != nil {
		return m.Err
	}
	m.Session = session
	return nil
}

// Clear drops the session.
func (m *MockSessionStore) Clear() error {
	if m.Err != nil {
		return m.Err
	}
	m.Session = nil
	m.Cleared = true
	return nil
}

// LogEntry is a captured log call.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
	TaskID   int
}

// MockLogger records log calls for assertions.
type MockLogger struct {
	Entries []LogEntry
}

func (m *MockLogger) append(level string, taskID int, category, msg string) {
	m.Entries = append(m.Entries, LogEntry{Level: level, TaskID: taskID, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(taskID int, category, msg string) { m.append("DEBUG", taskID, category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(taskID int, category, msg string) { m.append("INFO", taskID, category, msg) }

// Warn records a warn entry.
func (m *MockLogger) Warn(taskID int, category, msg string) { m.append("WARN", taskID, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(taskID int, category, msg string) { m.append("ERROR", taskID, category, msg) }

// Interface assertions.
var (
	_ domain.TaskService  = (*MockTaskService)(nil)
	_ domain.Directory    = (*MockDirectory)(nil)
	_ domain.SessionStore = (*MockSessionStore)(nil)
	_ domain.Logger       = (*MockLogger)(nil)
	_ domain.Clock        = (*MockClock)(nil)
)
