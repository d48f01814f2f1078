package domain

import (
	"context"
	"time"
)

// TaskFilter specifies criteria for listing tasks.
// Fields are ordered to minimize memory padding.
type TaskFilter struct {
	Status         Status // Filter by status (empty = all)
	AssigneeID     int    // Filter by assignee (0 = all)
	CreatorID      int    // Filter by creator (0 = all)
	ProcessID      int    // Filter by business process (0 = all)
	Page           int    // 1-based page (0 = first)
	PageSize       int    // Page size (0 = server default)
	OverdueOnly    bool   // Only overdue tasks
	IncludeDeleted bool   // Include soft-deleted tasks
	DeletedOnly    bool   // Only soft-deleted tasks (trash view)
}

// TaskPatch carries a field-level task update. Nil pointers mean no change.
type TaskPatch struct {
	Title            *string    `json:"title,omitempty"`
	Description      *string    `json:"description,omitempty"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
	Priority         *int       `json:"priority,omitempty"`
	ProcessID        *int       `json:"processId,omitempty"`
	Tags             *[]string  `json:"tags,omitempty"`
	Assignees        *[]int     `json:"assignees,omitempty"`
	Observers        *[]int     `json:"observers,omitempty"`
	EstimatedDays    *int       `json:"estimatedDays,omitempty"`
	EstimatedHours   *int       `json:"estimatedHours,omitempty"`
	EstimatedMinutes *int       `json:"estimatedMinutes,omitempty"`
	ActualHours      *float64   `json:"actualHours,omitempty"`
}

// IsEmpty returns true if the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil &&
		p.Priority == nil && p.ProcessID == nil && p.Tags == nil &&
		p.Assignees == nil && p.Observers == nil &&
		p.EstimatedDays == nil && p.EstimatedHours == nil &&
		p.EstimatedMinutes == nil && p.ActualHours == nil
}

// StatusChange is the payload of a status transition.
type StatusChange struct {
	Status      Status  `json:"status"`
	Result      string  `json:"result,omitempty"`
	ActualHours float64 `json:"actualHours,omitempty"`
}

// CommentDraft is the payload for creating a comment.
type CommentDraft struct {
	Text     string `json:"text"`
	IsResult bool   `json:"isResult,omitempty"`
}

// ChecklistOp is a structural checklist operation sent to the server.
type ChecklistOp struct {
	Action    string `json:"action"`              // indent | outdent | move
	Direction string `json:"direction,omitempty"` // up | down (move only)
}

// TaskService is the remote task API surface consumed by use cases.
// The cache store decorates an implementation of this interface with
// optimistic updates.
type TaskService interface {
	ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error)
	GetTask(ctx context.Context, id int) (*Task, error)
	CreateTask(ctx context.Context, draft TaskDraft) (*Task, error)
	UpdateTask(ctx context.Context, id int, patch TaskPatch) (*Task, error)
	ChangeStatus(ctx context.Context, id int, change StatusChange) (*Task, error)

	// Soft delete lifecycle.
	DeleteTask(ctx context.Context, id int) error
	RestoreTask(ctx context.Context, id int) error
	PurgeTask(ctx context.Context, id int) error

	AddComment(ctx context.Context, taskID int, draft CommentDraft) (*Comment, error)
	UpdateComment(ctx context.Context, taskID, commentID int, text string) (*Comment, error)
	DeleteComment(ctx context.Context, taskID, commentID int) error

	AddChecklistItem(ctx context.Context, taskID int, text string) (*ChecklistItem, error)
	UpdateChecklistItem(ctx context.Context, taskID int, item ChecklistItem) (*ChecklistItem, error)
	DeleteChecklistItem(ctx context.Context, taskID, itemID int) error
	RestructureChecklist(ctx context.Context, taskID, itemID int, op ChecklistOp) ([]ChecklistItem, error)
}

// Directory provides the supporting read-mostly collections.
type Directory interface {
	ListUsers(ctx context.Context) ([]User, error)
	ListProcesses(ctx context.Context) ([]Process, error)
	ListTags(ctx context.Context) ([]string, error)
	ListNotifications(ctx context.Context, userID int) ([]Notification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID int) error
}

// SessionStore persists the local authentication state.
type SessionStore interface {
	Load() (*Session, error)
	Save(*Session) error
	Clear() error
}

// Logger writes leveled log entries, optionally scoped to a task.
type Logger interface {
	Debug(taskID int, category, msg string)
	Info(taskID int, category, msg string)
	Warn(taskID int, category, msg string)
	Error(taskID int, category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
