// Package domain contains core business entities and interfaces.
package domain

import "time"

// AlmostOverdueWindow is how close to the due date a task is flagged
// as almost overdue.
const AlmostOverdueWindow = 24 * time.Hour

// Task represents a work item with lifecycle status, assignees and audit history.
// Fields are ordered to minimize memory padding.
type Task struct {
	Created     time.Time  `json:"created"`
	DueDate     time.Time  `json:"dueDate"`
	CompletedAt *time.Time `json:"completedAt,omitempty"` // When status became completed
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`   // When the task was soft-deleted

	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Result      string `json:"result,omitempty"` // Free-text completion result

	Tags      []string `json:"tags,omitempty"`
	Creator   UserRef  `json:"creator"`
	Assignees []UserRef `json:"assignees,omitempty"`
	Observers []UserRef `json:"observers,omitempty"`

	Comments  []Comment       `json:"comments,omitempty"`
	History   []HistoryEntry  `json:"history,omitempty"`
	Checklist []ChecklistItem `json:"checklist,omitempty"`

	Status      Status  `json:"status"`
	ActualHours float64 `json:"actualHours,omitempty"`

	ID        int `json:"id"`
	ProcessID int `json:"processId,omitempty"` // 0 = no business process
	DeletedBy int `json:"deletedBy,omitempty"`
	Priority  int `json:"priority"` // 1-5, 1 = critical

	EstimatedDays    int `json:"estimatedDays,omitempty"`
	EstimatedHours   int `json:"estimatedHours,omitempty"`
	EstimatedMinutes int `json:"estimatedMinutes,omitempty"`

	IsDeleted       bool `json:"isDeleted,omitempty"`
	IsOverdue       bool `json:"isOverdue,omitempty"`       // Derived from DueDate, not a status
	IsAlmostOverdue bool `json:"isAlmostOverdue,omitempty"` // Derived from DueDate, not a status
}

// IsCreator returns true if the user created this task.
func (t *Task) IsCreator(userID int) bool {
	return t.Creator.ID == userID
}

// IsAssignee returns true if the user is one of the task's assignees.
func (t *Task) IsAssignee(userID int) bool {
	for _, ref := range t.Assignees {
		if ref.ID == userID {
			return true
		}
	}
	return false
}

// IsObserver returns true if the user observes this task.
func (t *Task) IsObserver(userID int) bool {
	for _, ref := range t.Observers {
		if ref.ID == userID {
			return true
		}
	}
	return false
}

// OverdueFlags derives the overdue display flags from a due date.
// A task is overdue once the due date has passed, and almost overdue
// when it is due within AlmostOverdueWindow but not yet overdue.
// Both flags are false for a zero due date.
func OverdueFlags(due, now time.Time) (overdue, almostOverdue bool) {
	if due.IsZero() {
		return false, false
	}
	if now.After(due) {
		return true, false
	}
	if due.Sub(now) <= AlmostOverdueWindow {
		return false, true
	}
	return false, false
}

// RefreshOverdue recomputes the overdue display flags.
// Completed and deleted tasks are never flagged.
func (t *Task) RefreshOverdue(now time.Time) {
	if t.Status == StatusCompleted || t.IsDeleted {
		t.IsOverdue = false
		t.IsAlmostOverdue = false
		return
	}
	t.IsOverdue, t.IsAlmostOverdue = OverdueFlags(t.DueDate, now)
}

// Comment represents a note attached to a task.
// Fields are ordered to minimize memory padding.
type Comment struct {
	Created  time.Time  `json:"created"`
	EditedAt *time.Time `json:"editedAt,omitempty"`
	Text     string     `json:"text"` // HTML body
	ID       int        `json:"id"`
	TaskID   int        `json:"taskId"`
	AuthorID int        `json:"authorId"`
	IsResult bool       `json:"isResult,omitempty"` // Marks a completion-result comment
	IsEdited bool       `json:"isEdited,omitempty"`
}

// ChecklistItem is a single row of a task's checklist.
// Level is the indent depth, bounded [0, MaxChecklistLevel].
// Fields are ordered to minimize memory padding.
type ChecklistItem struct {
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Text        string     `json:"text"`
	ParentID    *int       `json:"parentId,omitempty"`
	ID          int        `json:"id"`
	TaskID      int        `json:"taskId"`
	Level       int        `json:"level"`
	ItemOrder   int        `json:"itemOrder"` // Sort key within the list
	CompletedBy int        `json:"completedBy,omitempty"`
	Completed   bool       `json:"completed"`
}

// ActionType classifies a history entry.
type ActionType string

const (
	ActionCreated       ActionType = "CREATED"
	ActionStatusChanged ActionType = "STATUS_CHANGED"
	ActionFieldChanged  ActionType = "FIELD_CHANGED"
	ActionCommentAdded  ActionType = "COMMENT_ADDED"
	ActionDeleted       ActionType = "DELETED"
	ActionRestored      ActionType = "RESTORED"
)

// SystemUserID is the sentinel user id for entries written by the system.
const SystemUserID = 0

// HistoryEntry is an immutable, append-only audit record.
// Entries are written exclusively as a side effect of other mutations
// and are never edited or deleted by users.
// Fields are ordered to minimize memory padding.
type HistoryEntry struct {
	Created     time.Time  `json:"created"`
	ActionType  ActionType `json:"actionType"`
	OldValue    string     `json:"oldValue,omitempty"`
	NewValue    string     `json:"newValue,omitempty"`
	Description string     `json:"description,omitempty"`
	ID          int        `json:"id"`
	TaskID      int        `json:"taskId"`
	UserID      int        `json:"userId"` // SystemUserID for system entries
}
