package tui

import "github.com/taskdesk/taskdesk/internal/domain"

// MsgTasksLoaded is sent when a page of tasks arrives.
type MsgTasksLoaded struct {
	Tasks []*domain.Task
	Page  int
	Trash bool
}

// MsgDirectoryLoaded is sent when the supporting collections arrive.
type MsgDirectoryLoaded struct {
	Users     []domain.User
	Processes []domain.Process
}

// MsgTaskUpdated is sent after a mutation succeeds.
type MsgTaskUpdated struct {
	Task *domain.Task
}

// MsgTaskRemoved is sent after a delete or purge succeeds.
type MsgTaskRemoved struct {
	TaskID int
}

// MsgError is sent when an operation fails.
type MsgError struct {
	Err error
}

// MsgClearError is sent to clear the status line error.
type MsgClearError struct{}

// MsgTick drives the periodic overdue recompute.
type MsgTick struct{}
