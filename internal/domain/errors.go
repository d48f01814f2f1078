package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound          = errors.New("task not found")
	ErrTaskDeleted           = errors.New("task is deleted")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrActionNotAvailable    = errors.New("action not available")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrEmptyTitle            = errors.New("title cannot be empty")
	ErrEmptyMessage          = errors.New("message cannot be empty")
	ErrNoAssignees           = errors.New("at least one assignee is required")
	ErrNoDueDate             = errors.New("due date is required")
	ErrDueDateInPast         = errors.New("due date cannot be in the past")
	ErrInvalidPriority       = errors.New("priority must be between 1 and 5")
	ErrResultRequired        = errors.New("completion result is required")
	ErrCommentNotFound       = errors.New("comment not found")
	ErrChecklistItemNotFound = errors.New("checklist item not found")
	ErrChecklistLevel        = errors.New("checklist indent level out of bounds")
	ErrChecklistBoundary     = errors.New("checklist item already at list boundary")
	ErrNoFieldsToUpdate      = errors.New("no fields to update")
	ErrNotLoggedIn           = errors.New("not logged in (run 'taskdesk login' first)")
	ErrTokenExpired          = errors.New("auth token is expired")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrUserNotFound          = errors.New("user not found")
)
