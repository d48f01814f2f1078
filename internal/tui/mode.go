// Package tui provides the terminal user interface for taskdesk.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal   Mode = iota // Default navigation mode
	ModeDetail               // Task detail view mode
	ModeActions              // Status action picker mode
	ModeComplete             // Completion dialog mode (result + hours)
	ModeConfirm              // Confirmation dialog mode
	ModeHelp                 // Help overlay mode
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeDetail:
		return "detail"
	case ModeActions:
		return "actions"
	case ModeComplete:
		return "complete"
	case ModeConfirm:
		return "confirm"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	return m == ModeComplete
}

// ConfirmAction represents the type of action requiring confirmation.
type ConfirmAction int

const (
	ConfirmNone    ConfirmAction = iota
	ConfirmDelete                // Move task to trash
	ConfirmRestore               // Restore task from trash
	ConfirmPurge                 // Permanently delete task
)

// String returns a human-readable description of the action.
func (a ConfirmAction) String() string {
	switch a {
	case ConfirmDelete:
		return "move to trash"
	case ConfirmRestore:
		return "restore"
	case ConfirmPurge:
		return "permanently delete"
	default:
		return ""
	}
}
