package domain

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusNew            Status = "new"             // Created, not yet acknowledged
	StatusAcknowledged   Status = "acknowledged"    // Assignee acknowledged the task
	StatusInProgress     Status = "in_progress"     // Work underway
	StatusPaused         Status = "paused"          // Temporarily paused
	StatusWaitingControl Status = "waiting_control" // Submitted for review
	StatusOnControl      Status = "on_control"      // Review in progress
	StatusCompleted      Status = "completed"       // Finished
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{
		StatusNew,
		StatusAcknowledged,
		StatusInProgress,
		StatusPaused,
		StatusWaitingControl,
		StatusOnControl,
		StatusCompleted,
	}
}

// transitions defines the allowed status transitions.
// Flow: new → acknowledged → in_progress ⇄ paused → completed
//
// in_progress may detour through waiting_control/on_control when the
// creator reviews the work, and completed tasks can be returned to work.
// The new → in_progress edge is the director shortcut; whether a given
// user may actually take an edge is decided by AvailableActions.
var transitions = map[Status][]Status{
	StatusNew:            {StatusAcknowledged, StatusInProgress},
	StatusAcknowledged:   {StatusInProgress},
	StatusInProgress:     {StatusPaused, StatusCompleted, StatusWaitingControl},
	StatusPaused:         {StatusInProgress},
	StatusWaitingControl: {StatusOnControl, StatusInProgress},
	StatusOnControl:      {StatusCompleted, StatusInProgress},
	StatusCompleted:      {StatusInProgress},
}

// CanTransitionTo returns true if the status can transition to the target status.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the status is a terminal state.
// Completed is terminal for display purposes even though the
// return-to-work edge can reopen the task.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

// IsActive returns true if work on the task is ongoing.
func (s Status) IsActive() bool {
	return s == StatusInProgress || s == StatusWaitingControl || s == StatusOnControl
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusAcknowledged:
		return "Acknowledged"
	case StatusInProgress:
		return "In Progress"
	case StatusPaused:
		return "Paused"
	case StatusWaitingControl:
		return "Waiting Control"
	case StatusOnControl:
		return "On Control"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusAcknowledged, StatusInProgress, StatusPaused,
		StatusWaitingControl, StatusOnControl, StatusCompleted:
		return true
	default:
		return false
	}
}
