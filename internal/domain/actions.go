package domain

// Auto-comment texts posted as a side effect of status actions.
// The wire format depends on the original Russian strings.
const (
	CommentAcknowledged = "Ознакомлен и согласен выполнять"
	CommentStarted      = "Приступил к выполнению задачи"
)

// Action is one status transition currently offered to a user.
// Fields are ordered to minimize memory padding.
type Action struct {
	Name        string // Stable identifier (acknowledge, start, pause, ...)
	Label       string // Human-readable label
	AutoComment string // Comment posted before the status mutation (empty = none)
	Target      Status // Status the action transitions to
	NeedsResult bool   // Requires a free-text result before committing
}

// AvailableActions computes the legal status actions for a user on a task.
//
// Only participants with the change-status capability ever see actions,
// and a soft-deleted task has none regardless of role. From NEW an
// assignee acknowledges, except a director assignee who skips straight
// to in_progress. Completing requires the complete capability, and
// return-to-work from completed is reserved for the creator and managers.
func AvailableActions(task *Task, user *User) []Action {
	if task == nil || user == nil || task.IsDeleted {
		return nil
	}
	caps := Evaluate(task, user)
	if !caps.CanChangeStatus {
		return nil
	}

	isCreator := task.IsCreator(user.ID)
	isAssignee := task.IsAssignee(user.ID)
	isManager := user.Role.IsManager()

	var actions []Action
	switch task.Status {
	case StatusNew:
		if isAssignee {
			if user.Role == RoleDirector {
				// Director shortcut: skip acknowledgment entirely.
				actions = append(actions, Action{
					Name:        "start",
					Label:       "Start",
					Target:      StatusInProgress,
					AutoComment: CommentStarted,
				})
			} else {
				actions = append(actions, Action{
					Name:        "acknowledge",
					Label:       "Acknowledge",
					Target:      StatusAcknowledged,
					AutoComment: CommentAcknowledged,
				})
			}
		}

	case StatusAcknowledged:
		actions = append(actions, Action{
			Name:   "start",
			Label:  "Start",
			Target: StatusInProgress,
		})

	case StatusInProgress:
		actions = append(actions, Action{
			Name:   "pause",
			Label:  "Pause",
			Target: StatusPaused,
		})
		if caps.CanCompleteTask {
			actions = append(actions, Action{
				Name:        "complete",
				Label:       "Complete",
				Target:      StatusCompleted,
				NeedsResult: true,
			})
		}
		if isAssignee {
			actions = append(actions, Action{
				Name:   "submit",
				Label:  "Submit for Control",
				Target: StatusWaitingControl,
			})
		}

	case StatusPaused:
		actions = append(actions, Action{
			Name:   "resume",
			Label:  "Resume",
			Target: StatusInProgress,
		})

	case StatusWaitingControl:
		if isCreator || isManager {
			actions = append(actions, Action{
				Name:   "take-control",
				Label:  "Take on Control",
				Target: StatusOnControl,
			})
		}

	case StatusOnControl:
		if isCreator || isManager {
			actions = append(actions,
				Action{
					Name:        "approve",
					Label:       "Approve",
					Target:      StatusCompleted,
					NeedsResult: true,
				},
				Action{
					Name:   "return",
					Label:  "Return to Work",
					Target: StatusInProgress,
				},
			)
		}

	case StatusCompleted:
		if isCreator || isManager {
			actions = append(actions, Action{
				Name:   "return",
				Label:  "Return to Work",
				Target: StatusInProgress,
			})
		}
	}

	return actions
}

// FindAction returns the action with the given name, or nil.
func FindAction(actions []Action, name string) *Action {
	for i := range actions {
		if actions[i].Name == name {
			return &actions[i]
		}
	}
	return nil
}
