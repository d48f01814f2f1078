package domain

// Capabilities is the set of permissions a user holds on a task.
// Fields are ordered to minimize memory padding.
type Capabilities struct {
	CanChangeStatus   bool
	CanCompleteTask   bool
	CanComment        bool
	CanEdit           bool
	CanEditChecklist  bool
}

// Evaluate computes the capability set for a user on a task.
// It is a pure function cheap enough to call on every render.
//
// A soft-deleted task grants no capabilities to anyone; the check
// short-circuits before any role logic.
func Evaluate(task *Task, user *User) Capabilities {
	if task == nil || user == nil || task.IsDeleted {
		return Capabilities{}
	}

	isCreator := task.IsCreator(user.ID)
	isAssignee := task.IsAssignee(user.ID)
	isObserver := task.IsObserver(user.ID)
	isDirector := user.Role == RoleDirector
	isManager := user.Role.IsManager()

	return Capabilities{
		CanEdit:          isCreator || isDirector,
		CanComment:       isManager || isAssignee || isCreator || isObserver,
		CanEditChecklist: isAssignee || isCreator || isDirector,
		CanChangeStatus:  isAssignee || isManager || isCreator,
		CanCompleteTask:  isAssignee || isManager,
	}
}
