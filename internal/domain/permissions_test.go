package domain

import "testing"

func TestEvaluate(t *testing.T) {
	task := &Task{
		ID:        1,
		Status:    StatusInProgress,
		Creator:   Ref(2),
		Assignees: []UserRef{Ref(4)},
		Observers: []UserRef{Ref(6)},
	}

	tests := []struct {
		name   string
		user   *User
		expect Capabilities
	}{
		{
			"creator employee",
			&User{ID: 2, Role: RoleEmployee},
			Capabilities{CanEdit: true, CanComment: true, CanEditChecklist: true, CanChangeStatus: true},
		},
		{
			"assignee employee",
			&User{ID: 4, Role: RoleEmployee},
			Capabilities{CanComment: true, CanEditChecklist: true, CanChangeStatus: true, CanCompleteTask: true},
		},
		{
			"observer employee",
			&User{ID: 6, Role: RoleEmployee},
			Capabilities{CanComment: true},
		},
		{
			"unrelated employee",
			&User{ID: 7, Role: RoleEmployee},
			Capabilities{},
		},
		{
			"director outside the task",
			&User{ID: 9, Role: RoleDirector},
			Capabilities{CanEdit: true, CanComment: true, CanEditChecklist: true, CanChangeStatus: true, CanCompleteTask: true},
		},
		{
			"department head outside the task",
			&User{ID: 9, Role: RoleDepartmentHead},
			Capabilities{CanComment: true, CanChangeStatus: true, CanCompleteTask: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(task, tt.user); got != tt.expect {
				t.Errorf("Evaluate() = %+v, want %+v", got, tt.expect)
			}
		})
	}
}

func TestEvaluate_DeletedTaskGrantsNothing(t *testing.T) {
	task := &Task{
		ID:        1,
		Status:    StatusInProgress,
		Creator:   Ref(2),
		Assignees: []UserRef{Ref(4)},
		IsDeleted: true,
	}

	for _, user := range []*User{
		{ID: 2, Role: RoleEmployee},
		{ID: 4, Role: RoleEmployee},
		{ID: 9, Role: RoleDirector},
	} {
		if got := Evaluate(task, user); got != (Capabilities{}) {
			t.Errorf("Evaluate(deleted, user %d) = %+v, want zero", user.ID, got)
		}
	}
}

func TestEvaluate_NilInputs(t *testing.T) {
	if Evaluate(nil, &User{ID: 1}) != (Capabilities{}) {
		t.Error("nil task should grant nothing")
	}
	if Evaluate(&Task{ID: 1}, nil) != (Capabilities{}) {
		t.Error("nil user should grant nothing")
	}
}

func TestRole_IsManager(t *testing.T) {
	tests := []struct {
		role    Role
		manager bool
	}{
		{RoleDirector, true},
		{RoleDepartmentHead, true},
		{RoleEmployee, false},
		{RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.IsManager(); got != tt.manager {
				t.Errorf("IsManager() = %v, want %v", got, tt.manager)
			}
		})
	}
}
