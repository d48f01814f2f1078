package domain

import "testing"

func actionTask(status Status) *Task {
	return &Task{
		ID:        1,
		Title:     "Prepare report",
		Status:    status,
		Creator:   Ref(2),
		Assignees: []UserRef{Ref(4)},
	}
}

func actionNames(actions []Action) []string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.Name
	}
	return names
}

func TestAvailableActions(t *testing.T) {
	assignee := &User{ID: 4, Role: RoleEmployee}
	creator := &User{ID: 2, Role: RoleEmployee}
	director := &User{ID: 9, Role: RoleDirector}
	directorAssignee := &User{ID: 4, Role: RoleDirector}
	outsider := &User{ID: 7, Role: RoleEmployee}

	tests := []struct {
		name   string
		status Status
		user   *User
		expect []string
	}{
		{"new assignee acknowledges", StatusNew, assignee, []string{"acknowledge"}},
		{"new director assignee starts directly", StatusNew, directorAssignee, []string{"start"}},
		{"new creator has nothing", StatusNew, creator, nil},
		{"new outsider has nothing", StatusNew, outsider, nil},

		{"acknowledged assignee starts", StatusAcknowledged, assignee, []string{"start"}},

		{"in_progress assignee", StatusInProgress, assignee, []string{"pause", "complete", "submit"}},
		{"in_progress creator cannot complete", StatusInProgress, creator, []string{"pause"}},
		{"in_progress director", StatusInProgress, director, []string{"pause", "complete"}},

		{"paused assignee resumes", StatusPaused, assignee, []string{"resume"}},

		{"waiting_control creator takes control", StatusWaitingControl, creator, []string{"take-control"}},
		{"waiting_control director takes control", StatusWaitingControl, director, []string{"take-control"}},
		{"waiting_control assignee waits", StatusWaitingControl, assignee, nil},

		{"on_control creator reviews", StatusOnControl, creator, []string{"approve", "return"}},
		{"on_control assignee waits", StatusOnControl, assignee, nil},

		{"completed creator returns to work", StatusCompleted, creator, []string{"return"}},
		{"completed director returns to work", StatusCompleted, director, []string{"return"}},
		{"completed assignee has nothing", StatusCompleted, assignee, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := actionNames(AvailableActions(actionTask(tt.status), tt.user))
			if len(got) != len(tt.expect) {
				t.Fatalf("actions = %v, want %v", got, tt.expect)
			}
			for i := range got {
				if got[i] != tt.expect[i] {
					t.Errorf("actions[%d] = %s, want %s", i, got[i], tt.expect[i])
				}
			}
		})
	}
}

func TestAvailableActions_DeletedTask(t *testing.T) {
	task := actionTask(StatusInProgress)
	task.IsDeleted = true
	director := &User{ID: 9, Role: RoleDirector}

	if got := AvailableActions(task, director); got != nil {
		t.Errorf("deleted task yielded actions %v, want none", actionNames(got))
	}
}

func TestAvailableActions_NilInputs(t *testing.T) {
	if AvailableActions(nil, &User{ID: 1}) != nil {
		t.Error("nil task should yield no actions")
	}
	if AvailableActions(actionTask(StatusNew), nil) != nil {
		t.Error("nil user should yield no actions")
	}
}

func TestAvailableActions_AutoComments(t *testing.T) {
	assignee := &User{ID: 4, Role: RoleEmployee}
	acknowledge := FindAction(AvailableActions(actionTask(StatusNew), assignee), "acknowledge")
	if acknowledge == nil {
		t.Fatal("acknowledge not offered")
	}
	if acknowledge.AutoComment != CommentAcknowledged {
		t.Errorf("acknowledge auto comment = %q, want %q", acknowledge.AutoComment, CommentAcknowledged)
	}

	directorAssignee := &User{ID: 4, Role: RoleDirector}
	start := FindAction(AvailableActions(actionTask(StatusNew), directorAssignee), "start")
	if start == nil {
		t.Fatal("start not offered to director assignee")
	}
	if start.AutoComment != CommentStarted {
		t.Errorf("start auto comment = %q, want %q", start.AutoComment, CommentStarted)
	}
	if start.Target != StatusInProgress {
		t.Errorf("start target = %s, want %s", start.Target, StatusInProgress)
	}
}

func TestAvailableActions_NeedsResult(t *testing.T) {
	assignee := &User{ID: 4, Role: RoleEmployee}
	complete := FindAction(AvailableActions(actionTask(StatusInProgress), assignee), "complete")
	if complete == nil || !complete.NeedsResult {
		t.Fatal("complete should be offered and require a result")
	}

	creator := &User{ID: 2, Role: RoleEmployee}
	approve := FindAction(AvailableActions(actionTask(StatusOnControl), creator), "approve")
	if approve == nil || !approve.NeedsResult {
		t.Fatal("approve should be offered and require a result")
	}

	pause := FindAction(AvailableActions(actionTask(StatusInProgress), assignee), "pause")
	if pause == nil || pause.NeedsResult {
		t.Fatal("pause should be offered without a result")
	}
}

func TestAvailableActions_TargetsFollowTransitionTable(t *testing.T) {
	users := []*User{
		{ID: 4, Role: RoleEmployee},
		{ID: 4, Role: RoleDirector},
		{ID: 2, Role: RoleEmployee},
		{ID: 9, Role: RoleDirector},
		{ID: 9, Role: RoleDepartmentHead},
	}
	for _, status := range AllStatuses() {
		for _, user := range users {
			for _, action := range AvailableActions(actionTask(status), user) {
				if !status.CanTransitionTo(action.Target) {
					t.Errorf("action %s offers illegal transition %s -> %s", action.Name, status, action.Target)
				}
			}
		}
	}
}

func TestFindAction(t *testing.T) {
	actions := []Action{{Name: "pause"}, {Name: "complete"}}
	if FindAction(actions, "complete") == nil {
		t.Error("FindAction(complete) = nil, want match")
	}
	if FindAction(actions, "approve") != nil {
		t.Error("FindAction(approve) != nil, want nil")
	}
}
