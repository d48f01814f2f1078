package domain

import (
	"testing"
	"time"
)

func TestOverdueFlags(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		due           time.Time
		overdue       bool
		almostOverdue bool
	}{
		{"zero due date", time.Time{}, false, false},
		{"one minute past due", now.Add(-time.Minute), true, false},
		{"due in 12 hours", now.Add(12 * time.Hour), false, true},
		{"due in exactly 24 hours", now.Add(AlmostOverdueWindow), false, true},
		{"due in 48 hours", now.Add(48 * time.Hour), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overdue, almost := OverdueFlags(tt.due, now)
			if overdue != tt.overdue || almost != tt.almostOverdue {
				t.Errorf("OverdueFlags() = (%v, %v), want (%v, %v)", overdue, almost, tt.overdue, tt.almostOverdue)
			}
		})
	}
}

func TestTask_RefreshOverdue(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	task := &Task{Status: StatusInProgress, DueDate: now.Add(-time.Hour)}
	task.RefreshOverdue(now)
	if !task.IsOverdue || task.IsAlmostOverdue {
		t.Errorf("past due in_progress task: overdue=%v almost=%v", task.IsOverdue, task.IsAlmostOverdue)
	}

	completed := &Task{Status: StatusCompleted, DueDate: now.Add(-time.Hour), IsOverdue: true}
	completed.RefreshOverdue(now)
	if completed.IsOverdue || completed.IsAlmostOverdue {
		t.Error("completed task must never be flagged overdue")
	}

	deleted := &Task{Status: StatusInProgress, DueDate: now.Add(-time.Hour), IsDeleted: true, IsOverdue: true}
	deleted.RefreshOverdue(now)
	if deleted.IsOverdue || deleted.IsAlmostOverdue {
		t.Error("deleted task must never be flagged overdue")
	}
}

func TestTask_ParticipantChecks(t *testing.T) {
	task := &Task{
		Creator:   Ref(2),
		Assignees: []UserRef{Ref(4), Ref(5)},
		Observers: []UserRef{Ref(6)},
	}

	if !task.IsCreator(2) || task.IsCreator(4) {
		t.Error("IsCreator mismatch")
	}
	if !task.IsAssignee(5) || task.IsAssignee(2) {
		t.Error("IsAssignee mismatch")
	}
	if !task.IsObserver(6) || task.IsObserver(4) {
		t.Error("IsObserver mismatch")
	}
}
