package domain

import (
	"errors"
	"testing"
	"time"
)

func validDraft(now time.Time) TaskDraft {
	return TaskDraft{
		Title:     "Prepare report",
		DueDate:   now.Add(48 * time.Hour),
		Assignees: []int{4},
		Priority:  3,
	}
}

func TestTaskDraft_Validate(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(*TaskDraft)
		expect error
	}{
		{"valid", func(*TaskDraft) {}, nil},
		{"empty title", func(d *TaskDraft) { d.Title = "" }, ErrEmptyTitle},
		{"no assignees", func(d *TaskDraft) { d.Assignees = nil }, ErrNoAssignees},
		{"no due date", func(d *TaskDraft) { d.DueDate = time.Time{} }, ErrNoDueDate},
		{"due date in past", func(d *TaskDraft) { d.DueDate = now.Add(-time.Hour) }, ErrDueDateInPast},
		{"priority too low", func(d *TaskDraft) { d.Priority = 0 }, ErrInvalidPriority},
		{"priority too high", func(d *TaskDraft) { d.Priority = 6 }, ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft(now)
			tt.mutate(&draft)
			if err := draft.Validate(now); !errors.Is(err, tt.expect) {
				t.Errorf("Validate() = %v, want %v", err, tt.expect)
			}
		})
	}
}

func TestParseTaskDrafts(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	content := []byte(`
- title: First task
  due: 2025-06-10T18:00:00Z
  assignees: [4]
  tags: [backend]
- title: Second task
  due: 2025-06-11T12:00:00Z
  assignees: [4, 7]
  priority: 2
`)

	drafts, err := ParseTaskDrafts(content, now)
	if err != nil {
		t.Fatalf("ParseTaskDrafts: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("got %d drafts, want 2", len(drafts))
	}
	if drafts[0].Priority != 3 {
		t.Errorf("missing priority defaulted to %d, want 3", drafts[0].Priority)
	}
	if drafts[1].Priority != 2 {
		t.Errorf("explicit priority = %d, want 2", drafts[1].Priority)
	}
	if len(drafts[1].Assignees) != 2 {
		t.Errorf("assignees = %v, want two", drafts[1].Assignees)
	}
}

func TestParseTaskDrafts_ReportsFailingEntry(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	content := []byte(`
- title: First task
  due: 2025-06-10T18:00:00Z
  assignees: [4]
- due: 2025-06-11T12:00:00Z
  assignees: [4]
`)

	_, err := ParseTaskDrafts(content, now)
	if !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("err = %v, want ErrEmptyTitle", err)
	}
	if got := err.Error(); got[:6] != "task 2" {
		t.Errorf("error %q should name the failing entry", got)
	}
}

func TestParseTaskDrafts_InvalidYAML(t *testing.T) {
	if _, err := ParseTaskDrafts([]byte("{not yaml"), time.Now()); err == nil {
		t.Fatal("expected a parse error")
	}
}
