package domain

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// TaskDraft represents a task to be created.
// Fields are ordered to minimize memory padding.
type TaskDraft struct {
	DueDate          time.Time `yaml:"due" json:"dueDate"`
	Title            string    `yaml:"title" json:"title"`
	Description      string    `yaml:"description" json:"description,omitempty"`
	Tags             []string  `yaml:"tags" json:"tags,omitempty"`
	Assignees        []int     `yaml:"assignees" json:"assignees"`
	Observers        []int     `yaml:"observers" json:"observers,omitempty"`
	ProcessID        int       `yaml:"process" json:"processId,omitempty"`
	Priority         int       `yaml:"priority" json:"priority"`
	EstimatedDays    int       `yaml:"estimatedDays" json:"estimatedDays,omitempty"`
	EstimatedHours   int       `yaml:"estimatedHours" json:"estimatedHours,omitempty"`
	EstimatedMinutes int       `yaml:"estimatedMinutes" json:"estimatedMinutes,omitempty"`
}

// Validate checks the draft against the client-side validation rules.
// Violations are reported before any network call is made.
func (d *TaskDraft) Validate(now time.Time) error {
	if d.Title == "" {
		return ErrEmptyTitle
	}
	if len(d.Assignees) == 0 {
		return ErrNoAssignees
	}
	if d.DueDate.IsZero() {
		return ErrNoDueDate
	}
	if d.DueDate.Before(now) {
		return ErrDueDateInPast
	}
	if d.Priority < 1 || d.Priority > 5 {
		return ErrInvalidPriority
	}
	return nil
}

// ParseTaskDrafts parses a YAML document containing one or more task
// definitions.
//
// Format:
//
//	- title: First task
//	  priority: 3
//	  due: 2026-09-01T18:00:00Z
//	  assignees: [4]
//	  tags: [backend]
//	- title: Second task
//	  priority: 2
//	  due: 2026-09-02T12:00:00Z
//	  assignees: [4, 7]
func ParseTaskDrafts(content []byte, now time.Time) ([]TaskDraft, error) {
	var drafts []TaskDraft
	if err := yaml.Unmarshal(content, &drafts); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	for i := range drafts {
		if drafts[i].Priority == 0 {
			drafts[i].Priority = 3
		}
		if err := drafts[i].Validate(now); err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
	}
	return drafts, nil
}
