// Package grouping buckets task collections into labeled groups and
// flattens them into the typed row list consumed by the list renderer.
package grouping

import (
	"fmt"
	"sort"
	"time"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// GroupBy selects the grouping key.
type GroupBy string

const (
	ByTime     GroupBy = "time"     // Bucket by hour of the due date
	ByProcess  GroupBy = "process"  // Bucket by business process
	ByPriority GroupBy = "priority" // Bucket by priority 1-5
)

// IsValid returns true for a known grouping key.
func (g GroupBy) IsValid() bool {
	return g == ByTime || g == ByProcess || g == ByPriority
}

// NoProcessLabel labels the bucket for tasks without a business process.
const NoProcessLabel = "No process"

// Group is a labeled bucket of tasks sharing a grouping key.
// Fields are ordered to minimize memory padding.
type Group struct {
	Key   string
	Label string
	Tasks []*domain.Task
	sort  int // Internal ordering rank
}

// RowKind identifies the type of a flattened row.
type RowKind int

const (
	RowGroupHeader RowKind = iota
	RowTask
	RowEmpty
	RowTrashBanner
)

// Row is one entry of the flattened render list.
// Fields are ordered to minimize memory padding.
type Row struct {
	Task  *domain.Task // Set for RowTask
	Key   string       // Stable key (task id or group key)
	Label string       // Header or banner text
	Kind  RowKind
	Count int // Tasks in the group (headers only)
}

// IsTrashView reports whether a task collection should be rendered as the
// trash: true when non-empty and every task is soft-deleted.
func IsTrashView(tasks []*domain.Task) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if !t.IsDeleted {
			return false
		}
	}
	return true
}

// GroupTasks buckets tasks by the given key. When every task in the input
// is soft-deleted the collection is treated as the trash view and grouped
// by deletion date instead, regardless of groupBy. The output ordering is
// deterministic for identical input.
func GroupTasks(tasks []*domain.Task, groupBy GroupBy, processes []domain.Process, now time.Time) []Group {
	if IsTrashView(tasks) {
		return groupByDeletedAt(tasks, now)
	}

	switch groupBy {
	case ByProcess:
		return groupByProcess(tasks, processes)
	case ByPriority:
		return groupByPriority(tasks)
	default:
		return groupByDueHour(tasks)
	}
}

// Flatten converts groups into the flat ordered row list consumed by the
// windowed renderer. Every group renders expanded. In trash mode a banner
// row is prepended.
func Flatten(groups []Group, trashView bool) []Row {
	var rows []Row
	if trashView {
		rows = append(rows, Row{
			Kind:  RowTrashBanner,
			Key:   "trash-banner",
			Label: "Deleted tasks are kept until purged. Restore or purge them from here.",
		})
	}
	if len(groups) == 0 {
		rows = append(rows, Row{Kind: RowEmpty, Key: "empty", Label: "No tasks"})
		return rows
	}
	for _, g := range groups {
		rows = append(rows, Row{
			Kind:  RowGroupHeader,
			Key:   "group:" + g.Key,
			Label: g.Label,
			Count: len(g.Tasks),
		})
		for _, t := range g.Tasks {
			rows = append(rows, Row{
				Kind: RowTask,
				Key:  fmt.Sprintf("task:%d", t.ID),
				Task: t,
			})
		}
	}
	return rows
}

func groupByDueHour(tasks []*domain.Task) []Group {
	buckets := make(map[int][]*domain.Task)
	for _, t := range tasks {
		buckets[t.DueDate.Hour()] = append(buckets[t.DueDate.Hour()], t)
	}

	groups := make([]Group, 0, len(buckets))
	for hour, ts := range buckets {
		groups = append(groups, Group{
			Key:   fmt.Sprintf("%d:00", hour),
			Label: fmt.Sprintf("%d:00", hour),
			Tasks: sortTasks(ts),
			sort:  hour,
		})
	}
	sortGroups(groups)
	return groups
}

func groupByProcess(tasks []*domain.Task, processes []domain.Process) []Group {
	names := make(map[int]string, len(processes))
	for _, p := range processes {
		names[p.ID] = p.Name
	}

	buckets := make(map[int][]*domain.Task)
	for _, t := range tasks {
		buckets[t.ProcessID] = append(buckets[t.ProcessID], t)
	}

	groups := make([]Group, 0, len(buckets))
	for id, ts := range buckets {
		label := names[id]
		if id == 0 || label == "" {
			label = NoProcessLabel
		}
		groups = append(groups, Group{
			Key:   fmt.Sprintf("process-%d", id),
			Label: label,
			Tasks: sortTasks(ts),
		})
	}

	// Alphabetical by name, unassigned bucket always last.
	sort.SliceStable(groups, func(i, j int) bool {
		gi, gj := groups[i], groups[j]
		if gi.Label == NoProcessLabel {
			return false
		}
		if gj.Label == NoProcessLabel {
			return true
		}
		if gi.Label != gj.Label {
			return gi.Label < gj.Label
		}
		return gi.Key < gj.Key
	})
	return groups
}

var priorityLabels = map[int]string{
	1: "Critical",
	2: "High",
	3: "Medium",
	4: "Low",
	5: "Lowest",
}

func groupByPriority(tasks []*domain.Task) []Group {
	buckets := make(map[int][]*domain.Task)
	for _, t := range tasks {
		buckets[t.Priority] = append(buckets[t.Priority], t)
	}

	groups := make([]Group, 0, len(buckets))
	for p, ts := range buckets {
		label := priorityLabels[p]
		if label == "" {
			label = fmt.Sprintf("Priority %d", p)
		}
		groups = append(groups, Group{
			Key:   fmt.Sprintf("priority-%d", p),
			Label: label,
			Tasks: sortTasks(ts),
			sort:  p,
		})
	}
	sortGroups(groups)
	return groups
}

func groupByDeletedAt(tasks []*domain.Task, now time.Time) []Group {
	type bucket struct {
		day   time.Time
		tasks []*domain.Task
	}
	buckets := make(map[string]*bucket)
	for _, t := range tasks {
		deleted := now
		if t.DeletedAt != nil {
			deleted = *t.DeletedAt
		}
		day := time.Date(deleted.Year(), deleted.Month(), deleted.Day(), 0, 0, 0, 0, deleted.Location())
		key := day.Format("2006-01-02")
		if b, ok := buckets[key]; ok {
			b.tasks = append(b.tasks, t)
		} else {
			buckets[key] = &bucket{day: day, tasks: []*domain.Task{t}}
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	groups := make([]Group, 0, len(buckets))
	for key, b := range buckets {
		label := b.day.Format("January 2, 2006")
		switch {
		case b.day.Equal(today):
			label = "Today"
		case b.day.Equal(today.AddDate(0, 0, -1)):
			label = "Yesterday"
		}
		groups = append(groups, Group{
			Key:   "deleted-" + key,
			Label: label,
			Tasks: sortTasks(b.tasks),
			sort:  -int(b.day.Unix() / 86400), // Most recently deleted first
		})
	}
	sortGroups(groups)
	return groups
}

// sortTasks orders tasks within a group by due date, then id for stability.
func sortTasks(tasks []*domain.Task) []*domain.Task {
	out := append([]*domain.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func sortGroups(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].sort != groups[j].sort {
			return groups[i].sort < groups[j].sort
		}
		return groups[i].Key < groups[j].Key
	})
}
