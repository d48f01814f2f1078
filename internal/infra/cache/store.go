// Package cache implements the client-side task aggregate store. It
// decorates the remote task service with an in-memory cache, optimistic
// updates that snapshot and roll back on failure, and debounced field
// edits.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// Store is the sole authority for in-memory task state. UI code reads
// cached copies and never mutates entities directly; every mutation
// flows through the remote service and is reconciled back.
// Fields are ordered to minimize memory padding.
type Store struct {
	remote     domain.TaskService
	clock      domain.Clock
	logger     domain.Logger
	tasks      map[int]*domain.Task
	debouncers map[int]*debouncer
	pending    map[int]domain.TaskPatch
	mu         sync.Mutex
	debounce   time.Duration
}

// New creates a Store decorating the given remote service.
func New(remote domain.TaskService, clock domain.Clock, logger domain.Logger) *Store {
	return &Store{
		remote:     remote,
		clock:      clock,
		logger:     logger,
		tasks:      make(map[int]*domain.Task),
		debouncers: make(map[int]*debouncer),
		pending:    make(map[int]domain.TaskPatch),
		debounce:   DefaultDebounce,
	}
}

// SetDebounce overrides the coalescing window (tests use a short one).
func (s *Store) SetDebounce(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debounce = d
}

// Cached returns the cached copy of a task, or nil when cold.
func (s *Store) Cached(id int) *domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tasks[id]; ok {
		clone := *t
		return &clone
	}
	return nil
}

// CachedTasks returns copies of all cached tasks.
func (s *Store) CachedTasks() []*domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		clone := *t
		out = append(out, &clone)
	}
	return out
}

// RefreshOverdue recomputes the overdue display flags on every cached
// task. Returns how many tasks changed flags.
func (s *Store) RefreshOverdue(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := 0
	for _, t := range s.tasks {
		before, beforeAlmost := t.IsOverdue, t.IsAlmostOverdue
		t.RefreshOverdue(now)
		if t.IsOverdue != before || t.IsAlmostOverdue != beforeAlmost {
			changed++
		}
	}
	return changed
}

func (s *Store) put(t *domain.Task) {
	if t == nil {
		return
	}
	s.mu.Lock()
	s.tasks[t.ID] = t
	s.mu.Unlock()
}

// snapshot returns a deep-enough copy of the cached task for rollback.
// Slices that mutations touch are cloned.
func (s *Store) snapshot(id int) *domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil
	}
	clone := *t
	clone.Tags = append([]string(nil), t.Tags...)
	clone.Assignees = append([]domain.UserRef(nil), t.Assignees...)
	clone.Observers = append([]domain.UserRef(nil), t.Observers...)
	clone.Comments = append([]domain.Comment(nil), t.Comments...)
	clone.Checklist = append([]domain.ChecklistItem(nil), t.Checklist...)
	clone.History = append([]domain.HistoryEntry(nil), t.History...)
	return &clone
}

// rollback restores a snapshot taken before an optimistic mutation.
func (s *Store) rollback(snap *domain.Task) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	s.tasks[snap.ID] = snap
	s.mu.Unlock()
}

// guardDeleted rejects mutations on soft-deleted tasks before any
// network call is made.
func (s *Store) guardDeleted(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tasks[id]; ok && t.IsDeleted {
		return domain.ErrTaskDeleted
	}
	return nil
}

// ListTasks fetches tasks from the remote service and caches the result.
func (s *Store) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	tasks, err := s.remote.ListTasks(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		s.put(t)
	}
	return tasks, nil
}

// GetTask fetches a single task and caches it.
func (s *Store) GetTask(ctx context.Context, id int) (*domain.Task, error) {
	task, err := s.remote.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	s.put(task)
	return task, nil
}

// CreateTask creates a task remotely and caches the created entity.
func (s *Store) CreateTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	task, err := s.remote.CreateTask(ctx, draft)
	if err != nil {
		return nil, err
	}
	s.put(task)
	return task, nil
}

// UpdateTask applies a patch optimistically, then dispatches it. On
// remote failure the cached task is rolled back to the snapshot.
func (s *Store) UpdateTask(ctx context.Context, id int, patch domain.TaskPatch) (*domain.Task, error) {
	if err := s.guardDeleted(id); err != nil {
		return nil, err
	}

	snap := s.snapshot(id)
	s.applyPatchLocal(id, patch)

	task, err := s.remote.UpdateTask(ctx, id, patch)
	if err != nil {
		s.rollback(snap)
		if s.logger != nil {
			s.logger.Error(id, "cache", fmt.Sprintf("update rolled back: %v", err))
		}
		return nil, err
	}
	s.put(task)
	return task, nil
}

// UpdateTaskDebounced coalesces rapid consecutive patches to a task and
// dispatches only the merged result after the debounce window. The local
// cache is patched immediately for responsiveness. The error of the
// eventual dispatch is reported through done (which may be nil).
func (s *Store) UpdateTaskDebounced(ctx context.Context, id int, patch domain.TaskPatch, done func(*domain.Task, error)) {
	s.mu.Lock()
	merged := mergePatch(s.pending[id], patch)
	s.pending[id] = merged
	d, ok := s.debouncers[id]
	if !ok {
		d = newDebouncer(s.debounce)
		s.debouncers[id] = d
	}
	s.mu.Unlock()

	s.applyPatchLocal(id, patch)

	d.Trigger(func() {
		s.mu.Lock()
		p := s.pending[id]
		delete(s.pending, id)
		s.mu.Unlock()
		if p.IsEmpty() {
			return
		}
		task, err := s.remote.UpdateTask(ctx, id, p)
		if err != nil {
			if s.logger != nil {
				s.logger.Error(id, "cache", fmt.Sprintf("debounced update failed: %v", err))
			}
		} else {
			s.put(task)
		}
		if done != nil {
			done(task, err)
		}
	})
}

// FlushPending dispatches a pending debounced patch immediately
// (the blur analog for description edits).
func (s *Store) FlushPending(id int) {
	s.mu.Lock()
	d, ok := s.debouncers[id]
	s.mu.Unlock()
	if ok {
		d.Flush()
	}
}

// ChangeStatus applies a status transition optimistically.
func (s *Store) ChangeStatus(ctx context.Context, id int, change domain.StatusChange) (*domain.Task, error) {
	if err := s.guardDeleted(id); err != nil {
		return nil, err
	}

	snap := s.snapshot(id)
	s.mu.Lock()
	if t, ok := s.tasks[id]; ok {
		t.Status = change.Status
	}
	s.mu.Unlock()

	task, err := s.remote.ChangeStatus(ctx, id, change)
	if err != nil {
		s.rollback(snap)
		if s.logger != nil {
			s.logger.Error(id, "cache", fmt.Sprintf("status change rolled back: %v", err))
		}
		return nil, err
	}
	s.put(task)
	return task, nil
}

// DeleteTask soft-deletes a task and marks the cached copy.
func (s *Store) DeleteTask(ctx context.Context, id int) error {
	if err := s.remote.DeleteTask(ctx, id); err != nil {
		return err
	}
	now := s.clock.Now()
	s.mu.Lock()
	if t, ok := s.tasks[id]; ok {
		t.IsDeleted = true
		t.DeletedAt = &now
	}
	s.mu.Unlock()
	return nil
}

// RestoreTask restores a soft-deleted task.
func (s *Store) RestoreTask(ctx context.Context, id int) error {
	if err := s.remote.RestoreTask(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	if t, ok := s.tasks[id]; ok {
		t.IsDeleted = false
		t.DeletedAt = nil
		t.DeletedBy = 0
	}
	s.mu.Unlock()
	return nil
}

// PurgeTask permanently deletes a task and evicts it from the cache.
func (s *Store) PurgeTask(ctx context.Context, id int) error {
	if err := s.remote.PurgeTask(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.tasks, id)
	s.mu.Unlock()
	return nil
}

// AddComment appends a comment optimistically and rolls back on failure.
func (s *Store) AddComment(ctx context.Context, taskID int, draft domain.CommentDraft) (*domain.Comment, error) {
	if err := s.guardDeleted(taskID); err != nil {
		return nil, err
	}

	snap := s.snapshot(taskID)
	local := domain.Comment{
		TaskID:   taskID,
		Text:     draft.Text,
		IsResult: draft.IsResult,
		Created:  s.clock.Now(),
	}
	s.mu.Lock()
	if t, ok := s.tasks[taskID]; ok {
		t.Comments = append(t.Comments, local)
	}
	s.mu.Unlock()

	comment, err := s.remote.AddComment(ctx, taskID, draft)
	if err != nil {
		s.rollback(snap)
		return nil, err
	}
	s.mu.Lock()
	if t, ok := s.tasks[taskID]; ok && len(t.Comments) > 0 {
		t.Comments[len(t.Comments)-1] = *comment
	}
	s.mu.Unlock()
	return comment, nil
}

// UpdateComment edits a comment optimistically.
func (s *Store) UpdateComment(ctx context.Context, taskID, commentID int, text string) (*domain.Comment, error) {
	if err := s.guardDeleted(taskID); err != nil {
		return nil, err
	}

	snap := s.snapshot(taskID)
	s.mu.Lock()
	if t, ok := s.tasks[taskID]; ok {
		for i := range t.Comments {
			if t.Comments[i].ID == commentID {
				t.Comments[i].Text = text
				t.Comments[i].IsEdited = true
				break
			}
		}
	}
	s.mu.Unlock()

	comment, err := s.remote.UpdateComment(ctx, taskID, commentID, text)
	if err != nil {
		s.rollback(snap)
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment optimistically.
func (s *Store) DeleteComment(ctx context.Context, taskID, commentID int) error {
	if err := s.guardDeleted(taskID); err != nil {
		return err
	}

	snap := s.snapshot(taskID)
	s.mu.Lock()
	if t, ok := s.tasks[taskID]; ok {
		for i := range t.Comments {
			if t.Comments[i].ID == commentID {
				t.Comments = append(t.Comments[:i], t.Comments[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	if err := s.remote.DeleteComment(ctx, taskID, commentID); err != nil {
		s.rollback(snap)
		return err
	}
	return nil
}

// AddChecklistItem appends an item optimistically.
func (s *Store) AddChecklistItem(ctx context.Context, taskID int, text string) (*domain.ChecklistItem, error) {
	if err := s.guardDeleted(taskID); err != nil {
		return nil, err
	}

	snap := s.snapshot(taskID)
	s.mu.Lock()
	if t, ok := s.tasks[taskID]; ok {
		t.Checklist = append(t.Checklist, domain.ChecklistItem{
			TaskID:    taskID,
			Text:      text,
			ItemOrder: len(t.Checklist),
		})
	}
	s.mu.Unlock()

	item, err := s.remote.AddChecklistItem(ctx, taskID, text)
	if err != nil {
		s.rollback(snap)
		return nil, err
	}
	s.mu.Lock()
	if t, ok := s.tasks[taskID]; ok && len(t.Checklist) > 0 {
		t.Checklist[len(t.Checklist)-1] = *item
	}
	s.mu.Unlock()
	return item, nil
}

// UpdateChecklistItem updates an item optimistically.
func (s *Store) UpdateChecklistItem(ctx context.Context, taskID int, item domain.ChecklistItem) (*domain.ChecklistItem, error) {
	if err := s.guardDeleted(taskID); err != nil {
		return nil, err
	}

	snap := s.snapshot(taskID)
	s.mu.Lock()
	if t, ok := s.tasks[taskID]; ok {
		for i := range t.Checklist {
			if t.Checklist[i].ID == item.ID {
				t.Checklist[i] = item
				break
			}
		}
	}
	s.mu.Unlock()

	out, err := s.remote.UpdateChecklistItem(ctx, taskID, item)
	if err != nil {
		s.rollback(snap)
		return nil, err
	}
	return out, nil
}

// DeleteChecklistItem removes an item optimistically.
func (s *Store) DeleteChecklistItem(ctx context.Context, taskID, itemID int) error {
	if err := s.guardDeleted(taskID); err != nil {
		return err
	}

	snap := s.snapshot(taskID)
	s.mu.Lock()
	if t, ok := s.tasks[taskID]; ok {
		for i := range t.Checklist {
			if t.Checklist[i].ID == itemID {
				t.Checklist = append(t.Checklist[:i], t.Checklist[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	if err := s.remote.DeleteChecklistItem(ctx, taskID, itemID); err != nil {
		s.rollback(snap)
		return err
	}
	return nil
}

// RestructureChecklist sends a structural operation to the server and
// replaces the local list only after acknowledgment. Structural ops are
// not optimistic: the server owns re-leveling.
func (s *Store) RestructureChecklist(ctx context.Context, taskID, itemID int, op domain.ChecklistOp) ([]domain.ChecklistItem, error) {
	if err := s.guardDeleted(taskID); err != nil {
		return nil, err
	}

	items, err := s.remote.RestructureChecklist(ctx, taskID, itemID, op)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if t, ok := s.tasks[taskID]; ok {
		t.Checklist = items
	}
	s.mu.Unlock()
	return items, nil
}

// applyPatchLocal patches the cached copy of a task.
func (s *Store) applyPatchLocal(id int, patch domain.TaskPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.ProcessID != nil {
		t.ProcessID = *patch.ProcessID
	}
	if patch.Tags != nil {
		t.Tags = append([]string(nil), (*patch.Tags)...)
	}
	if patch.Assignees != nil {
		t.Assignees = toRefs(*patch.Assignees)
	}
	if patch.Observers != nil {
		t.Observers = toRefs(*patch.Observers)
	}
	if patch.EstimatedDays != nil {
		t.EstimatedDays = *patch.EstimatedDays
	}
	if patch.EstimatedHours != nil {
		t.EstimatedHours = *patch.EstimatedHours
	}
	if patch.EstimatedMinutes != nil {
		t.EstimatedMinutes = *patch.EstimatedMinutes
	}
	if patch.ActualHours != nil {
		t.ActualHours = *patch.ActualHours
	}
}

func toRefs(ids []int) []domain.UserRef {
	refs := make([]domain.UserRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, domain.Ref(id))
	}
	return refs
}

// mergePatch overlays b on a; later fields win.
func mergePatch(a, b domain.TaskPatch) domain.TaskPatch {
	if b.Title != nil {
		a.Title = b.Title
	}
	if b.Description != nil {
		a.Description = b.Description
	}
	if b.DueDate != nil {
		a.DueDate = b.DueDate
	}
	if b.Priority != nil {
		a.Priority = b.Priority
	}
	if b.ProcessID != nil {
		a.ProcessID = b.ProcessID
	}
	if b.Tags != nil {
		a.Tags = b.Tags
	}
	if b.Assignees != nil {
		a.Assignees = b.Assignees
	}
	if b.Observers != nil {
		a.Observers = b.Observers
	}
	if b.EstimatedDays != nil {
		a.EstimatedDays = b.EstimatedDays
	}
	if b.EstimatedHours != nil {
		a.EstimatedHours = b.EstimatedHours
	}
	if b.EstimatedMinutes != nil {
		a.EstimatedMinutes = b.EstimatedMinutes
	}
	if b.ActualHours != nil {
		a.ActualHours = b.ActualHours
	}
	return a
}

// Ensure Store implements the task service port.
var _ domain.TaskService = (*Store)(nil)
