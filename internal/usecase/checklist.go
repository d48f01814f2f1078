package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskdesk/taskdesk/internal/domain"
)

// ChecklistInput identifies a checklist item operation target.
// Fields are ordered to minimize memory padding.
type ChecklistInput struct {
	User   *domain.User // Acting user (required)
	Text   string       // Item text (add and edit only)
	TaskID int          // Task ID (required)
	ItemID int          // Item ID (all but add)
}

// ChecklistOutput contains the checklist after the operation.
type ChecklistOutput struct {
	Items []domain.ChecklistItem
}

// Checklist is the use case for all checklist item operations: add,
// toggle, edit, delete and the structural moves (indent, outdent,
// up, down). Structural moves are re-leveled by the server and the
// returned list replaces the local one.
type Checklist struct {
	tasks  domain.TaskService
	clock  domain.Clock
	logger domain.Logger
}

// NewChecklist creates a new Checklist use case.
func NewChecklist(tasks domain.TaskService, logger domain.Logger, clock domain.Clock) *Checklist {
	return &Checklist{
		tasks:  tasks,
		clock:  clock,
		logger: logger,
	}
}

// guard fetches the task and enforces the checklist-edit capability.
func (uc *Checklist) guard(ctx context.Context, in ChecklistInput) (*domain.Task, error) {
	task, err := uc.tasks.GetTask(ctx, in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task.IsDeleted {
		return nil, domain.ErrTaskDeleted
	}
	if !domain.Evaluate(task, in.User).CanEditChecklist {
		return nil, domain.ErrPermissionDenied
	}
	return task, nil
}

// Add appends a new top-level item.
func (uc *Checklist) Add(ctx context.Context, in ChecklistInput) (*ChecklistOutput, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, fmt.Errorf("item text is required")
	}
	task, err := uc.guard(ctx, in)
	if err != nil {
		return nil, err
	}

	if _, err := uc.tasks.AddChecklistItem(ctx, in.TaskID, text); err != nil {
		return nil, fmt.Errorf("add checklist item: %w", err)
	}
	return uc.reload(ctx, task.ID)
}

// Toggle flips an item's completion state, stamping who completed it
// and when.
func (uc *Checklist) Toggle(ctx context.Context, in ChecklistInput) (*ChecklistOutput, error) {
	task, err := uc.guard(ctx, in)
	if err != nil {
		return nil, err
	}
	item := findChecklistItem(task.Checklist, in.ItemID)
	if item == nil {
		return nil, domain.ErrChecklistItemNotFound
	}

	updated := *item
	if updated.Completed {
		updated.Completed = false
		updated.CompletedBy = 0
		updated.CompletedAt = nil
	} else {
		now := uc.clock.Now()
		updated.Completed = true
		updated.CompletedBy = in.User.ID
		updated.CompletedAt = &now
	}

	if _, err := uc.tasks.UpdateChecklistItem(ctx, in.TaskID, updated); err != nil {
		return nil, fmt.Errorf("toggle checklist item: %w", err)
	}
	return uc.reload(ctx, task.ID)
}

// Edit replaces an item's text.
func (uc *Checklist) Edit(ctx context.Context, in ChecklistInput) (*ChecklistOutput, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, fmt.Errorf("item text is required")
	}
	task, err := uc.guard(ctx, in)
	if err != nil {
		return nil, err
	}
	item := findChecklistItem(task.Checklist, in.ItemID)
	if item == nil {
		return nil, domain.ErrChecklistItemNotFound
	}

	updated := *item
	updated.Text = text
	if _, err := uc.tasks.UpdateChecklistItem(ctx, in.TaskID, updated); err != nil {
		return nil, fmt.Errorf("edit checklist item: %w", err)
	}
	return uc.reload(ctx, task.ID)
}

// Delete removes an item.
func (uc *Checklist) Delete(ctx context.Context, in ChecklistInput) (*ChecklistOutput, error) {
	task, err := uc.guard(ctx, in)
	if err != nil {
		return nil, err
	}
	if findChecklistItem(task.Checklist, in.ItemID) == nil {
		return nil, domain.ErrChecklistItemNotFound
	}

	if err := uc.tasks.DeleteChecklistItem(ctx, in.TaskID, in.ItemID); err != nil {
		return nil, fmt.Errorf("delete checklist item: %w", err)
	}
	return uc.reload(ctx, task.ID)
}

// Restructure applies a structural operation: "indent", "outdent", or
// "move" with direction "up"/"down". The op is validated against the
// cached checklist first, so a boundary violation surfaces as
// ErrChecklistLevel or ErrChecklistBoundary without a network call.
func (uc *Checklist) Restructure(ctx context.Context, in ChecklistInput, op domain.ChecklistOp) (*ChecklistOutput, error) {
	task, err := uc.guard(ctx, in)
	if err != nil {
		return nil, err
	}
	if findChecklistItem(task.Checklist, in.ItemID) == nil {
		return nil, domain.ErrChecklistItemNotFound
	}
	if _, err := domain.RestructureItems(task.Checklist, in.ItemID, op); err != nil {
		return nil, err
	}

	items, err := uc.tasks.RestructureChecklist(ctx, in.TaskID, in.ItemID, op)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug(in.TaskID, "checklist", fmt.Sprintf("restructured item %d (%s %s)", in.ItemID, op.Action, op.Direction))
	return &ChecklistOutput{Items: items}, nil
}

func (uc *Checklist) reload(ctx context.Context, taskID int) (*ChecklistOutput, error) {
	task, err := uc.tasks.GetTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("reload task: %w", err)
	}
	return &ChecklistOutput{Items: task.Checklist}, nil
}

func findChecklistItem(items []domain.ChecklistItem, id int) *domain.ChecklistItem {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}
