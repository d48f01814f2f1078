package domain

import "fmt"

// MaxChecklistLevel is the deepest allowed checklist indent.
const MaxChecklistLevel = 5

// childSpan returns the index just past the contiguous block of items
// that are visually nested under items[i] (successors with a deeper level).
func childSpan(items []ChecklistItem, i int) int {
	end := i + 1
	for end < len(items) && items[end].Level > items[i].Level {
		end++
	}
	return end
}

// findItem returns the index of the item with the given id, or -1.
func findItem(items []ChecklistItem, id int) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// Resequence rewrites ItemOrder to match the slice order and clamps each
// level so that no item is indented more than one step past its visual
// predecessor. It keeps children logically grouped under the preceding
// item of lower level.
func Resequence(items []ChecklistItem) []ChecklistItem {
	prevLevel := -1
	for i := range items {
		items[i].ItemOrder = i
		if items[i].Level > prevLevel+1 {
			items[i].Level = prevLevel + 1
		}
		if items[i].Level < 0 {
			items[i].Level = 0
		}
		if items[i].Level > MaxChecklistLevel {
			items[i].Level = MaxChecklistLevel
		}
		prevLevel = items[i].Level
	}
	return items
}

// IndentItem indents an item one level, carrying its child block along.
// Returns ErrChecklistLevel when the item is already at the maximum level
// or has no predecessor to nest under.
func IndentItem(items []ChecklistItem, id int) ([]ChecklistItem, error) {
	i := findItem(items, id)
	if i < 0 {
		return nil, ErrChecklistItemNotFound
	}
	if items[i].Level >= MaxChecklistLevel || i == 0 {
		return nil, ErrChecklistLevel
	}
	// Cannot indent deeper than one step below the predecessor.
	if items[i].Level > items[i-1].Level {
		return nil, ErrChecklistLevel
	}

	out := cloneItems(items)
	end := childSpan(out, i)
	for j := i; j < end; j++ {
		out[j].Level++
	}
	return Resequence(out), nil
}

// OutdentItem outdents an item one level, carrying its child block along.
// Returns ErrChecklistLevel when the item is already at level 0.
func OutdentItem(items []ChecklistItem, id int) ([]ChecklistItem, error) {
	i := findItem(items, id)
	if i < 0 {
		return nil, ErrChecklistItemNotFound
	}
	if items[i].Level <= 0 {
		return nil, ErrChecklistLevel
	}

	out := cloneItems(items)
	end := childSpan(out, i)
	for j := i; j < end; j++ {
		out[j].Level--
	}
	return Resequence(out), nil
}

// MoveItemUp swaps an item (with its child block) with the preceding
// sibling block. Returns ErrChecklistBoundary at the top of the list.
func MoveItemUp(items []ChecklistItem, id int) ([]ChecklistItem, error) {
	i := findItem(items, id)
	if i < 0 {
		return nil, ErrChecklistItemNotFound
	}
	// Find the preceding sibling (same or lower level blocks between are
	// impossible: the previous block at the same level starts at the
	// nearest predecessor whose level <= items[i].Level).
	p := i - 1
	for p >= 0 && items[p].Level > items[i].Level {
		p--
	}
	if p < 0 || items[p].Level < items[i].Level {
		return nil, ErrChecklistBoundary
	}

	out := cloneItems(items)
	end := childSpan(out, i)
	block := append([]ChecklistItem(nil), out[i:end]...)
	rest := append([]ChecklistItem(nil), out[p:i]...)
	copy(out[p:], block)
	copy(out[p+len(block):], rest)
	return Resequence(out), nil
}

// MoveItemDown swaps an item (with its child block) with the following
// sibling block. Returns ErrChecklistBoundary at the bottom of the list.
func MoveItemDown(items []ChecklistItem, id int) ([]ChecklistItem, error) {
	i := findItem(items, id)
	if i < 0 {
		return nil, ErrChecklistItemNotFound
	}
	end := childSpan(items, i)
	if end >= len(items) || items[end].Level < items[i].Level {
		return nil, ErrChecklistBoundary
	}

	out := cloneItems(items)
	nextEnd := childSpan(out, end)
	block := append([]ChecklistItem(nil), out[i:end]...)
	next := append([]ChecklistItem(nil), out[end:nextEnd]...)
	copy(out[i:], next)
	copy(out[i+len(next):], block)
	return Resequence(out), nil
}

// RestructureItems dispatches a structural op ("indent", "outdent", or
// "move" with direction "up"/"down") to the matching engine function.
func RestructureItems(items []ChecklistItem, id int, op ChecklistOp) ([]ChecklistItem, error) {
	switch {
	case op.Action == "indent":
		return IndentItem(items, id)
	case op.Action == "outdent":
		return OutdentItem(items, id)
	case op.Action == "move" && op.Direction == "up":
		return MoveItemUp(items, id)
	case op.Action == "move" && op.Direction == "down":
		return MoveItemDown(items, id)
	default:
		return nil, fmt.Errorf("unknown checklist op %q", op.Action)
	}
}

func cloneItems(items []ChecklistItem) []ChecklistItem {
	return append([]ChecklistItem(nil), items...)
}
