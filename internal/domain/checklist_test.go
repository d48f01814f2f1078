package domain

import (
	"errors"
	"testing"
)

func items(levels ...int) []ChecklistItem {
	out := make([]ChecklistItem, len(levels))
	for i, level := range levels {
		out[i] = ChecklistItem{ID: i + 1, Level: level, ItemOrder: i}
	}
	return out
}

func assertOrder(t *testing.T, got []ChecklistItem, ids ...int) {
	t.Helper()
	if len(got) != len(ids) {
		t.Fatalf("got %d items, want %d", len(got), len(ids))
	}
	for i, id := range ids {
		if got[i].ID != id {
			t.Errorf("item %d id = %d, want %d", i, got[i].ID, id)
		}
		if got[i].ItemOrder != i {
			t.Errorf("item %d ItemOrder = %d, want %d", i, got[i].ItemOrder, i)
		}
	}
}

func TestResequence_ClampsLevels(t *testing.T) {
	list := []ChecklistItem{
		{ID: 1, Level: 0},
		{ID: 2, Level: 3}, // Jumps more than one past its predecessor
		{ID: 3, Level: -2},
		{ID: 4, Level: MaxChecklistLevel + 4},
	}

	out := Resequence(list)

	if out[1].Level != 1 {
		t.Errorf("item 2 level = %d, want 1", out[1].Level)
	}
	if out[2].Level != 0 {
		t.Errorf("item 3 level = %d, want 0", out[2].Level)
	}
	if out[3].Level != 1 {
		t.Errorf("item 4 level = %d, want 1", out[3].Level)
	}
	for i := range out {
		if out[i].ItemOrder != i {
			t.Errorf("item %d ItemOrder = %d, want %d", i, out[i].ItemOrder, i)
		}
	}
}

func TestIndentItem(t *testing.T) {
	list := items(0, 1, 1, 0)

	out, err := IndentItem(list, 3)
	if err != nil {
		t.Fatalf("IndentItem: %v", err)
	}
	if out[2].Level != 2 {
		t.Errorf("item 3 level = %d, want 2", out[2].Level)
	}

	// The original list is untouched.
	if list[2].Level != 1 {
		t.Errorf("input mutated: item 3 level = %d", list[2].Level)
	}
}

func TestIndentItem_CarriesChildren(t *testing.T) {
	// Item 3 has a child (item 4); both shift one level.
	list := items(0, 0, 0, 1)

	out, err := IndentItem(list, 3)
	if err != nil {
		t.Fatalf("IndentItem: %v", err)
	}
	if out[2].Level != 1 || out[3].Level != 2 {
		t.Errorf("levels = %d,%d, want 1,2", out[2].Level, out[3].Level)
	}
}

func TestIndentItem_Boundaries(t *testing.T) {
	if _, err := IndentItem(items(0, 0), 1); !errors.Is(err, ErrChecklistLevel) {
		t.Errorf("first item indent err = %v, want ErrChecklistLevel", err)
	}

	// Already one deeper than its predecessor.
	if _, err := IndentItem(items(0, 1), 2); !errors.Is(err, ErrChecklistLevel) {
		t.Errorf("over-deep indent err = %v, want ErrChecklistLevel", err)
	}

	atMax := items(0, 1, 2, 3, 4, 5, 5)
	if _, err := IndentItem(atMax, 7); !errors.Is(err, ErrChecklistLevel) {
		t.Errorf("max level indent err = %v, want ErrChecklistLevel", err)
	}

	if _, err := IndentItem(items(0), 99); !errors.Is(err, ErrChecklistItemNotFound) {
		t.Errorf("missing item err = %v, want ErrChecklistItemNotFound", err)
	}
}

func TestOutdentItem(t *testing.T) {
	list := items(0, 1, 2)

	out, err := OutdentItem(list, 2)
	if err != nil {
		t.Fatalf("OutdentItem: %v", err)
	}
	// The child block follows the outdented item.
	if out[1].Level != 0 || out[2].Level != 1 {
		t.Errorf("levels = %d,%d, want 0,1", out[1].Level, out[2].Level)
	}

	if _, err := OutdentItem(items(0, 1), 1); !errors.Is(err, ErrChecklistLevel) {
		t.Errorf("level 0 outdent err = %v, want ErrChecklistLevel", err)
	}
}

func TestIndentOutdent_RoundTrip(t *testing.T) {
	list := items(0, 1, 1, 0)

	indented, err := IndentItem(list, 3)
	if err != nil {
		t.Fatalf("IndentItem: %v", err)
	}
	restored, err := OutdentItem(indented, 3)
	if err != nil {
		t.Fatalf("OutdentItem: %v", err)
	}

	for i := range list {
		if restored[i].ID != list[i].ID || restored[i].Level != list[i].Level {
			t.Errorf("item %d = id %d level %d, want id %d level %d",
				i, restored[i].ID, restored[i].Level, list[i].ID, list[i].Level)
		}
	}
}

func TestMoveItemUp(t *testing.T) {
	// Two sibling blocks: [1, 2] and [3, 4].
	list := items(0, 1, 0, 1)

	out, err := MoveItemUp(list, 3)
	if err != nil {
		t.Fatalf("MoveItemUp: %v", err)
	}
	assertOrder(t, out, 3, 4, 1, 2)

	if _, err := MoveItemUp(list, 1); !errors.Is(err, ErrChecklistBoundary) {
		t.Errorf("top item move up err = %v, want ErrChecklistBoundary", err)
	}

	// A child with no preceding sibling at its level cannot move up.
	if _, err := MoveItemUp(items(0, 1), 2); !errors.Is(err, ErrChecklistBoundary) {
		t.Errorf("only child move up err = %v, want ErrChecklistBoundary", err)
	}
}

func TestMoveItemDown(t *testing.T) {
	list := items(0, 1, 0, 1)

	out, err := MoveItemDown(list, 1)
	if err != nil {
		t.Fatalf("MoveItemDown: %v", err)
	}
	assertOrder(t, out, 3, 4, 1, 2)

	if _, err := MoveItemDown(list, 3); !errors.Is(err, ErrChecklistBoundary) {
		t.Errorf("bottom item move down err = %v, want ErrChecklistBoundary", err)
	}
}

func TestRestructureItems_Dispatch(t *testing.T) {
	tests := []struct {
		name string
		op   ChecklistOp
		id   int
		want []int // expected ids in order
	}{
		{"indent", ChecklistOp{Action: "indent"}, 2, []int{1, 2}},
		{"outdent", ChecklistOp{Action: "outdent"}, 2, []int{1, 2}},
		{"move up", ChecklistOp{Action: "move", Direction: "up"}, 2, []int{2, 1}},
		{"move down", ChecklistOp{Action: "move", Direction: "down"}, 1, []int{2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := items(0, 0)
			if tt.name == "outdent" {
				list = items(0, 1)
			}
			out, err := RestructureItems(list, tt.id, tt.op)
			if err != nil {
				t.Fatalf("RestructureItems(%s) err = %v", tt.name, err)
			}
			assertOrder(t, out, tt.want...)
		})
	}

	if _, err := RestructureItems(items(0, 0), 1, ChecklistOp{Action: "promote"}); err == nil {
		t.Error("unknown op should error")
	}
}
