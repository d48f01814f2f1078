// Package window implements windowed rendering over a flat row list with
// variable per-row heights. It only does the index math; how rows are
// produced and drawn is the caller's concern, so the rendering mechanism
// stays swappable without touching grouping logic.
package window

import "sort"

// HeightFunc maps a row index to its height in rows/pixels.
type HeightFunc func(index int) int

// FixedHeights returns a HeightFunc that serves per-kind fixed heights
// through a lookup, falling back to def for unknown kinds.
func FixedHeights(kinds []int, byKind map[int]int, def int) HeightFunc {
	return func(index int) int {
		if index < 0 || index >= len(kinds) {
			return def
		}
		if h, ok := byKind[kinds[index]]; ok {
			return h
		}
		return def
	}
}

// Window precomputes offsets for a row list so visible-range queries are
// O(log n). Rebuild it whenever the row list or heights change.
type Window struct {
	offsets []int // offsets[i] = y position of row i
	total   int
	count   int
}

// New builds a Window for count rows with the given height function.
func New(count int, height HeightFunc) *Window {
	offsets := make([]int, count)
	y := 0
	for i := 0; i < count; i++ {
		offsets[i] = y
		h := height(i)
		if h < 1 {
			h = 1
		}
		y += h
	}
	return &Window{offsets: offsets, total: y, count: count}
}

// Count returns the number of rows.
func (w *Window) Count() int { return w.count }

// TotalHeight returns the summed height of all rows.
func (w *Window) TotalHeight() int { return w.total }

// OffsetOf returns the y position of a row.
func (w *Window) OffsetOf(index int) int {
	if index < 0 || index >= w.count {
		return w.total
	}
	return w.offsets[index]
}

// IndexAt returns the index of the row occupying the given y position.
func (w *Window) IndexAt(y int) int {
	if w.count == 0 || y < 0 {
		return 0
	}
	if y >= w.total {
		return w.count - 1
	}
	// First row whose offset is past y, minus one.
	i := sort.Search(w.count, func(i int) bool { return w.offsets[i] > y })
	return i - 1
}

// Visible returns the half-open index range [start, end) of rows that
// intersect the viewport starting at scrollTop.
func (w *Window) Visible(scrollTop, viewportHeight int) (start, end int) {
	if w.count == 0 || viewportHeight <= 0 {
		return 0, 0
	}
	if scrollTop < 0 {
		scrollTop = 0
	}
	start = w.IndexAt(scrollTop)
	end = w.IndexAt(scrollTop+viewportHeight-1) + 1
	return start, end
}

// NearEnd reports whether the visible window has come within threshold
// rows of the end of the list, signalling that the next page should load.
func (w *Window) NearEnd(end, threshold int) bool {
	return w.count-end <= threshold
}

// ClampScroll limits scrollTop so the viewport never scrolls past the
// content.
func (w *Window) ClampScroll(scrollTop, viewportHeight int) int {
	max := w.total - viewportHeight
	if max < 0 {
		max = 0
	}
	if scrollTop > max {
		scrollTop = max
	}
	if scrollTop < 0 {
		scrollTop = 0
	}
	return scrollTop
}

// ScrollIntoView adjusts scrollTop so the row at index is fully visible,
// moving as little as possible.
func (w *Window) ScrollIntoView(index, scrollTop, viewportHeight int) int {
	if index < 0 || index >= w.count {
		return scrollTop
	}
	top := w.offsets[index]
	bottom := w.total
	if index+1 < w.count {
		bottom = w.offsets[index+1]
	}
	if top < scrollTop {
		return top
	}
	if bottom > scrollTop+viewportHeight {
		return bottom - viewportHeight
	}
	return scrollTop
}
