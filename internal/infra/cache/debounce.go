package cache

import (
	"sync"
	"time"
)

// DefaultDebounce is the coalescing window for rapid consecutive field
// edits; only the last value within the window is dispatched.
const DefaultDebounce = 300 * time.Millisecond

// debouncer coalesces calls: Trigger schedules fn after the delay,
// replacing any previously scheduled fn. Flush runs the pending fn
// immediately.
type debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	fn    func()
	delay time.Duration
}

func newDebouncer(delay time.Duration) *debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &debouncer{delay: delay}
}

// Trigger schedules fn, cancelling any pending call.
func (d *debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fn = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *debouncer) fire() {
	d.mu.Lock()
	fn := d.fn
	d.fn = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Flush runs the pending call now, if any.
func (d *debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	fn := d.fn
	d.fn = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Stop cancels the pending call without running it.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.fn = nil
}
