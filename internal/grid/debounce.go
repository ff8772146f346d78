package grid

import (
	"sync"
	"time"
)

// Debouncer rate-limits a stream of values with trailing-edge semantics:
// only the last value seen within the delay window is delivered. Used to
// bound query rate while the user types a search; correctness of the
// query itself never depends on it.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	fn    func(string)
}

// NewDebouncer creates a debouncer delivering values to fn after delay.
func NewDebouncer(delay time.Duration, fn func(string)) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Set schedules v for delivery, superseding any pending value.
func (d *Debouncer) Set(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fn(v) })
}

// Flush delivers any pending value immediately.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	t := d.timer
	d.timer = nil
	d.mu.Unlock()

	if t != nil && t.Stop() {
		// The callback had not fired yet; Reset(0) fires it now.
		t.Reset(0)
	}
}

// Stop discards any pending value.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
