// Package debounce runs a function once input has been quiet for a fixed period
package debounce

import (
	"sync"
	"time"
)

// DefaultQuiet is the quiet period used for free text input
const DefaultQuiet = 500 * time.Millisecond

// Debouncer holds at most one pending call. A new Trigger cancels the pending
// call and restarts the quiet period; calls never accumulate.
type Debouncer struct {
	quiet time.Duration

	mu    sync.Mutex
	timer *time.Timer
	fn    func()
	gen   uint64
}

// New returns a Debouncer; d <= 0 uses DefaultQuiet
func New(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultQuiet
	}
	return &Debouncer{quiet: d}
}

// Quiet returns the configured quiet period
func (d *Debouncer) Quiet() time.Duration { return d.quiet }

// Trigger schedules fn after the quiet period, replacing any pending call
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.fn = fn
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(gen) })
}

// fire runs the pending call if it is still the one scheduled as gen
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.fn == nil {
		d.mu.Unlock()
		return
	}
	fn := d.take()
	d.mu.Unlock()
	fn()
}

// Flush runs the pending call now, if any; reports whether one ran
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.fn == nil {
		d.mu.Unlock()
		return false
	}
	fn := d.take()
	d.mu.Unlock()
	fn()
	return true
}

// Stop cancels the pending call without running it
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.take()
}

// Pending reports whether a call is waiting for the quiet period to end
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fn != nil
}

// take clears the pending state and returns the call; caller holds mu
func (d *Debouncer) take() func() {
	fn := d.fn
	d.fn = nil
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return fn
}
