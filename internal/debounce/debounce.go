// Package debounce provides a trailing-edge debouncer for interactive
// quote requests: rapid calls coalesce into one invocation after the
// quiet period, and each new call supersedes the pending one.
package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of calls into a single trailing-edge
// invocation. Safe for concurrent use.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// New creates a Debouncer with the given quiet period.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Do schedules fn to run after the quiet period, cancelling any
// previously scheduled call. fn receives the generation number of its
// scheduling; a consumer comparing it against Generation() can discard
// results from superseded invocations.
func (d *Debouncer) Do(fn func(gen uint64)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		fn(gen)
	})
}

// Cancel drops any pending invocation.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Generation returns the latest scheduled generation. A result tagged
// with an older generation is stale and must be discarded.
func (d *Debouncer) Generation() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen
}
