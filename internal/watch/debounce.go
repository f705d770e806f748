// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// debouncer coalesces paths and fires flush once no path was added for delay.
type debouncer struct {
	delay time.Duration
	flush func(ctx context.Context, changed []string)
	busy  func()

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	running atomic.Bool
}

func newDebouncer(delay time.Duration, flush func(context.Context, []string), busy func()) *debouncer {
	return &debouncer{
		delay:   delay,
		flush:   flush,
		busy:    busy,
		pending: make(map[string]struct{}),
	}
}

// add records path and restarts the quiet period.
func (d *debouncer) add(ctx context.Context, path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[path] = struct{}{}
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, func() { d.fire(ctx) })
		return
	}
	d.timer.Reset(d.delay)
}

func (d *debouncer) fire(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if !d.running.CompareAndSwap(false, true) {
		if d.busy != nil {
			d.busy()
		}
		d.mu.Lock()
		if d.timer != nil {
			d.timer.Reset(d.delay)
		}
		d.mu.Unlock()
		return
	}
	defer d.running.Store(false)

	d.mu.Lock()
	if len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	changed := make([]string, 0, len(d.pending))
	for p := range d.pending {
		changed = append(changed, p)
	}
	clear(d.pending)
	d.mu.Unlock()

	slices.Sort(changed)
	d.flush(ctx, changed)
}

// stop cancels a scheduled flush.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
