package watch

import (
	"log/slog"
	"sync"
	"time"
)

// Debouncer coalesces bursts of file events into one callback. Large
// dataset files arrive as many write events; only the quiet period after
// the last one fires.
type Debouncer struct {
	interval time.Duration
	callback func(path string)

	mu    sync.Mutex
	timer *time.Timer
	last  string
	gen   uint64
}

// NewDebouncer creates a debouncer that waits for interval of quiet before
// firing callback with the path of the last event.
func NewDebouncer(interval time.Duration, callback func(path string)) *Debouncer {
	return &Debouncer{
		interval: interval,
		callback: callback,
	}
}

// Trigger records an event for path and restarts the quiet period.
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.last = path
	d.gen++

	if d.timer != nil {
		d.timer.Stop()
	}

	gen := d.gen
	d.timer = time.AfterFunc(d.interval, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		// Superseded by a later Trigger or by Stop.
		d.mu.Unlock()
		return
	}

	path := d.last
	d.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("debouncer callback panicked", slog.Any("error", r))
		}
	}()

	d.callback(path)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
