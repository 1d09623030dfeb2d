package watcher

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid file system events per path.
type Debouncer struct {
	window   time.Duration
	callback func(path string)

	mu      sync.Mutex
	pending map[string]*time.Timer
	stopped bool
}

// NewDebouncer creates a new debouncer with the given window and callback.
func NewDebouncer(window time.Duration, callback func(path string)) *Debouncer {
	return &Debouncer{
		window:   window,
		callback: callback,
		pending:  make(map[string]*time.Timer),
	}
}

// Add queues an event for debouncing. Repeated adds for the same path within
// the window reset its timer.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if timer, ok := d.pending[path]; ok {
		timer.Stop()
	}
	d.pending[path] = time.AfterFunc(d.window, func() {
		d.fire(path)
	})
}

// fire executes the callback for a path.
func (d *Debouncer) fire(path string) {
	d.mu.Lock()
	_, ok := d.pending[path]
	if !ok {
		d.mu.Unlock()
		return
	}
	delete(d.pending, path)
	stopped := d.stopped
	d.mu.Unlock()

	if !stopped && d.callback != nil {
		d.callback(path)
	}
}

// Stop stops all pending timers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for _, timer := range d.pending {
		timer.Stop()
	}
	d.pending = make(map[string]*time.Timer)
}
