package persist

import (
	"sync"
	"time"
)

// Debouncer batches rapid triggers per key into a single call of run after
// the key has been quiet for the configured delay.
type Debouncer struct {
	delay time.Duration
	run   func(key string)

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewDebouncer creates a Debouncer that calls run once per quiet period.
func NewDebouncer(delay time.Duration, run func(key string)) *Debouncer {
	return &Debouncer{
		delay:   delay,
		run:     run,
		pending: map[string]*time.Timer{},
	}
}

// Trigger schedules run for key, restarting the quiet period if one is pending.
func (d *Debouncer) Trigger(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.pending[key]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(d.delay, func() { d.fire(key, &t) })
	d.pending[key] = t
}

// Stop cancels every pending key without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, t := range d.pending {
		t.Stop()
	}
	d.pending = map[string]*time.Timer{}
}

// fire runs key if t is still its pending timer. t is read under d.mu because
// Trigger assigns it while holding the lock.
func (d *Debouncer) fire(key string, t **time.Timer) {
	d.mu.Lock()
	if d.pending[key] != *t {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	d.run(key)
}
