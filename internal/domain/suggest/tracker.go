package suggest

import "sync"

// Tracker hands out request tickets per key so that only the most recent
// request's results are accepted.
type Tracker struct {
	mu     sync.Mutex
	latest map[string]uint64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{latest: map[string]uint64{}}
}

// Begin starts a request for key and returns its ticket. Any earlier ticket
// for the same key becomes stale.
func (t *Tracker) Begin(key string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest[key]++
	return t.latest[key]
}

// Current reports whether ticket is still the newest for key.
func (t *Tracker) Current(key string, ticket uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[key] == ticket
}
