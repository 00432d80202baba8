// internal/agents/toolcall/tracker.go
package toolcall

import (
	"sync"
	"time"
)

// Tracker is a sliding-window breaker for tool invocations. Repeated calls
// to the same tool with the same parameters inside the window are refused
// once the limit is reached, which keeps a looping agent from flooding the
// response with duplicate components.
type Tracker struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	calls  map[string][]time.Time
	now    func() time.Time
}

// NewTracker builds a tracker allowing limit calls per key per window.
func NewTracker(limit int, window time.Duration) *Tracker {
	if limit <= 0 {
		limit = 3
	}
	if window <= 0 {
		window = 30 * time.Second
	}
	return &Tracker{
		limit:  limit,
		window: window,
		calls:  make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow records an invocation of tool with params and reports whether it
// is within the limit.
func (t *Tracker) Allow(tool, params string) bool {
	key := tool + "|" + params

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	cutoff := now.Add(-t.window)

	recent := t.calls[key][:0]
	for _, ts := range t.calls[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= t.limit {
		t.calls[key] = recent
		return false
	}

	t.calls[key] = append(recent, now)
	return true
}

// Reset clears all recorded invocations.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = make(map[string][]time.Time)
}
