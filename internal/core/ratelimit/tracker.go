// Package ratelimit implements an in-memory sliding-window request limiter
// keyed by an actor (user id or client IP) and an endpoint name
package ratelimit

import (
	"sync"
	"time"
)

// Decision is the outcome of a single admission check
// derived fresh per call and never persisted
type Decision struct {
	Allowed   bool
	Remaining int
	Limit     int
	Window    time.Duration
	ResetAt   time.Time
}

// RetryAfter returns whole seconds until ResetAt, rounded up, never negative
func (d Decision) RetryAfter(now time.Time) int {
	rest := d.ResetAt.Sub(now)
	if rest <= 0 {
		return 0
	}
	secs := int((rest + time.Second - 1) / time.Second)
	return secs
}

// Tracker keeps a sliding-window log of request timestamps per (actor, endpoint)
// a single mutex guards the whole map; the critical section is O(window size)
// and fully in memory, so checks stay cheap enough for the request path
type Tracker struct {
	mu     sync.Mutex
	actors map[string]map[string][]time.Time
	now    func() time.Time
}

// NewTracker constructs an empty Tracker using the wall clock
func NewTracker() *Tracker {
	return &Tracker{
		actors: make(map[string]map[string][]time.Time),
		now:    time.Now,
	}
}

// SetClock overrides the clock, for tests
func (t *Tracker) SetClock(now func() time.Time) {
	t.mu.Lock()
	t.now = now
	t.mu.Unlock()
}

// Check prunes expired timestamps for (actor, endpoint) and decides admission
// a timestamp is expired once its age reaches the window (strict age < window keeps it)
// on allow the current instant is recorded; on deny nothing is recorded and
// ResetAt is the oldest remaining timestamp plus the window
func (t *Tracker) Check(actor, endpoint string, limit int, window time.Duration) Decision {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()

	eps, ok := t.actors[actor]
	if !ok {
		eps = make(map[string][]time.Time)
		t.actors[actor] = eps
	}
	kept := prune(eps[endpoint], now, window)

	if len(kept) >= limit {
		eps[endpoint] = kept
		return Decision{
			Allowed:   false,
			Remaining: 0,
			Limit:     limit,
			Window:    window,
			ResetAt:   kept[0].Add(window),
		}
	}

	kept = append(kept, now)
	eps[endpoint] = kept
	return Decision{
		Allowed:   true,
		Remaining: limit - len(kept),
		Limit:     limit,
		Window:    window,
		ResetAt:   now.Add(window),
	}
}

// Sweep drops timestamps older than maxAge across every entry, removes
// endpoint logs that become empty and actors with no endpoints left
// returns the number of actor entries removed
func (t *Tracker) Sweep(maxAge time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	removed := 0
	for actor, eps := range t.actors {
		for ep, stamps := range eps {
			kept := prune(stamps, now, maxAge)
			if len(kept) == 0 {
				delete(eps, ep)
				continue
			}
			eps[ep] = kept
		}
		if len(eps) == 0 {
			delete(t.actors, actor)
			removed++
		}
	}
	return removed
}

// Actors reports how many actor entries are currently tracked
func (t *Tracker) Actors() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.actors)
}

// prune keeps timestamps with age strictly below window
// stamps are appended in order, so the first fresh one starts the kept run
func prune(stamps []time.Time, now time.Time, window time.Duration) []time.Time {
	i := 0
	for i < len(stamps) && now.Sub(stamps[i]) >= window {
		i++
	}
	if i == 0 {
		return stamps
	}
	return append(stamps[:0:0], stamps[i:]...)
}
