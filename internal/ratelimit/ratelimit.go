// Package ratelimit caps requests per caller in fixed time windows.
//
// Windows are aligned to multiples of the window length, so every caller
// shares the same reset instant. Per-key counters live in a bounded LRU
// cache; evicting an idle key only forgets its partial count.
package ratelimit

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// timeNow is a package-level var to allow test injection.
var timeNow = time.Now

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type window struct {
	start time.Time
	count int
}

// Limiter is a fixed-window request counter keyed by caller.
type Limiter struct {
	limit  int
	window time.Duration

	mu   sync.Mutex
	keys *lru.Cache[string, *window]
}

// New returns a limiter allowing limit requests per window for up to
// maxKeys distinct callers.
func New(limit int, every time.Duration, maxKeys int) (*Limiter, error) {
	if limit < 1 {
		return nil, fmt.Errorf("ratelimit: limit must be positive, got %d", limit)
	}
	if every <= 0 {
		return nil, fmt.Errorf("ratelimit: window must be positive, got %s", every)
	}
	keys, err := lru.New[string, *window](maxKeys)
	if err != nil {
		return nil, fmt.Errorf("ratelimit: key cache: %w", err)
	}
	return &Limiter{limit: limit, window: every, keys: keys}, nil
}

// Allow counts one request for key and reports whether it fits in the
// current window.
func (l *Limiter) Allow(key string) Decision {
	now := timeNow()
	start := now.Truncate(l.window)
	reset := start.Add(l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.keys.Get(key)
	if !ok || !w.start.Equal(start) {
		w = &window{start: start}
		l.keys.Add(key, w)
	}

	if w.count >= l.limit {
		return Decision{Allowed: false, Limit: l.limit, Remaining: 0, ResetAt: reset}
	}
	w.count++
	return Decision{Allowed: true, Limit: l.limit, Remaining: l.limit - w.count, ResetAt: reset}
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	return l.keys.Len()
}
