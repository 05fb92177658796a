package postview

import (
	"sync"
	"time"
)

// attemptLimiter caps how often a client IP may hit a sensitive endpoint
// (admin login, manual reload) within a fixed window.
type attemptLimiter struct {
	mu      sync.Mutex
	windows map[string]*attemptWindow
	max     int
	window  time.Duration
}

type attemptWindow struct {
	start time.Time
	count int
}

func newAttemptLimiter(max int, window time.Duration) *attemptLimiter {
	l := &attemptLimiter{
		windows: make(map[string]*attemptWindow),
		max:     max,
		window:  window,
	}
	go l.cleanup()
	return l
}

func (l *attemptLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for ip, w := range l.windows {
			if now.Sub(w.start) >= l.window {
				delete(l.windows, ip)
			}
		}
		l.mu.Unlock()
	}
}

// Allow reports whether the IP may make another attempt, counting this one.
func (l *attemptLimiter) Allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.windows[ip]
	if w == nil || now.Sub(w.start) >= l.window {
		l.windows[ip] = &attemptWindow{start: now, count: 1}
		return true
	}
	if w.count >= l.max {
		return false
	}
	w.count++
	return true
}
