// Package ratelimit implements the dual-layer limiter that protects the
// upstream flight data provider: one window per client, one per
// client-and-target pair.
package ratelimit

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LimitError reports a rejected request and how long the caller should wait.
type LimitError struct {
	Scope      string // "general" or "target"
	RetryAfter int    // whole seconds, rounded up, at least 1
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("rate limited (%s), retry after %ds", e.Scope, e.RetryAfter)
}

// An entry pairs a token bucket with the last time its key was touched, so
// the sweeper can drop idle keys.
type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// Limiter runs the general check strictly before the per-target check. A
// general acceptance is recorded even when the per-target layer then
// rejects, so a client hammering many different flights is still throttled.
type Limiter struct {
	mu      sync.Mutex
	general map[string]*entry
	target  map[string]*entry

	generalWindow time.Duration
	targetWindow  time.Duration

	now  func() time.Time
	stop chan struct{}
}

func New(generalWindow, targetWindow time.Duration) *Limiter {
	l := &Limiter{
		general:       make(map[string]*entry),
		target:        make(map[string]*entry),
		generalWindow: generalWindow,
		targetWindow:  targetWindow,
		now:           time.Now,
		stop:          make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Check gates one request. Target may be empty, in which case only the
// general layer applies.
func (l *Limiter) Check(clientID, target string) *LimitError {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if le := l.checkLayer(l.general, clientID, l.generalWindow, now); le != nil {
		le.Scope = "general"
		return le
	}
	if target != "" {
		key := clientID + "|" + target
		if le := l.checkLayer(l.target, key, l.targetWindow, now); le != nil {
			le.Scope = "target"
			return le
		}
	}
	return nil
}

// checkLayer admits one request per window per key. A limiter with burst 1
// refilling at 1/window is exactly that: a request arriving a full window
// after the last accepted one finds a whole token, anything earlier is
// rejected with the remaining wait as retry-after. Cancelling the
// reservation on rejection keeps the window anchored to the last accepted
// request.
func (l *Limiter) checkLayer(m map[string]*entry, key string, window time.Duration, now time.Time) *LimitError {
	e, ok := m[key]
	if !ok {
		e = &entry{lim: rate.NewLimiter(rate.Every(window), 1)}
		m[key] = e
	}
	e.lastSeen = now

	res := e.lim.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return &LimitError{RetryAfter: retryAfterSeconds(delay)}
	}
	return nil
}

func retryAfterSeconds(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		s = 1
	}
	return s
}

// sweep evicts keys idle for longer than the largest window, so the maps do
// not grow without bound under diverse traffic.
func (l *Limiter) sweep() {
	maxWindow := l.generalWindow
	if l.targetWindow > maxWindow {
		maxWindow = l.targetWindow
	}

	ticker := time.NewTicker(maxWindow)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			cutoff := l.now().Add(-maxWindow)
			l.mu.Lock()
			for key, e := range l.general {
				if e.lastSeen.Before(cutoff) {
					delete(l.general, key)
				}
			}
			for key, e := range l.target {
				if e.lastSeen.Before(cutoff) {
					delete(l.target, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// Close stops the background sweeper.
func (l *Limiter) Close() {
	close(l.stop)
}

// ClientID derives a client key from the most specific network-origin signal
// available: the first X-Forwarded-For hop when present, else the remote
// address host.
func ClientID(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
