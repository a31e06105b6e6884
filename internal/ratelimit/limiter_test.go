package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

// newTestLimiter returns a limiter driven by a fake clock.
func newTestLimiter(general, target time.Duration) (*Limiter, *time.Time) {
	l := New(general, target)
	current := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return current }
	return l, &current
}

func TestGeneralWindow(t *testing.T) {
	l, now := newTestLimiter(10*time.Second, 30*time.Second)
	defer l.Close()

	if le := l.Check("client", ""); le != nil {
		t.Fatalf("first request must pass, got %v", le)
	}

	// One millisecond under the window: rejected, retry-after at least 1s.
	*now = now.Add(10*time.Second - time.Millisecond)
	le := l.Check("client", "")
	if le == nil {
		t.Fatal("expected rejection just under the window")
	}
	if le.Scope != "general" {
		t.Errorf("expected general scope, got %q", le.Scope)
	}
	if le.RetryAfter < 1 {
		t.Errorf("expected retryAfter >= 1, got %d", le.RetryAfter)
	}

	// Exactly the window after the first accepted request: allowed. The
	// rejected attempt above must not have moved the window.
	*now = now.Add(time.Millisecond)
	if le := l.Check("client", ""); le != nil {
		t.Errorf("expected acceptance exactly at the window edge, got %v", le)
	}
}

func TestPerTargetWindow(t *testing.T) {
	l, now := newTestLimiter(time.Second, 30*time.Second)
	defer l.Close()

	if le := l.Check("client", "AA100"); le != nil {
		t.Fatalf("first request must pass, got %v", le)
	}

	// Past the general window, still inside the per-target one.
	*now = now.Add(10 * time.Second)
	le := l.Check("client", "AA100")
	if le == nil {
		t.Fatal("expected a per-target rejection")
	}
	if le.Scope != "target" {
		t.Errorf("expected target scope, got %q", le.Scope)
	}
	if le.RetryAfter < 1 || le.RetryAfter > 30 {
		t.Errorf("unexpected retryAfter %d", le.RetryAfter)
	}
}

func TestGeneralLayerShortCircuitsTarget(t *testing.T) {
	l, now := newTestLimiter(10*time.Second, 30*time.Second)
	defer l.Close()

	if le := l.Check("client", "AA100"); le != nil {
		t.Fatalf("first request must pass, got %v", le)
	}

	// A different, never-seen target is still blocked by the general layer.
	*now = now.Add(time.Second)
	le := l.Check("client", "DL42")
	if le == nil || le.Scope != "general" {
		t.Errorf("expected a general rejection, got %v", le)
	}
}

func TestDistinctClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(10*time.Second, 30*time.Second)
	defer l.Close()

	if le := l.Check("alice", "AA100"); le != nil {
		t.Fatalf("unexpected rejection: %v", le)
	}
	if le := l.Check("bob", "AA100"); le != nil {
		t.Errorf("other clients must not share windows, got %v", le)
	}
}

func TestClientID(t *testing.T) {
	r := httptest.NewRequest("GET", "/flight?number=AA100", nil)
	r.RemoteAddr = "203.0.113.7:54321"
	if got := ClientID(r); got != "203.0.113.7" {
		t.Errorf("expected remote host, got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "198.51.100.4, 10.0.0.1")
	if got := ClientID(r); got != "198.51.100.4" {
		t.Errorf("expected first forwarded hop, got %q", got)
	}
}
