package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"flightlens/internal/config"
	"flightlens/internal/metrics"
	"flightlens/internal/models"
)

// Prometheus collectors register globally, so the registry is shared across
// the package's tests.
var testMetrics = metrics.NewMetricsRegistry()

func newTestDeps(t *testing.T, upstreamURL string) *Dependencies {
	t.Helper()
	cfg := &config.Config{
		AppEnv:           "test",
		UpstreamBaseURL:  upstreamURL,
		UpstreamTimeout:  2 * time.Second,
		CacheTTL:         time.Minute,
		NegativeCacheTTL: time.Minute,
		CacheSweep:       time.Minute,
		GeneralWindow:    10 * time.Second,
		PerTargetWindow:  30 * time.Second,
	}
	deps, err := InitDependencies(cfg, testMetrics)
	if err != nil {
		t.Fatalf("failed to initialize dependencies: %v", err)
	}
	t.Cleanup(deps.Limiter.Close)
	return deps
}

func doLookup(deps *Dependencies, query, clientIP string) *httptest.ResponseRecorder {
	r := httptest.NewRequest("GET", "/flight?"+query, nil)
	if clientIP != "" {
		r.Header.Set("X-Forwarded-For", clientIP)
	}
	w := httptest.NewRecorder()
	FlightLookupHandler(deps)(w, r)
	return w
}

func TestFlightLookupMissingParam(t *testing.T) {
	deps := newTestDeps(t, "http://127.0.0.1:0")

	w := doLookup(deps, "", "10.1.0.1")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestFlightLookupInvalidIdentifier(t *testing.T) {
	deps := newTestDeps(t, "http://127.0.0.1:0")

	w := doLookup(deps, "number=12345", "10.1.0.2")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a malformed identifier, got %d", w.Code)
	}
}

func TestFlightLookupSuccessAndCache(t *testing.T) {
	var searchCalls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/flights/search":
			atomic.AddInt32(&searchCalls, 1)
			w.Write([]byte(`{"result": [
				{"id": "f-1", "number": "AA100", "callsign": "AAL100",
				 "origin": "KJFK", "destination": "KLAX",
				 "takeoff_time": "2026-08-30T09:00:00Z"}
			]}`))
		case "/flights/f-1/track":
			w.Write([]byte(`{"track": [{"lat": 40.6, "lon": -73.8}]}`))
		default:
			w.Write([]byte(`{"result": []}`))
		}
	}))
	defer upstream.Close()

	deps := newTestDeps(t, upstream.URL)

	w := doLookup(deps, "number=AA100", "10.2.0.1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var record models.FlightRecord
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if record.Summary.FlightID != "f-1" || record.OriginName == "" {
		t.Errorf("unexpected record: %+v", record)
	}

	// Second lookup from a different client is served from cache.
	w = doLookup(deps, "number=aa+100", "10.2.0.2")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from cache, got %d", w.Code)
	}
	if w.Header().Get("X-Cache-Age") == "" {
		t.Error("expected a cache age header on the second response")
	}
	if got := atomic.LoadInt32(&searchCalls); got != 1 {
		t.Errorf("expected a single upstream search, got %d", got)
	}
}

func TestFlightLookupRateLimited(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": []}`))
	}))
	defer upstream.Close()

	deps := newTestDeps(t, upstream.URL)

	if w := doLookup(deps, "number=AA100", "10.3.0.1"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for the first request, got %d", w.Code)
	}

	w := doLookup(deps, "number=DL42", "10.3.0.1")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	var body struct {
		RetryAfterSeconds int `json:"retryAfterSeconds"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.RetryAfterSeconds < 1 {
		t.Errorf("expected retryAfterSeconds >= 1, got %d", body.RetryAfterSeconds)
	}
}

func TestFlightLookupNegativeCache(t *testing.T) {
	var searchCalls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/flights/search" {
			atomic.AddInt32(&searchCalls, 1)
		}
		w.Write([]byte(`{"result": []}`))
	}))
	defer upstream.Close()

	deps := newTestDeps(t, upstream.URL)

	if w := doLookup(deps, "number=ZZ999", "10.4.0.1"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	calls := atomic.LoadInt32(&searchCalls)

	// A different client asking for the same flight hits the negative
	// cache; the upstream is left alone.
	if w := doLookup(deps, "number=ZZ999", "10.4.0.2"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 from the negative cache, got %d", w.Code)
	}
	if got := atomic.LoadInt32(&searchCalls); got != calls {
		t.Errorf("expected no further upstream calls, got %d extra", got-calls)
	}
}

func TestFlightLookupForbidden(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "upgrade required"}`))
	}))
	defer upstream.Close()

	deps := newTestDeps(t, upstream.URL)

	w := doLookup(deps, "number=AA100", "10.5.0.1")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestFlightProgressHandler(t *testing.T) {
	deps := newTestDeps(t, "http://127.0.0.1:0")
	handler := FlightProgressHandler(deps)

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/flight-progress?origin=KJFK&dest=KLAX&lat=40.6413&lon=-73.7781", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var body struct {
		Progress struct {
			Pct     int     `json:"pct"`
			TotalKm float64 `json:"totalKm"`
		} `json:"progress"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Progress.Pct != 0 || body.Progress.TotalKm < 3800 {
		t.Errorf("unexpected progress: %+v", body.Progress)
	}

	w = httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/flight-progress?origin=KJFK&dest=KLAX", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing coordinates, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/flight-progress?origin=ZZZZ&dest=KLAX&lat=1&lon=2", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown airport, got %d", w.Code)
	}
}
