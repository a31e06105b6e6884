package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flightlens/internal/config"
)

func newTestProvider(serverURL string) *FlightDataProvider {
	cfg := &config.Config{
		UpstreamBaseURL: serverURL,
		UpstreamAPIKey:  "test-key",
		UpstreamTimeout: 2 * time.Second,
	}
	return NewFlightDataProvider(cfg, nil)
}

func TestSearchSummaries_MapsFieldVariants(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/flights/search" {
			t.Errorf("expected /flights/search, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "AA100" {
			t.Errorf("expected query AA100, got %q", got)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Error("expected bearer auth header")
		}
		if r.URL.Query().Get("from") == "" || r.URL.Query().Get("to") == "" {
			t.Error("expected a time window")
		}

		w.WriteHeader(http.StatusOK)
		// One entry using the primary names, one using the variants.
		w.Write([]byte(`{"result": [
			{"id": "f-1", "number": "AA100", "origin": "KJFK", "destination": "KLAX",
			 "takeoff_time": "2026-08-30T09:00:00Z", "aircraft_type": "B738", "ended": true},
			{"flight_id": "f-2", "flight_number": "AA100", "origin_icao": "KJFK",
			 "destination_icao": "KLAX", "departure_time": "1788512400", "equipment": "A321",
			 "status": "landed"}
		]}`))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	entries, err := p.SearchSummaries(context.Background(), "AA100",
		time.Now().Add(-10*24*time.Hour), time.Now().Add(4*24*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first, second := entries[0], entries[1]
	if first.FlightID != "f-1" || first.AircraftType != "B738" || !first.Ended {
		t.Errorf("unexpected first entry: %+v", first)
	}
	if first.TakeoffTime == nil || !first.TakeoffTime.Equal(time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected takeoff time: %v", first.TakeoffTime)
	}

	if second.FlightID != "f-2" || second.Number != "AA100" ||
		second.OriginCode != "KJFK" || second.DestCode != "KLAX" ||
		second.AircraftType != "A321" {
		t.Errorf("variant fields not mapped: %+v", second)
	}
	if !second.Ended {
		t.Error("status landed must map to ended")
	}
	if second.TakeoffTime == nil || second.TakeoffTime.Unix() != 1788512400 {
		t.Errorf("unix timestamps must parse, got %v", second.TakeoffTime)
	}
}

func TestSearchSummaries_Forbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message": "upgrade required"}`))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	_, err := p.SearchSummaries(context.Background(), "AA100", time.Now(), time.Now())
	if err == nil {
		t.Fatal("expected an error for 403")
	}
	if !IsForbidden(err) {
		t.Errorf("expected a forbidden provider error, got %v", err)
	}
}

func TestSearchLive_SingleMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/flights/live" {
			t.Errorf("expected /flights/live, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("callsign"); got != "AAL100" {
			t.Errorf("expected callsign AAL100, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"result": [
			{"id": "live-7", "callsign": "AAL100", "lat": 41.2, "lon": -95.9,
			 "altitude": 36000, "ground_speed": 450, "origin": "KJFK", "destination": "KLAX"}
		]}`))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	live, err := p.SearchLive(context.Background(), "AAL100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if live == nil {
		t.Fatal("expected a live flight")
	}
	if live.FlightID != "live-7" || live.Position.Lat != 41.2 {
		t.Errorf("unexpected live flight: %+v", live)
	}
	if live.Position.Altitude == nil || *live.Position.Altitude != 36000 {
		t.Errorf("unexpected altitude: %v", live.Position.Altitude)
	}
	if live.Position.Source != "live" {
		t.Errorf("expected live source tag, got %q", live.Position.Source)
	}
}

func TestSearchLive_AmbiguousReturnsNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"result": [
			{"id": "a", "callsign": "AAL100", "lat": 1, "lon": 2},
			{"id": "b", "callsign": "AAL100", "lat": 3, "lon": 4}
		]}`))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	live, err := p.SearchLive(context.Background(), "AAL100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if live != nil {
		t.Errorf("ambiguous matches must be discarded, got %+v", live)
	}
}

func TestFetchTrack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/flights/f-1/track" {
			t.Errorf("expected /flights/f-1/track, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"track": [
			{"lat": 40.6, "lon": -73.8, "heading": 270, "timestamp": "2026-08-30T09:05:00Z"},
			{"lat": 39.5, "lon": -84.2}
		]}`))
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	track, err := p.FetchTrack(context.Background(), "f-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(track) != 2 {
		t.Fatalf("expected 2 points, got %d", len(track))
	}
	if track[0].Track == nil || *track[0].Track != 270 {
		t.Errorf("heading must map onto the track field, got %v", track[0].Track)
	}
	if track[0].Source != "track" {
		t.Errorf("expected track source tag, got %q", track[0].Source)
	}
}

func TestUpstreamServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := newTestProvider(server.URL)
	_, err := p.FetchTrack(context.Background(), "f-1")
	if err == nil {
		t.Fatal("expected an error for 500")
	}
	if IsForbidden(err) {
		t.Error("a 500 is not a permission denial")
	}
}
