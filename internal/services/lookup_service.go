package services

import (
	"context"
	"fmt"
	"time"

	"flightlens/internal/common"
	"flightlens/internal/ident"
	"flightlens/internal/logging"
	"flightlens/internal/metrics"
	"flightlens/internal/models"
	"flightlens/internal/providers"
)

// Summary search window: the provider caps history queries at 14 days, and
// biasing the window toward the past favors recently-completed flights
// while still catching near-future schedules.
const (
	summaryWindowBack    = 10 * 24 * time.Hour
	summaryWindowForward = 4 * 24 * time.Hour
)

// FlightDataAPI is the slice of the upstream provider the lookup service
// needs. *providers.FlightDataProvider satisfies it.
type FlightDataAPI interface {
	SearchSummaries(ctx context.Context, identifier string, from, to time.Time) ([]models.FlightSummaryEntry, error)
	SearchLive(ctx context.Context, callsign string) (*providers.LiveFlight, error)
	FetchTrack(ctx context.Context, flightID string) ([]models.Position, error)
}

// LookupService reconciles historical-summary and live-position data into a
// single canonical flight record.
type LookupService struct {
	api      FlightDataAPI
	resolver *ident.Resolver
	airlines *common.AirlineTable
	airports *common.AirportTable
	metrics  *metrics.MetricsRegistry
}

func NewLookupService(
	api FlightDataAPI,
	resolver *ident.Resolver,
	airlines *common.AirlineTable,
	airports *common.AirportTable,
	m *metrics.MetricsRegistry,
) *LookupService {
	return &LookupService{
		api:      api,
		resolver: resolver,
		airlines: airlines,
		airports: airports,
		metrics:  m,
	}
}

// Resolve turns a raw user identifier into an enriched FlightRecord.
//
// Summary search runs first, trying each expanded candidate in order; the
// live-position fallback only runs when no summary entry exists at all. A
// forbidden summary endpoint fails immediately without attempting the live
// path, since a plan that blocks history almost always blocks live lookups
// too and failing fast spares the second round-trip.
func (s *LookupService) Resolve(ctx context.Context, raw string) (*models.FlightRecord, error) {
	id, err := s.resolver.Parse(raw)
	if err != nil {
		return nil, err
	}

	candidates := s.resolver.Expand(id)
	callsign, hasCallsign := s.resolver.Callsign(id)

	logging.Info("flight lookup started",
		"identifier", id.String(),
		"family", id.Family.String(),
		"candidates", candidates,
		"callsign", callsign,
	)

	now := time.Now().UTC()
	from, to := now.Add(-summaryWindowBack), now.Add(summaryWindowForward)

	var entries []models.FlightSummaryEntry
	for _, candidate := range candidates {
		found, err := s.api.SearchSummaries(ctx, candidate, from, to)
		if err != nil {
			if providers.IsForbidden(err) {
				logging.Warn("summary endpoint forbidden", "identifier", candidate)
				s.countOutcome("forbidden")
				return nil, fmt.Errorf("summary lookup for %s: %w", candidate, models.ErrUpstreamForbidden)
			}
			// Not fatal: the next candidate, or the live path, may still hit.
			logging.Warn("summary lookup failed",
				"identifier", candidate,
				"error", err.Error(),
			)
			continue
		}
		if len(found) > 0 {
			entries = found
			logging.Info("summary hit", "identifier", candidate, "entries", len(found))
			break
		}
	}

	if len(entries) > 0 {
		record := s.buildSummaryRecord(ctx, id, entries)
		s.countOutcome("summary")
		logging.Info("flight lookup resolved from summary",
			"identifier", id.String(),
			"flight_id", record.Summary.FlightID,
			"ended", record.Summary.Ended,
		)
		return record, nil
	}

	logging.Info("summary miss, trying live fallback",
		"identifier", id.String(),
		"has_callsign", hasCallsign,
	)

	if hasCallsign {
		if record := s.liveFallback(ctx, callsign); record != nil {
			s.countOutcome("live")
			logging.Info("flight lookup resolved from live position",
				"identifier", id.String(),
				"callsign", callsign,
			)
			return record, nil
		}
	}

	s.countOutcome("not_found")
	logging.Info("flight lookup found nothing", "identifier", id.String())
	return nil, fmt.Errorf("no data for %s: %w", id.String(), models.ErrNotFound)
}

// buildSummaryRecord selects the most recent occurrence, enriches it, and
// attaches its track when the provider exposes one.
func (s *LookupService) buildSummaryRecord(ctx context.Context, id ident.FlightIdentifier, entries []models.FlightSummaryEntry) *models.FlightRecord {
	summary := pickLatest(entries)

	record := &models.FlightRecord{Summary: summary}
	s.enrich(record, id.Prefix)

	if summary.FlightID != "" {
		track, err := s.api.FetchTrack(ctx, summary.FlightID)
		if err != nil {
			// Track data is garnish; the record stands without it.
			logging.Warn("track fetch failed",
				"flight_id", summary.FlightID,
				"error", err.Error(),
			)
		} else if len(track) > 0 {
			record.Track = track
			last := track[len(track)-1]
			record.LastPosition = &last
		}
	}
	return record
}

// liveFallback synthesizes a record from a single live-position match.
// Errors on this path mean "no data", never a user-visible failure.
func (s *LookupService) liveFallback(ctx context.Context, callsign string) *models.FlightRecord {
	live, err := s.api.SearchLive(ctx, callsign)
	if err != nil {
		logging.Warn("live lookup failed", "callsign", callsign, "error", err.Error())
		return nil
	}
	if live == nil {
		return nil
	}

	summary := models.FlightSummaryEntry{
		FlightID:     live.FlightID,
		Callsign:     live.Callsign,
		OriginCode:   live.OriginCode,
		DestCode:     live.DestCode,
		Registration: live.Registration,
		AircraftType: live.AircraftType,
		Ended:        false,
	}
	if prefix, number, ok := splitCallsign(live.Callsign); ok {
		summary.Number = prefix + number
		if iata, found := s.resolver.ReverseIata(prefix); found {
			summary.Number = iata + number
		}
	}

	record := &models.FlightRecord{
		Summary:      summary,
		Track:        []models.Position{live.Position},
		LastPosition: &live.Position,
	}
	s.enrich(record, prefixOf(live.Callsign))
	return record
}

// enrich fills display names from the static tables. Misses just leave the
// fields unset.
func (s *LookupService) enrich(record *models.FlightRecord, airlinePrefix string) {
	if airlinePrefix != "" {
		if name, ok := s.airlines.NameForPrefix(airlinePrefix); ok {
			record.AirlineName = name
		}
	}
	if record.Summary.OriginCode != "" {
		if ap, ok := s.airports.Lookup(record.Summary.OriginCode); ok {
			record.OriginName = ap.Name
		}
	}
	if record.Summary.DestCode != "" {
		if ap, ok := s.airports.Lookup(record.Summary.DestCode); ok {
			record.DestinationName = ap.Name
		}
	}
}

// pickLatest selects the entry with the latest takeoff time. Entries without
// one sort as time zero, so any timed entry beats them.
func pickLatest(entries []models.FlightSummaryEntry) models.FlightSummaryEntry {
	best := entries[0]
	bestTime := takeoffOrZero(best)
	for _, e := range entries[1:] {
		if t := takeoffOrZero(e); t.After(bestTime) {
			best = e
			bestTime = t
		}
	}
	return best
}

func takeoffOrZero(e models.FlightSummaryEntry) time.Time {
	if e.TakeoffTime == nil {
		return time.Time{}
	}
	return *e.TakeoffTime
}

// splitCallsign separates an ICAO callsign into prefix and number without
// going through the full parser (live callsigns are always ICAO-prefixed).
func splitCallsign(callsign string) (prefix, number string, ok bool) {
	if len(callsign) <= 3 {
		return "", "", false
	}
	return callsign[:3], callsign[3:], true
}

func prefixOf(callsign string) string {
	if p, _, ok := splitCallsign(callsign); ok {
		return p
	}
	return ""
}

func (s *LookupService) countOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.LookupsTotal.WithLabelValues(outcome).Inc()
	}
}
