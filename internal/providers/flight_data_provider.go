package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"flightlens/internal/config"
	"flightlens/internal/constants"
	"flightlens/internal/metrics"
	"flightlens/internal/models"
	"flightlens/internal/models/dtos"
)

// ProviderError describes a failed call to the upstream flight data provider.
type ProviderError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsForbidden reports whether err is an upstream plan/permission denial.
func IsForbidden(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Code == constants.ErrCodeUpstreamForbidden
}

// LiveFlight is one airborne flight returned by the live-position search,
// already mapped into internal shapes.
type LiveFlight struct {
	FlightID     string
	Callsign     string
	OriginCode   string
	DestCode     string
	Registration string
	AircraftType string
	Position     models.Position
}

// FlightDataProvider is the HTTP client for the upstream provider.
type FlightDataProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client

	metrics *metrics.MetricsRegistry
}

// NewFlightDataProvider creates a provider client from configuration. The
// metrics registry may be nil (tests).
func NewFlightDataProvider(cfg *config.Config, m *metrics.MetricsRegistry) *FlightDataProvider {
	return &FlightDataProvider{
		BaseURL: strings.TrimRight(cfg.UpstreamBaseURL, "/"),
		APIKey:  cfg.UpstreamAPIKey,
		Client: &http.Client{
			Timeout: cfg.UpstreamTimeout,
		},
		metrics: m,
	}
}

// SearchSummaries fetches historical/scheduled occurrences of a flight
// identifier within [from, to].
func (p *FlightDataProvider) SearchSummaries(ctx context.Context, identifier string, from, to time.Time) ([]models.FlightSummaryEntry, error) {
	endpoint := fmt.Sprintf("/flights/search?query=%s&from=%d&to=%d",
		url.QueryEscape(identifier), from.Unix(), to.Unix())

	var resp dtos.SummarySearchResponse
	if err := p.doGET(ctx, endpoint, "search", &resp); err != nil {
		return nil, err
	}

	entries := make([]models.FlightSummaryEntry, 0, len(resp.Result))
	for _, d := range resp.Result {
		entries = append(entries, ingestSummaryEntry(d))
	}
	return entries, nil
}

// SearchLive looks up a currently airborne flight by callsign. A missing or
// ambiguous match returns nil without error.
func (p *FlightDataProvider) SearchLive(ctx context.Context, callsign string) (*LiveFlight, error) {
	endpoint := "/flights/live?callsign=" + url.QueryEscape(callsign)

	var resp dtos.LiveSearchResponse
	if err := p.doGET(ctx, endpoint, "live", &resp); err != nil {
		return nil, err
	}
	if len(resp.Result) != 1 {
		return nil, nil
	}
	lf := ingestLiveEntry(resp.Result[0])
	return &lf, nil
}

// FetchTrack fetches the position track for a provider-internal flight id.
func (p *FlightDataProvider) FetchTrack(ctx context.Context, flightID string) ([]models.Position, error) {
	endpoint := "/flights/" + url.PathEscape(flightID) + "/track"

	var resp dtos.TrackResponse
	if err := p.doGET(ctx, endpoint, "track", &resp); err != nil {
		return nil, err
	}

	track := make([]models.Position, 0, len(resp.Track))
	for _, d := range resp.Track {
		track = append(track, ingestTrackPoint(d))
	}
	return track, nil
}

// ============================================================================
// Ingestion: one function per upstream call, mapping the provider's loose
// field variants into the fixed internal shapes. Provider field names stop
// here.
// ============================================================================

func ingestSummaryEntry(d dtos.SummaryEntryDTO) models.FlightSummaryEntry {
	entry := models.FlightSummaryEntry{
		FlightID:     firstNonEmpty(d.ID, d.FlightID),
		Number:       firstNonEmpty(d.Number, d.FlightNumber),
		Callsign:     d.Callsign,
		OriginCode:   firstNonEmpty(d.Origin, d.OriginICAO),
		DestCode:     firstNonEmpty(d.Destination, d.DestICAO),
		TakeoffTime:  parseWhen(firstNonEmpty(d.TakeoffTime, d.DepartureTime)),
		LandingTime:  parseWhen(firstNonEmpty(d.LandingTime, d.ArrivalTime)),
		AircraftType: firstNonEmpty(d.AircraftType, d.Equipment),
		Registration: d.Registration,
	}
	if d.Ended != nil {
		entry.Ended = *d.Ended
	} else {
		switch strings.ToLower(d.Status) {
		case "landed", "ended", "arrived":
			entry.Ended = true
		}
	}
	return entry
}

func ingestLiveEntry(d dtos.LiveEntryDTO) LiveFlight {
	return LiveFlight{
		FlightID:     d.ID,
		Callsign:     d.Callsign,
		OriginCode:   d.Origin,
		DestCode:     d.Destination,
		Registration: d.Registration,
		AircraftType: d.AircraftType,
		Position: models.Position{
			Lat:           d.Lat,
			Lon:           d.Lon,
			Altitude:      d.Altitude,
			GroundSpeed:   d.GroundSpeed,
			VerticalSpeed: d.VerticalSpeed,
			Track:         d.Track,
			Timestamp:     d.Timestamp,
			Source:        "live",
		},
	}
}

func ingestTrackPoint(d dtos.TrackPointDTO) models.Position {
	return models.Position{
		Lat:           d.Lat,
		Lon:           d.Lon,
		Altitude:      d.Altitude,
		GroundSpeed:   d.GroundSpeed,
		VerticalSpeed: d.VerticalSpeed,
		Track:         d.Heading,
		Timestamp:     d.Timestamp,
		Source:        "track",
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseWhen accepts the provider's two timestamp spellings: RFC3339 and
// unix seconds.
func parseWhen(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		t := time.Unix(secs, 0).UTC()
		return &t
	}
	return nil
}

// ============================================================================
// HTTP helpers
// ============================================================================

func (p *FlightDataProvider) doGET(ctx context.Context, endpoint, label string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+endpoint, nil)
	if err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeInvalidRequest,
			Message: "Failed to create request",
			Err:     err,
		}
	}
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.Client.Do(req)
	if err != nil {
		p.record(label, 0, start)
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()
	p.record(label, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return p.buildHTTPError(resp.StatusCode, endpoint, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeBadPayload,
			Message: constants.GetErrorMessage(constants.ErrCodeBadPayload),
			Err:     err,
		}
	}
	return nil
}

func (p *FlightDataProvider) record(label string, status int, start time.Time) {
	if p.metrics == nil {
		return
	}
	p.metrics.UpstreamRequestsTotal.WithLabelValues(label, strconv.Itoa(status)).Inc()
	p.metrics.UpstreamRequestDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
}

func (p *FlightDataProvider) buildHTTPError(statusCode int, endpoint, body string) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusPaymentRequired, http.StatusForbidden:
		return &ProviderError{
			Code:    constants.ErrCodeUpstreamForbidden,
			Message: fmt.Sprintf("Access denied for endpoint %s", endpoint),
			Details: body,
		}
	case http.StatusTooManyRequests:
		return &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
			Details: body,
		}
	case http.StatusBadRequest:
		return &ProviderError{
			Code:    constants.ErrCodeInvalidRequest,
			Message: fmt.Sprintf("Bad request to %s", endpoint),
			Details: body,
		}
	default:
		return &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("HTTP %d from %s", statusCode, endpoint),
			Details: body,
		}
	}
}
