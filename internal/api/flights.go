package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"flightlens/internal/ident"
	"flightlens/internal/models"
	"flightlens/internal/ratelimit"
)

// FlightLookupHandler handles GET /flight?number=<id> (or callsign=<id>).
//
// Request flow: rate-limit gate, then cache (positive and negative), then a
// single-flight-guarded call into the lookup service. Concurrent requests
// for the same flight share one upstream resolution.
func FlightLookupHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("number")
		if raw == "" {
			raw = r.URL.Query().Get("callsign")
		}
		if raw == "" {
			respondError(w, http.StatusBadRequest, "missing number or callsign parameter")
			return
		}

		// The cache and per-target rate-limit key is the normalized input,
		// so AA100 and "aa 100" coalesce.
		target := strings.ToUpper(strings.Join(strings.Fields(raw), ""))

		clientID := ratelimit.ClientID(r)
		if le := deps.Limiter.Check(clientID, target); le != nil {
			deps.Metrics.RateLimitRejectionsTotal.WithLabelValues(le.Scope).Inc()
			respondRateLimited(w, le.RetryAfter)
			return
		}

		if deps.Cache.IsNegative(target) {
			deps.Metrics.NegativeHitsTotal.Inc()
			respondError(w, http.StatusNotFound, "flight not found")
			return
		}
		if cached, age, ok := deps.Cache.Get(target); ok {
			deps.Metrics.CacheHitsTotal.WithLabelValues("flight").Inc()
			w.Header().Set("X-Cache-Age", age.Truncate(time.Millisecond).String())
			writeJSON(w, http.StatusOK, cached.(*models.FlightRecord))
			return
		}
		deps.Metrics.CacheMissesTotal.WithLabelValues("flight").Inc()

		result, err := deps.Cache.Do(target, func() (interface{}, error) {
			ctx, cancel := context.WithTimeout(r.Context(), deps.Config.UpstreamTimeout)
			defer cancel()

			record, err := deps.Lookup.Resolve(ctx, target)
			if err != nil {
				return nil, err
			}
			deps.Cache.Set(target, record, deps.Config.CacheTTL)
			return record, nil
		})
		if err != nil {
			switch {
			case errors.Is(err, ident.ErrInvalidFormat):
				respondError(w, http.StatusBadRequest, "invalid flight identifier")
			case errors.Is(err, models.ErrNotFound):
				deps.Cache.SetNegative(target, deps.Config.NegativeCacheTTL)
				respondError(w, http.StatusNotFound, "flight not found")
			case errors.Is(err, models.ErrUpstreamForbidden):
				respondError(w, http.StatusForbidden, "upstream access denied")
			default:
				respondUpstreamError(w, "upstream lookup failed", err.Error())
			}
			return
		}

		writeJSON(w, http.StatusOK, result.(*models.FlightRecord))
	}
}
