package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"flightlens/internal/api"
	"flightlens/internal/logging"
	"flightlens/internal/middleware"
)

// RegisterRoutes builds the chi router with global middleware and the
// flight-lookup endpoints.
func RegisterRoutes(deps *api.Dependencies, upSince time.Time) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Cache-Age"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthCheck", api.HealthCheckHandler(deps, upSince))
	r.Get("/flight", api.FlightLookupHandler(deps))
	r.Get("/flight-progress", api.FlightProgressHandler(deps))

	logging.Info("router initialized",
		"airports", deps.Airports.Size(),
	)
	return r
}
