package api

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Airports int    `json:"airports"`
}

// HealthCheckHandler handles GET /healthCheck.
func HealthCheckHandler(deps *Dependencies, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		if deps.Airports.Size() == 0 {
			status = "down"
		}

		writeJSON(w, http.StatusOK, healthResponse{
			Status:   status,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
			Airports: deps.Airports.Size(),
		})
	}
}
