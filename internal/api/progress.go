package api

import (
	"errors"
	"net/http"
	"strconv"

	"flightlens/internal/models"
	"flightlens/internal/services"
)

// progressResponse is the body of GET /flight-progress.
type progressResponse struct {
	Origin          string                  `json:"origin"`
	Destination     string                  `json:"destination"`
	CurrentPosition models.Position         `json:"currentPosition"`
	Progress        *services.RouteProgress `json:"progress"`
}

// FlightProgressHandler handles GET /flight-progress?origin&dest&lat&lon.
func FlightProgressHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		origin := q.Get("origin")
		dest := q.Get("dest")
		if origin == "" || dest == "" {
			respondError(w, http.StatusBadRequest, "missing origin or dest parameter")
			return
		}

		lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
		lon, lonErr := strconv.ParseFloat(q.Get("lon"), 64)
		if latErr != nil || lonErr != nil {
			respondError(w, http.StatusBadRequest, "lat and lon must be numbers")
			return
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			respondError(w, http.StatusBadRequest, "lat or lon out of range")
			return
		}

		pos := models.Position{Lat: lat, Lon: lon}
		progress, err := deps.Progress.Progress(origin, dest, pos)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				respondError(w, http.StatusNotFound, "unknown airport code")
				return
			}
			respondError(w, http.StatusInternalServerError, "progress computation failed")
			return
		}

		writeJSON(w, http.StatusOK, progressResponse{
			Origin:          origin,
			Destination:     dest,
			CurrentPosition: pos,
			Progress:        progress,
		})
	}
}
