package services

import (
	"fmt"
	"math"

	"flightlens/internal/common"
	"flightlens/internal/models"
)

const earthRadiusKm = 6371.0

// RouteProgress is the route-completion figure for a position along a route.
type RouteProgress struct {
	Pct         int     `json:"pct"`
	TotalKm     float64 `json:"totalKm"`
	CoveredKm   float64 `json:"coveredKm"`
	RemainingKm float64 `json:"remainingKm"`
}

// ProgressService computes great-circle route completion from the static
// airport table.
type ProgressService struct {
	airports *common.AirportTable
}

func NewProgressService(airports *common.AirportTable) *ProgressService {
	return &ProgressService{airports: airports}
}

// Progress computes completion of the origin->dest route at pos.
//
// CoveredKm is the straight great-circle distance from the origin to the
// position, not the along-track distance: a position abeam the route counts
// its full distance from the origin. That is intentional and callers depend
// on the exact numbers, so don't "fix" it.
func (s *ProgressService) Progress(originCode, destCode string, pos models.Position) (*RouteProgress, error) {
	origin, ok := s.airports.Lookup(originCode)
	if !ok {
		return nil, fmt.Errorf("unknown airport %q: %w", originCode, models.ErrNotFound)
	}
	dest, ok := s.airports.Lookup(destCode)
	if !ok {
		return nil, fmt.Errorf("unknown airport %q: %w", destCode, models.ErrNotFound)
	}

	totalKm := haversineKm(origin.Lat, origin.Lon, dest.Lat, dest.Lon)
	if totalKm < 1 {
		// Identical or adjacent endpoints; avoid dividing by zero.
		totalKm = 1
	}
	coveredKm := haversineKm(origin.Lat, origin.Lon, pos.Lat, pos.Lon)

	pct := int(math.Round(coveredKm / totalKm * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	return &RouteProgress{
		Pct:         pct,
		TotalKm:     totalKm,
		CoveredKm:   coveredKm,
		RemainingKm: math.Max(0, totalKm-coveredKm),
	}, nil
}

// haversineKm is the great-circle distance between two points.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
