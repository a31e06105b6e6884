package models

import "time"

// Position is a single point of a flight, either one frame of a historical
// track or a live snapshot.
type Position struct {
	Lat           float64  `json:"lat"`
	Lon           float64  `json:"lon"`
	Altitude      *float64 `json:"altitude,omitempty"`
	GroundSpeed   *float64 `json:"groundSpeed,omitempty"`
	VerticalSpeed *float64 `json:"verticalSpeed,omitempty"`
	Track         *float64 `json:"track,omitempty"`
	Timestamp     string   `json:"timestamp,omitempty"`
	Source        string   `json:"source,omitempty"`
}

// FlightSummaryEntry is one historical/scheduled occurrence of a flight as
// reported by the upstream provider, already mapped into our field names.
type FlightSummaryEntry struct {
	FlightID     string     `json:"flightId,omitempty"`
	Number       string     `json:"number,omitempty"`
	Callsign     string     `json:"callsign,omitempty"`
	OriginCode   string     `json:"originCode,omitempty"`
	DestCode     string     `json:"destCode,omitempty"`
	TakeoffTime  *time.Time `json:"takeoffTime,omitempty"`
	LandingTime  *time.Time `json:"landingTime,omitempty"`
	AircraftType string     `json:"aircraftType,omitempty"`
	Registration string     `json:"registration,omitempty"`
	Ended        bool       `json:"ended"`
}

// FlightRecord is the resolved flight returned to callers. A lookup always
// builds a fresh instance; records are never mutated after being returned.
type FlightRecord struct {
	Summary         FlightSummaryEntry `json:"summary"`
	LastPosition    *Position          `json:"lastPosition,omitempty"`
	Track           []Position         `json:"track,omitempty"`
	AirlineName     string             `json:"airlineName,omitempty"`
	OriginName      string             `json:"originName,omitempty"`
	DestinationName string             `json:"destinationName,omitempty"`
}
