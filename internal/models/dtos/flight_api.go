package dtos

// Wire shapes for the upstream flight data provider. The provider is loose
// with field names across endpoints (several optional variants exist for the
// same concept), so every variant is declared here and resolved by the
// ingestion functions in internal/providers. These names must not leak past
// that package.

// SummarySearchResponse is the body of GET /flights/search.
type SummarySearchResponse struct {
	Result []SummaryEntryDTO `json:"result"`
}

// SummaryEntryDTO is one historical/scheduled flight occurrence.
type SummaryEntryDTO struct {
	ID           string `json:"id,omitempty"`
	FlightID     string `json:"flight_id,omitempty"` // variant of id
	Number       string `json:"number,omitempty"`
	FlightNumber string `json:"flight_number,omitempty"` // variant of number
	Callsign     string `json:"callsign,omitempty"`

	Origin      string `json:"origin,omitempty"`
	OriginICAO  string `json:"origin_icao,omitempty"` // variant of origin
	Destination string `json:"destination,omitempty"`
	DestICAO    string `json:"destination_icao,omitempty"` // variant of destination

	TakeoffTime   string `json:"takeoff_time,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"` // variant of takeoff_time
	LandingTime   string `json:"landing_time,omitempty"`
	ArrivalTime   string `json:"arrival_time,omitempty"` // variant of landing_time

	AircraftType string `json:"aircraft_type,omitempty"`
	Equipment    string `json:"equipment,omitempty"` // variant of aircraft_type
	Registration string `json:"registration,omitempty"`

	Ended  *bool  `json:"ended,omitempty"`
	Status string `json:"status,omitempty"` // "scheduled" | "live" | "landed"
}

// LiveSearchResponse is the body of GET /flights/live.
type LiveSearchResponse struct {
	Result []LiveEntryDTO `json:"result"`
}

// LiveEntryDTO is one airborne flight matched by callsign.
type LiveEntryDTO struct {
	ID            string   `json:"id"`
	Callsign      string   `json:"callsign"`
	Lat           float64  `json:"lat"`
	Lon           float64  `json:"lon"`
	Altitude      *float64 `json:"altitude,omitempty"`
	GroundSpeed   *float64 `json:"ground_speed,omitempty"`
	VerticalSpeed *float64 `json:"vertical_speed,omitempty"`
	Track         *float64 `json:"track,omitempty"`
	Timestamp     string   `json:"timestamp,omitempty"`
	Origin        string   `json:"origin,omitempty"`
	Destination   string   `json:"destination,omitempty"`
	Registration  string   `json:"registration,omitempty"`
	AircraftType  string   `json:"aircraft_type,omitempty"`
}

// TrackResponse is the body of GET /flights/{id}/track.
type TrackResponse struct {
	Track []TrackPointDTO `json:"track"`
}

// TrackPointDTO is one frame of a position track.
type TrackPointDTO struct {
	Lat           float64  `json:"lat"`
	Lon           float64  `json:"lon"`
	Altitude      *float64 `json:"altitude,omitempty"`
	GroundSpeed   *float64 `json:"ground_speed,omitempty"`
	VerticalSpeed *float64 `json:"vertical_speed,omitempty"`
	Heading       *float64 `json:"heading,omitempty"`
	Timestamp     string   `json:"timestamp,omitempty"`
}
