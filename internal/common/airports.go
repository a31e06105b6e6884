package common

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Airport is one entry of the static airport table. Either code may be
// absent; plenty of small fields in the source dataset only carry an ICAO.
type Airport struct {
	ICAO string
	IATA string
	Name string
	Lat  float64
	Lon  float64
}

// rawAirport matches the mwgg/Airports JSON dataset that the build step
// produces the table from.
type rawAirport struct {
	ICAO    string  `json:"icao"`
	IATA    string  `json:"iata"`
	Name    string  `json:"name"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

//go:embed data/airports.json
var embeddedAirports []byte

// AirportTable is the static code -> airport mapping, indexed by both code
// families. Loaded once at startup, read-only afterwards.
type AirportTable struct {
	byICAO map[string]*Airport
	byIATA map[string]*Airport
}

// NewAirportTable builds the table from a JSON dataset at path, or from the
// embedded dataset when path is empty.
func NewAirportTable(path string) (*AirportTable, error) {
	data := embeddedAirports
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read airport data: %w", err)
		}
		data = b
	}

	var raw map[string]rawAirport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode airport data: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("airport dataset is empty")
	}

	t := &AirportTable{
		byICAO: make(map[string]*Airport, len(raw)),
		byIATA: make(map[string]*Airport, len(raw)),
	}
	for _, r := range raw {
		ap := &Airport{
			ICAO: strings.ToUpper(strings.TrimSpace(r.ICAO)),
			IATA: strings.ToUpper(strings.TrimSpace(r.IATA)),
			Name: strings.TrimSpace(r.Name),
			Lat:  r.Lat,
			Lon:  r.Lon,
		}
		if ap.ICAO == "" && ap.IATA == "" {
			continue
		}
		if ap.ICAO != "" {
			t.byICAO[ap.ICAO] = ap
		}
		if ap.IATA != "" {
			t.byIATA[ap.IATA] = ap
		}
	}
	return t, nil
}

// Lookup resolves a code case-insensitively, trying the ICAO index first and
// the IATA index second.
func (t *AirportTable) Lookup(code string) (*Airport, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if ap, ok := t.byICAO[code]; ok {
		return ap, true
	}
	if ap, ok := t.byIATA[code]; ok {
		return ap, true
	}
	return nil, false
}

// Size returns the number of distinct ICAO-keyed entries.
func (t *AirportTable) Size() int {
	return len(t.byICAO)
}
