// Package ident parses user-supplied flight identifiers and expands them
// into ordered lookup candidates.
//
// Callsign background: airlines use the ICAO flight number form (AAL100),
// published schedules use the IATA form (AA100). Users type either, so a
// lookup has to try both families.
package ident

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"flightlens/internal/common"
)

// CodeFamily says which airline code family an identifier's prefix belongs
// to. Two-letter prefixes are IATA, three-letter prefixes are ICAO.
type CodeFamily int

const (
	FamilyIATA CodeFamily = iota
	FamilyICAO
)

func (f CodeFamily) String() string {
	if f == FamilyICAO {
		return "icao"
	}
	return "iata"
}

// ErrInvalidFormat is returned when an input cannot be parsed as a flight
// identifier.
var ErrInvalidFormat = errors.New("invalid flight identifier format")

var identRe = regexp.MustCompile(`^([A-Z]{2,3})(\d{1,4}[A-Z]?)$`)

// FlightIdentifier is a parsed identifier: exactly one code family, plus the
// flight-number part kept verbatim.
type FlightIdentifier struct {
	Family CodeFamily
	Prefix string
	Number string
}

func (id FlightIdentifier) String() string {
	return id.Prefix + id.Number
}

// Resolver expands identifiers across code families using the static airline
// table.
type Resolver struct {
	airlines *common.AirlineTable
}

func NewResolver(airlines *common.AirlineTable) *Resolver {
	return &Resolver{airlines: airlines}
}

// Parse normalizes raw input (whitespace stripped, upper-cased) and splits
// it into prefix and number.
func (r *Resolver) Parse(raw string) (FlightIdentifier, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	m := identRe.FindStringSubmatch(normalized)
	if m == nil {
		return FlightIdentifier{}, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
	}

	id := FlightIdentifier{Prefix: m[1], Number: m[2]}
	if len(id.Prefix) == 3 {
		id.Family = FamilyICAO
	}
	return id, nil
}

// Expand returns de-duplicated lookup candidates in precedence order: the
// identifier as given first, then its counterpart-family rewrite when the
// airline table knows the prefix. Callers try candidates in this order and
// take the first that yields data.
func (r *Resolver) Expand(id FlightIdentifier) []string {
	candidates := []string{id.String()}

	var counterpart string
	switch id.Family {
	case FamilyIATA:
		if icao, ok := r.airlines.IcaoForIata(id.Prefix); ok {
			counterpart = icao + id.Number
		}
	case FamilyICAO:
		if iata, ok := r.airlines.IataForIcao(id.Prefix); ok {
			counterpart = iata + id.Number
		}
	}
	if counterpart != "" && counterpart != candidates[0] {
		candidates = append(candidates, counterpart)
	}
	return candidates
}

// Callsign derives the ICAO-prefixed form used on the live network. For an
// IATA identifier whose prefix has no known ICAO mapping there is no
// callsign to derive.
func (r *Resolver) Callsign(id FlightIdentifier) (string, bool) {
	if id.Family == FamilyICAO {
		return id.String(), true
	}
	icao, ok := r.airlines.IcaoForIata(id.Prefix)
	if !ok {
		return "", false
	}
	return icao + id.Number, true
}

// ReverseIata maps a live callsign's ICAO prefix back to an IATA code.
// Multiple IATA codes can share an ICAO prefix; the airline table's first
// entry wins.
func (r *Resolver) ReverseIata(icaoPrefix string) (string, bool) {
	return r.airlines.IataForIcao(icaoPrefix)
}
