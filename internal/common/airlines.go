package common

import "strings"

// AirlineCode is one airline prefix pair. The table is loaded once at startup
// and only ever read after that.
type AirlineCode struct {
	IATA string
	ICAO string
	Name string
}

// Declaration order matters: reverse ICAO->IATA lookups scan this slice and
// take the first match, so when two IATA codes share an ICAO prefix the one
// listed first wins.
var airlineCodes = []AirlineCode{
	{"AA", "AAL", "American Airlines"},
	{"DL", "DAL", "Delta Air Lines"},
	{"UA", "UAL", "United Airlines"},
	{"WN", "SWA", "Southwest Airlines"},
	{"B6", "JBU", "JetBlue Airways"},
	{"AS", "ASA", "Alaska Airlines"},
	{"NK", "NKS", "Spirit Airlines"},
	{"F9", "FFT", "Frontier Airlines"},
	{"G4", "AAY", "Allegiant Air"},
	{"HA", "HAL", "Hawaiian Airlines"},
	{"AC", "ACA", "Air Canada"},
	{"WS", "WJA", "WestJet"},
	{"BA", "BAW", "British Airways"},
	{"VS", "VIR", "Virgin Atlantic"},
	{"AF", "AFR", "Air France"},
	{"KL", "KLM", "KLM Royal Dutch Airlines"},
	{"LH", "DLH", "Lufthansa"},
	{"LX", "SWR", "Swiss International Air Lines"},
	{"OS", "AUA", "Austrian Airlines"},
	{"SN", "BEL", "Brussels Airlines"},
	{"IB", "IBE", "Iberia"},
	{"TP", "TAP", "TAP Air Portugal"},
	{"EI", "EIN", "Aer Lingus"},
	{"AY", "FIN", "Finnair"},
	{"SK", "SAS", "Scandinavian Airlines"},
	{"TK", "THY", "Turkish Airlines"},
	{"FR", "RYR", "Ryanair"},
	{"U2", "EZY", "easyJet"},
	{"EK", "UAE", "Emirates"},
	{"EY", "ETD", "Etihad Airways"},
	{"QR", "QTR", "Qatar Airways"},
	{"SQ", "SIA", "Singapore Airlines"},
	{"CX", "CPA", "Cathay Pacific"},
	{"JL", "JAL", "Japan Airlines"},
	{"NH", "ANA", "All Nippon Airways"},
	{"KE", "KAL", "Korean Air"},
	{"OZ", "AAR", "Asiana Airlines"},
	{"QF", "QFA", "Qantas"},
	{"NZ", "ANZ", "Air New Zealand"},
	{"LA", "LAN", "LATAM Airlines"},
	{"AM", "AMX", "Aeromexico"},
	{"AV", "AVA", "Avianca"},
	{"ET", "ETH", "Ethiopian Airlines"},
	{"SA", "SAA", "South African Airways"},
	{"AI", "AIC", "Air India"},
}

// AirlineTable indexes the static airline prefix pairs both ways.
type AirlineTable struct {
	codes  []AirlineCode
	byIATA map[string]AirlineCode
	byICAO map[string]AirlineCode
}

func NewAirlineTable() *AirlineTable {
	t := &AirlineTable{
		codes:  airlineCodes,
		byIATA: make(map[string]AirlineCode, len(airlineCodes)),
		byICAO: make(map[string]AirlineCode, len(airlineCodes)),
	}
	for _, c := range airlineCodes {
		if _, dup := t.byIATA[c.IATA]; !dup {
			t.byIATA[c.IATA] = c
		}
		if _, dup := t.byICAO[c.ICAO]; !dup {
			t.byICAO[c.ICAO] = c
		}
	}
	return t
}

// IcaoForIata maps a 2-letter airline prefix to its 3-letter counterpart.
func (t *AirlineTable) IcaoForIata(iata string) (string, bool) {
	c, ok := t.byIATA[strings.ToUpper(iata)]
	if !ok {
		return "", false
	}
	return c.ICAO, true
}

// IataForIcao maps a 3-letter prefix back to its 2-letter counterpart. This
// is a scan in declaration order; the first matching entry wins.
func (t *AirlineTable) IataForIcao(icao string) (string, bool) {
	icao = strings.ToUpper(icao)
	for _, c := range t.codes {
		if c.ICAO == icao {
			return c.IATA, true
		}
	}
	return "", false
}

// NameForPrefix returns the airline display name for either code family.
func (t *AirlineTable) NameForPrefix(prefix string) (string, bool) {
	prefix = strings.ToUpper(prefix)
	if c, ok := t.byIATA[prefix]; ok {
		return c.Name, true
	}
	if c, ok := t.byICAO[prefix]; ok {
		return c.Name, true
	}
	return "", false
}
