package common

import "testing"

func TestAirportTableLookup(t *testing.T) {
	table, err := NewAirportTable("")
	if err != nil {
		t.Fatalf("failed to load embedded dataset: %v", err)
	}

	jfk, ok := table.Lookup("KJFK")
	if !ok {
		t.Fatal("expected KJFK in the embedded dataset")
	}
	if jfk.IATA != "JFK" || jfk.Lat == 0 || jfk.Lon == 0 {
		t.Errorf("unexpected KJFK entry: %+v", jfk)
	}

	// Same airport via the IATA index, case-insensitively.
	byIata, ok := table.Lookup("jfk")
	if !ok || byIata != jfk {
		t.Error("expected the IATA index to resolve to the same entry")
	}

	if _, ok := table.Lookup("ZZZZ"); ok {
		t.Error("expected ZZZZ to be absent")
	}
}

func TestAirlineTableRoundTrip(t *testing.T) {
	table := NewAirlineTable()

	icao, ok := table.IcaoForIata("AA")
	if !ok || icao != "AAL" {
		t.Errorf("expected AAL, got %q (ok=%v)", icao, ok)
	}
	iata, ok := table.IataForIcao("AAL")
	if !ok || iata != "AA" {
		t.Errorf("expected AA, got %q (ok=%v)", iata, ok)
	}

	name, ok := table.NameForPrefix("DAL")
	if !ok || name != "Delta Air Lines" {
		t.Errorf("expected Delta Air Lines, got %q (ok=%v)", name, ok)
	}
}
