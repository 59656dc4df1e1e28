package seatmap

import "testing"

func TestParseSeatCode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantID  string
		wantRow int
		wantCol string
		wantErr bool
	}{
		{name: "row first", raw: "1A", wantID: "1A", wantRow: 1, wantCol: "A"},
		{name: "column first", raw: "A1", wantID: "1A", wantRow: 1, wantCol: "A"},
		{name: "lowercase normalized", raw: "c12", wantID: "12C", wantRow: 12, wantCol: "C"},
		{name: "surrounding whitespace", raw: "  33K ", wantID: "33K", wantRow: 33, wantCol: "K"},
		{name: "empty", raw: "", wantErr: true},
		{name: "row zero", raw: "0A", wantErr: true},
		{name: "no column", raw: "12", wantErr: true},
		{name: "no row", raw: "AB", wantErr: true},
		{name: "garbage", raw: "1A1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := ParseSeatCode(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSeatCode(%q) expected error, got %+v", tt.raw, code)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSeatCode(%q) unexpected error: %v", tt.raw, err)
			}
			if code.Row != tt.wantRow || code.Column != tt.wantCol {
				t.Errorf("ParseSeatCode(%q) = %+v, want row %d col %s", tt.raw, code, tt.wantRow, tt.wantCol)
			}
			if code.ID() != tt.wantID {
				t.Errorf("ID() = %q, want %q", code.ID(), tt.wantID)
			}
		})
	}
}

func TestParseSeatCodeRoundTrip(t *testing.T) {
	for _, id := range []string{"1A", "5C", "6B", "12H", "33K"} {
		code, err := ParseSeatCode(id)
		if err != nil {
			t.Fatalf("ParseSeatCode(%q): %v", id, err)
		}
		if code.ID() != id {
			t.Errorf("round trip %q -> %q", id, code.ID())
		}
	}
}

func TestResolveZone(t *testing.T) {
	layout := DefaultLayout()

	tests := []struct {
		seat string
		want Zone
	}{
		{"1A", ZoneFrontPremium},
		{"1K", ZoneFrontPremium},
		{"2A", ZonePremium},
		{"5C", ZonePremium},
		{"6A", ZoneHappy},
		{"33K", ZoneHappy},
	}

	for _, tt := range tests {
		t.Run(tt.seat, func(t *testing.T) {
			got := layout.ZoneOf(MustSeat(tt.seat))
			if got != tt.want {
				t.Errorf("ZoneOf(%s) = %s, want %s", tt.seat, got, tt.want)
			}
		})
	}
}

func TestResolveZoneSeatOverrideWins(t *testing.T) {
	rules := []ZoneRule{
		{Zone: ZoneFrontPremium, Seats: []string{"b6", "6C"}},
		{Zone: ZonePremium, FromRow: 2, ToRow: 5},
		{Zone: ZoneHappy, FromRow: 6, ToRow: 33},
	}

	// Override list matches regardless of the raw order of its entries.
	if got := ResolveZone(rules, MustSeat("6B")); got != ZoneFrontPremium {
		t.Errorf("override seat 6B resolved to %s, want %s", got, ZoneFrontPremium)
	}
	if got := ResolveZone(rules, MustSeat("6C")); got != ZoneFrontPremium {
		t.Errorf("override seat 6C resolved to %s, want %s", got, ZoneFrontPremium)
	}
	// Sibling seat in the same row still follows the range rule.
	if got := ResolveZone(rules, MustSeat("6A")); got != ZoneHappy {
		t.Errorf("6A resolved to %s, want %s", got, ZoneHappy)
	}
}

func TestResolveZoneDefaultsToHappy(t *testing.T) {
	rules := []ZoneRule{{Zone: ZonePremium, FromRow: 2, ToRow: 5}}
	if got := ResolveZone(rules, MustSeat("40Z")); got != ZoneHappy {
		t.Errorf("unmatched seat resolved to %s, want %s", got, ZoneHappy)
	}
	if got := ResolveZone(nil, MustSeat("1A")); got != ZoneHappy {
		t.Errorf("empty rule set resolved to %s, want %s", got, ZoneHappy)
	}
}

func TestResolveZoneDeterministic(t *testing.T) {
	layout := DefaultLayout()
	seat := MustSeat("3H")
	first := layout.ZoneOf(seat)
	for i := 0; i < 100; i++ {
		if got := layout.ZoneOf(seat); got != first {
			t.Fatalf("ZoneOf changed between calls: %s then %s", first, got)
		}
	}
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Layout)
		wantErr bool
	}{
		{name: "default layout is valid", mutate: func(*Layout) {}},
		{name: "zero rows", mutate: func(l *Layout) { l.Rows = 0 }, wantErr: true},
		{name: "no zone rules", mutate: func(l *Layout) { l.Zones = nil }, wantErr: true},
		{name: "inverted row range", mutate: func(l *Layout) {
			l.Zones = []ZoneRule{{Zone: ZonePremium, FromRow: 5, ToRow: 2}}
		}, wantErr: true},
		{name: "unknown zone", mutate: func(l *Layout) {
			l.Zones = []ZoneRule{{Zone: Zone("business"), FromRow: 1, ToRow: 33}}
		}, wantErr: true},
		{name: "column in both blocks", mutate: func(l *Layout) {
			l.RightBlock = []string{"A", "J", "K"}
		}, wantErr: true},
		{name: "malformed override seat", mutate: func(l *Layout) {
			l.Zones = append(l.Zones, ZoneRule{Zone: ZoneHappy, Seats: []string{"??"}})
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := DefaultLayout()
			tt.mutate(&layout)
			err := layout.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestRowNeighbours(t *testing.T) {
	layout := DefaultLayout()

	got := layout.RowNeighbours(MustSeat("6B"))
	want := []string{"6A", "6C"}
	if len(got) != len(want) {
		t.Fatalf("RowNeighbours(6B) = %v, want %v", got, want)
	}
	for i, code := range got {
		if code.ID() != want[i] {
			t.Errorf("RowNeighbours(6B)[%d] = %s, want %s", i, code.ID(), want[i])
		}
	}

	// Neighbours never cross the aisle.
	for _, code := range layout.RowNeighbours(MustSeat("10H")) {
		if layout.BlockOf(code.Column)[0] != "H" {
			t.Errorf("neighbour %s of 10H is outside the right block", code.ID())
		}
	}

	if got := layout.RowNeighbours(SeatCode{Row: 3, Column: "Z"}); got != nil {
		t.Errorf("unknown column should have no neighbours, got %v", got)
	}
}

func TestLayoutWithRows(t *testing.T) {
	layout := LayoutWithRows(40)
	if layout.Rows != 40 {
		t.Fatalf("Rows = %d, want 40", layout.Rows)
	}
	if err := layout.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !layout.Contains(MustSeat("40K")) {
		t.Error("40K should exist in a 40-row cabin")
	}
	// Rows past the last zone rule resolve to the happy fallback.
	if zone := layout.ZoneOf(MustSeat("34A")); zone != ZoneHappy {
		t.Errorf("ZoneOf(34A) = %s, want %s", zone, ZoneHappy)
	}

	if shrunk := LayoutWithRows(20); shrunk.Contains(MustSeat("21A")) {
		t.Error("21A should not exist in a 20-row cabin")
	}
	if fallback := LayoutWithRows(0); fallback.Rows != DefaultLayout().Rows {
		t.Errorf("Rows = %d, want default %d", fallback.Rows, DefaultLayout().Rows)
	}
}
