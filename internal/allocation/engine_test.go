package allocation

import (
	"context"
	"errors"
	"testing"

	"seatly/internal/pricing"
	"seatly/internal/seatmap"
)

type capturingPublisher struct {
	events []RefundEvent
}

func (p *capturingPublisher) PublishRefund(_ context.Context, ev RefundEvent) error {
	p.events = append(p.events, ev)
	return nil
}

func newTestEngine(t *testing.T, passengers ...Passenger) (*Engine, *capturingPublisher) {
	t.Helper()
	pub := &capturingPublisher{}
	engine, err := NewEngine(seatmap.DefaultLayout(), pricing.DefaultTable(), NewMemoryStateRepository(), pub)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if len(passengers) == 0 {
		passengers = []Passenger{
			{ID: "1", Name: "Passenger A"},
			{ID: "2", Name: "Passenger B"},
		}
	}
	if err := engine.OpenLeg(context.Background(), "BK123:0", passengers); err != nil {
		t.Fatalf("OpenLeg: %v", err)
	}
	return engine, pub
}

const testLeg = "BK123:0"

func TestNewEngineRejectsBadLayout(t *testing.T) {
	layout := seatmap.DefaultLayout()
	layout.Zones = []seatmap.ZoneRule{{Zone: seatmap.ZonePremium, FromRow: 9, ToRow: 2}}

	_, err := NewEngine(layout, pricing.DefaultTable(), NewMemoryStateRepository(), nil)
	if !errors.Is(err, seatmap.ErrInvalidZoneConfig) {
		t.Fatalf("expected ErrInvalidZoneConfig, got %v", err)
	}
}

func TestBookPrivacyHeldSeatFiresRefund(t *testing.T) {
	// Scenario: happy zone, A on 6A holds 6B as privacy, B buys 6B.
	engine, pub := newTestEngine(t)
	ctx := context.Background()

	if _, _, err := engine.Book(ctx, testLeg, "1", "6A"); err != nil {
		t.Fatalf("Book 6A: %v", err)
	}
	if _, err := engine.TogglePrivacy(ctx, testLeg, "1", "6B"); err != nil {
		t.Fatalf("TogglePrivacy 6B: %v", err)
	}

	// B sees the marked-up price while the hold stands.
	quote, err := engine.QuoteSeat(testLeg, "2", "6B")
	if err != nil {
		t.Fatalf("QuoteSeat: %v", err)
	}
	if !quote.MarkedUp || quote.PriceTHB != 200 {
		t.Errorf("quote for held seat = %+v, want marked up at 200", quote)
	}

	snap, events, err := engine.Book(ctx, testLeg, "2", "6B")
	if err != nil {
		t.Fatalf("Book 6B: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("expected one refund event, got %d", len(events))
	}
	ev := events[0]
	if ev.OwnerID != "1" || ev.SeatID != "6B" || ev.Zone != seatmap.ZoneHappy {
		t.Errorf("refund event = %+v", ev)
	}
	if ev.RefundTHB != 150 { // fee 100 + round(50*1.0)
		t.Errorf("refund = %d THB, want 150", ev.RefundTHB)
	}
	if len(pub.events) != 1 || pub.events[0].EventID != ev.EventID {
		t.Errorf("event not published: %+v", pub.events)
	}

	if snap.Assignments["2"] != "6B" {
		t.Errorf("buyer not assigned: %v", snap.Assignments)
	}
	if len(snap.Privacy) != 0 {
		t.Errorf("owner's privacy set should be empty, got %v", snap.Privacy)
	}

	// The seat is an ordinary seat for the buyer now: base price, no markup.
	quote, err = engine.QuoteSeat(testLeg, "2", "6B")
	if err != nil {
		t.Fatalf("QuoteSeat after sale: %v", err)
	}
	if quote.MarkedUp || quote.PriceTHB != 150 || !quote.OwnSeat {
		t.Errorf("quote after sale = %+v, want own seat at base 150", quote)
	}
}

func TestBookFrontPremiumRefundShare(t *testing.T) {
	// Scenario: front premium refunds the fee plus half the markup.
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if _, _, err := engine.Book(ctx, testLeg, "1", "1A"); err != nil {
		t.Fatalf("Book 1A: %v", err)
	}
	if _, err := engine.TogglePrivacy(ctx, testLeg, "1", "1B"); err != nil {
		t.Fatalf("TogglePrivacy 1B: %v", err)
	}

	_, events, err := engine.Book(ctx, testLeg, "2", "1B")
	if err != nil {
		t.Fatalf("Book 1B: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one refund event, got %d", len(events))
	}
	if events[0].RefundTHB != 250 { // fee 200 + round(100*0.5)
		t.Errorf("refund = %d THB, want 250", events[0].RefundTHB)
	}
	if events[0].Zone != seatmap.ZoneFrontPremium {
		t.Errorf("zone = %s, want frontPremium", events[0].Zone)
	}
}

func TestBookSoldSeatReleasesWholePrivacySet(t *testing.T) {
	// The owner loses every privacy seat, but only the sold one refunds.
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if _, _, err := engine.Book(ctx, testLeg, "1", "6B"); err != nil {
		t.Fatal(err)
	}
	for _, seat := range []string{"6A", "6C"} {
		if _, err := engine.TogglePrivacy(ctx, testLeg, "1", seat); err != nil {
			t.Fatalf("TogglePrivacy %s: %v", seat, err)
		}
	}

	snap, events, err := engine.Book(ctx, testLeg, "2", "6A")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].SeatID != "6A" {
		t.Fatalf("expected single refund for 6A, got %+v", events)
	}
	if len(snap.Privacy) != 0 {
		t.Errorf("privacy set should be fully released, got %v", snap.Privacy)
	}
}

func TestBookMoveClearsOwnPrivacyWithoutRefund(t *testing.T) {
	// Scenario: P on 2A with privacy 2B and 2C moves to 10A.
	engine, pub := newTestEngine(t)
	ctx := context.Background()

	if _, _, err := engine.Book(ctx, testLeg, "1", "2A"); err != nil {
		t.Fatal(err)
	}
	for _, seat := range []string{"2B", "2C"} {
		if _, err := engine.TogglePrivacy(ctx, testLeg, "1", seat); err != nil {
			t.Fatalf("TogglePrivacy %s: %v", seat, err)
		}
	}

	snap, events, err := engine.Book(ctx, testLeg, "1", "10A")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 || len(pub.events) != 0 {
		t.Errorf("moving seats must not refund, got %+v", events)
	}
	if snap.Assignments["1"] != "10A" {
		t.Errorf("assignment = %v, want 10A", snap.Assignments["1"])
	}
	if len(snap.Privacy) != 0 {
		t.Errorf("privacy must be cleared on move, got %v", snap.Privacy)
	}
	if got := snap.Assignments["2"]; got != "" {
		t.Errorf("passenger 2 affected by the move: %q", got)
	}
	// 2A is free again.
	if _, _, err := engine.Book(ctx, testLeg, "2", "2A"); err != nil {
		t.Errorf("2A should be bookable after the move: %v", err)
	}
}

func TestBookEvictsSittingPassengerWithoutRefund(t *testing.T) {
	engine, pub := newTestEngine(t)
	ctx := context.Background()

	if _, _, err := engine.Book(ctx, testLeg, "1", "12H"); err != nil {
		t.Fatal(err)
	}
	snap, events, err := engine.Book(ctx, testLeg, "2", "12H")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 || len(pub.events) != 0 {
		t.Errorf("plain reassignment must not refund, got %+v", events)
	}
	if snap.Assignments["2"] != "12H" || snap.Assignments["1"] != "" {
		t.Errorf("eviction failed: %v", snap.Assignments)
	}
}

func TestBookEvictionClearsSitterPrivacy(t *testing.T) {
	engine, pub := newTestEngine(t)
	ctx := context.Background()

	if _, _, err := engine.Book(ctx, testLeg, "1", "6A"); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.TogglePrivacy(ctx, testLeg, "1", "6B"); err != nil {
		t.Fatal(err)
	}

	// Eviction is a cancel for the sitter: the privacy seat next to their
	// old assignment must not survive them losing it.
	snap, events, err := engine.Book(ctx, testLeg, "2", "6A")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 || len(pub.events) != 0 {
		t.Errorf("eviction must not refund, got %+v", events)
	}
	if owner, held := snap.Privacy["6B"]; held {
		t.Errorf("privacy 6B still owned by %q after its owner was evicted", owner)
	}

	// The evicted passenger re-booking elsewhere must start with a clean
	// privacy set, and third parties see 6B at base price again.
	snap, _, err = engine.Book(ctx, testLeg, "1", "20K")
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Privacy) != 0 {
		t.Errorf("stale privacy followed the evicted passenger: %v", snap.Privacy)
	}
	quote, err := engine.QuoteSeat(testLeg, "2", "6B")
	if err != nil {
		t.Fatal(err)
	}
	if quote.MarkedUp || quote.PriceTHB != 150 {
		t.Errorf("6B quoted %+v, want base 150 with no markup", quote)
	}
}

func TestBookOwnSeatIsNoOp(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if _, _, err := engine.Book(ctx, testLeg, "1", "6A"); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.TogglePrivacy(ctx, testLeg, "1", "6B"); err != nil {
		t.Fatal(err)
	}

	snap, events, err := engine.Book(ctx, testLeg, "1", "6A")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("no-op book emitted events: %+v", events)
	}
	// Re-booking your own seat keeps your privacy set.
	if snap.Privacy["6B"] != "1" {
		t.Errorf("privacy lost on no-op book: %v", snap.Privacy)
	}
}

func TestTogglePrivacyTakenByOther(t *testing.T) {
	// Scenario: toggling a seat someone else holds fails and changes nothing.
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if _, _, err := engine.Book(ctx, testLeg, "1", "6A"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := engine.Book(ctx, testLeg, "2", "6C"); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.TogglePrivacy(ctx, testLeg, "1", "6B"); err != nil {
		t.Fatal(err)
	}

	before, err := engine.Snapshot(testLeg)
	if err != nil {
		t.Fatal(err)
	}

	_, err = engine.TogglePrivacy(ctx, testLeg, "2", "6B")
	if !errors.Is(err, ErrPrivacySeatTaken) {
		t.Fatalf("expected ErrPrivacySeatTaken, got %v", err)
	}

	after, err := engine.Snapshot(testLeg)
	if err != nil {
		t.Fatal(err)
	}
	if len(after.Privacy) != len(before.Privacy) || after.Privacy["6B"] != "1" {
		t.Errorf("privacy map changed on rejected toggle: %v", after.Privacy)
	}
}

func TestTogglePrivacyEligibility(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if _, _, err := engine.Book(ctx, testLeg, "1", "6A"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := engine.Book(ctx, testLeg, "2", "6C"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		pax  string
		seat string
	}{
		{name: "different row", pax: "1", seat: "7A"},
		{name: "across the aisle", pax: "1", seat: "6H"},
		{name: "occupied seat", pax: "1", seat: "6C"},
		{name: "own seat", pax: "1", seat: "6A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.TogglePrivacy(ctx, testLeg, tt.pax, tt.seat)
			if !errors.Is(err, ErrInvalidReference) {
				t.Errorf("TogglePrivacy(%s, %s) = %v, want ErrInvalidReference", tt.pax, tt.seat, err)
			}
		})
	}

	// A passenger without a seat has no eligible privacy seats.
	engine2, _ := newTestEngine(t)
	if _, err := engine2.TogglePrivacy(ctx, testLeg, "1", "6B"); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("toggle without a seat = %v, want ErrInvalidReference", err)
	}
}

func TestTogglePrivacyOffAndOn(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if _, _, err := engine.Book(ctx, testLeg, "1", "6A"); err != nil {
		t.Fatal(err)
	}
	snap, err := engine.TogglePrivacy(ctx, testLeg, "1", "6B")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Privacy["6B"] != "1" {
		t.Fatalf("toggle on failed: %v", snap.Privacy)
	}
	snap, err = engine.TogglePrivacy(ctx, testLeg, "1", "6B")
	if err != nil {
		t.Fatal(err)
	}
	if _, held := snap.Privacy["6B"]; held {
		t.Fatalf("toggle off failed: %v", snap.Privacy)
	}
}

func TestCancelIdempotent(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if _, _, err := engine.Book(ctx, testLeg, "1", "6A"); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.TogglePrivacy(ctx, testLeg, "1", "6B"); err != nil {
		t.Fatal(err)
	}

	first, err := engine.Cancel(ctx, testLeg, "1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := engine.Cancel(ctx, testLeg, "1")
	if err != nil {
		t.Fatal(err)
	}

	if first.Assignments["1"] != "" || len(first.Privacy) != 0 {
		t.Errorf("cancel did not clear state: %+v", first)
	}
	if second.Assignments["1"] != first.Assignments["1"] || len(second.Privacy) != len(first.Privacy) {
		t.Errorf("second cancel differed: %+v vs %+v", second, first)
	}
}

func TestResetToFileRoundTrip(t *testing.T) {
	engine, _ := newTestEngine(t,
		Passenger{ID: "1", Name: "A", FileSeat: "3A"},
		Passenger{ID: "2", Name: "B", FileSeat: "3B"},
		Passenger{ID: "3", Name: "C"},
	)
	ctx := context.Background()

	if _, _, err := engine.Book(ctx, testLeg, "1", "10A"); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.TogglePrivacy(ctx, testLeg, "1", "10B"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := engine.Book(ctx, testLeg, "3", "20K"); err != nil {
		t.Fatal(err)
	}

	snap, err := engine.ResetToFile(ctx, testLeg)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]string{"1": "3A", "2": "3B", "3": ""}
	for paxID, seat := range want {
		if snap.Assignments[paxID] != seat {
			t.Errorf("assignment[%s] = %q, want %q", paxID, snap.Assignments[paxID], seat)
		}
	}
	if len(snap.Privacy) != 0 {
		t.Errorf("privacy map not empty after reset: %v", snap.Privacy)
	}
}

func TestClearAll(t *testing.T) {
	engine, _ := newTestEngine(t,
		Passenger{ID: "1", Name: "A", FileSeat: "3A"},
		Passenger{ID: "2", Name: "B"},
	)
	ctx := context.Background()

	if _, err := engine.TogglePrivacy(ctx, testLeg, "1", "3B"); err != nil {
		t.Fatal(err)
	}

	snap, err := engine.ClearAll(ctx, testLeg)
	if err != nil {
		t.Fatal(err)
	}
	for paxID, seat := range snap.Assignments {
		if seat != "" {
			t.Errorf("assignment[%s] = %q after clear all", paxID, seat)
		}
	}
	if len(snap.Assignments) != 2 {
		t.Errorf("every passenger must keep an entry, got %v", snap.Assignments)
	}
	if len(snap.Privacy) != 0 {
		t.Errorf("privacy map not empty: %v", snap.Privacy)
	}
}

func TestInvalidReferencesFailClosed(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if _, _, err := engine.Book(ctx, testLeg, "1", "6A"); err != nil {
		t.Fatal(err)
	}
	before, _ := engine.Snapshot(testLeg)

	calls := []struct {
		name string
		call func() error
	}{
		{"unknown leg", func() error { _, _, err := engine.Book(ctx, "nope", "1", "6B"); return err }},
		{"unknown passenger", func() error { _, _, err := engine.Book(ctx, testLeg, "99", "6B"); return err }},
		{"unparseable seat", func() error { _, _, err := engine.Book(ctx, testLeg, "1", "??"); return err }},
		{"seat outside cabin", func() error { _, _, err := engine.Book(ctx, testLeg, "1", "99A"); return err }},
		{"unknown column", func() error { _, _, err := engine.Book(ctx, testLeg, "1", "6Z"); return err }},
		{"cancel unknown passenger", func() error { _, err := engine.Cancel(ctx, testLeg, "99"); return err }},
		{"toggle unknown leg", func() error { _, err := engine.TogglePrivacy(ctx, "nope", "1", "6B"); return err }},
	}

	for _, tt := range calls {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, ErrInvalidReference) {
				t.Errorf("got %v, want ErrInvalidReference", err)
			}
		})
	}

	after, _ := engine.Snapshot(testLeg)
	if len(after.Assignments) != len(before.Assignments) || after.Assignments["1"] != "6A" {
		t.Errorf("state mutated by rejected call: %v", after.Assignments)
	}
}

func TestSeatExclusivityInvariant(t *testing.T) {
	engine, _ := newTestEngine(t,
		Passenger{ID: "1", Name: "A"},
		Passenger{ID: "2", Name: "B"},
		Passenger{ID: "3", Name: "C"},
	)
	ctx := context.Background()

	moves := []struct{ pax, seat string }{
		{"1", "6A"}, {"2", "6A"}, {"3", "6A"}, {"1", "6B"}, {"2", "6B"}, {"3", "6C"},
	}
	for _, m := range moves {
		if _, _, err := engine.Book(ctx, testLeg, m.pax, m.seat); err != nil {
			t.Fatalf("Book(%s, %s): %v", m.pax, m.seat, err)
		}
		snap, _ := engine.Snapshot(testLeg)
		seen := make(map[string]string)
		for paxID, seat := range snap.Assignments {
			if seat == "" {
				continue
			}
			if other, dup := seen[seat]; dup {
				t.Fatalf("seat %s held by both %s and %s", seat, other, paxID)
			}
			seen[seat] = paxID
		}
	}
}

func TestPrivacyAdjacencyInvariant(t *testing.T) {
	engine, _ := newTestEngine(t,
		Passenger{ID: "1", Name: "A"},
		Passenger{ID: "2", Name: "B"},
	)
	ctx := context.Background()
	layout := engine.Layout()

	ops := []func() error{
		func() error { _, _, err := engine.Book(ctx, testLeg, "1", "6A"); return err },
		func() error { _, err := engine.TogglePrivacy(ctx, testLeg, "1", "6B"); return err },
		func() error { _, err := engine.TogglePrivacy(ctx, testLeg, "1", "6C"); return err },
		func() error { _, _, err := engine.Book(ctx, testLeg, "2", "6C"); return err },
		func() error { _, _, err := engine.Book(ctx, testLeg, "1", "7H"); return err },
		func() error { _, err := engine.TogglePrivacy(ctx, testLeg, "1", "7J"); return err },
		func() error { _, err := engine.Cancel(ctx, testLeg, "1"); return err },
	}

	for i, op := range ops {
		if err := op(); err != nil {
			t.Fatalf("op %d: %v", i, err)
		}
		snap, _ := engine.Snapshot(testLeg)
		for seatID, owner := range snap.Privacy {
			ownerSeat := snap.Assignments[owner]
			if ownerSeat == "" {
				t.Fatalf("op %d: privacy seat %s owned by unseated passenger %s", i, seatID, owner)
			}
			ownerCode := seatmap.MustSeat(ownerSeat)
			found := false
			for _, n := range layout.RowNeighbours(ownerCode) {
				if n.ID() == seatID {
					found = true
				}
			}
			if !found {
				t.Fatalf("op %d: privacy seat %s not adjacent to owner seat %s", i, seatID, ownerSeat)
			}
			if snap.Assignments[snap.Privacy[seatID]] == seatID {
				t.Fatalf("op %d: privacy seat %s is also an assignment", i, seatID)
			}
		}
	}
}

func TestEligiblePrivacySeats(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	if _, _, err := engine.Book(ctx, testLeg, "1", "6B"); err != nil {
		t.Fatal(err)
	}
	got, err := engine.EligiblePrivacySeats(testLeg, "1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "6A" || got[1] != "6C" {
		t.Fatalf("eligible = %v, want [6A 6C]", got)
	}

	// Occupied neighbours drop out.
	if _, _, err := engine.Book(ctx, testLeg, "2", "6C"); err != nil {
		t.Fatal(err)
	}
	got, err = engine.EligiblePrivacySeats(testLeg, "1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "6A" {
		t.Fatalf("eligible = %v, want [6A]", got)
	}

	// No seat, no eligibility.
	if _, err := engine.Cancel(ctx, testLeg, "1"); err != nil {
		t.Fatal(err)
	}
	got, err = engine.EligiblePrivacySeats(testLeg, "1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("eligible without a seat = %v, want none", got)
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	repo := NewMemoryStateRepository()
	ctx := context.Background()
	passengers := []Passenger{
		{ID: "1", Name: "A", FileSeat: "3A"},
		{ID: "2", Name: "B"},
	}

	engine1, err := NewEngine(seatmap.DefaultLayout(), pricing.DefaultTable(), repo, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := engine1.OpenLeg(ctx, testLeg, passengers); err != nil {
		t.Fatal(err)
	}
	if _, _, err := engine1.Book(ctx, testLeg, "2", "10K"); err != nil {
		t.Fatal(err)
	}
	if _, err := engine1.TogglePrivacy(ctx, testLeg, "2", "10J"); err != nil {
		t.Fatal(err)
	}

	// A fresh engine over the same store sees identical state.
	engine2, err := NewEngine(seatmap.DefaultLayout(), pricing.DefaultTable(), repo, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := engine2.OpenLeg(ctx, testLeg, passengers); err != nil {
		t.Fatal(err)
	}
	snap, err := engine2.Snapshot(testLeg)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Assignments["1"] != "3A" || snap.Assignments["2"] != "10K" {
		t.Errorf("assignments after reopen = %v", snap.Assignments)
	}
	if snap.Privacy["10J"] != "2" {
		t.Errorf("privacy after reopen = %v", snap.Privacy)
	}
}

func TestOpenLegSeedsFromFile(t *testing.T) {
	engine, _ := newTestEngine(t,
		Passenger{ID: "1", Name: "A", FileSeat: "2C"},
		Passenger{ID: "2", Name: "B", FileSeat: "bad-seat"},
		Passenger{ID: "3", Name: "C", FileSeat: "c2"}, // clashes with pax 1 once normalized
	)

	snap, err := engine.Snapshot(testLeg)
	if err != nil {
		t.Fatal(err)
	}
	// Later passenger wins a file clash; malformed file seats are tolerated.
	if snap.Assignments["3"] != "2C" || snap.Assignments["1"] != "" {
		t.Errorf("file seeding = %v", snap.Assignments)
	}
	if snap.Assignments["2"] != "" {
		t.Errorf("malformed file seat should seed empty, got %q", snap.Assignments["2"])
	}
}

func TestClearPassengerAllLegs(t *testing.T) {
	pub := &capturingPublisher{}
	engine, err := NewEngine(seatmap.DefaultLayout(), pricing.DefaultTable(), NewMemoryStateRepository(), pub)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	passengers := []Passenger{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}

	for _, legID := range []string{"BK123:0", "BK123:1"} {
		if err := engine.OpenLeg(ctx, legID, passengers); err != nil {
			t.Fatal(err)
		}
		if _, _, err := engine.Book(ctx, legID, "1", "6A"); err != nil {
			t.Fatal(err)
		}
		if _, err := engine.TogglePrivacy(ctx, legID, "1", "6B"); err != nil {
			t.Fatal(err)
		}
	}

	cleared, err := engine.ClearPassengerAllLegs(ctx, "1")
	if err != nil {
		t.Fatal(err)
	}
	if cleared != 2 {
		t.Errorf("cleared %d legs, want 2", cleared)
	}
	for _, legID := range []string{"BK123:0", "BK123:1"} {
		snap, _ := engine.Snapshot(legID)
		if snap.Assignments["1"] != "" || len(snap.Privacy) != 0 {
			t.Errorf("leg %s not cleared: %+v", legID, snap)
		}
	}
}
