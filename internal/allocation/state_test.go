package allocation

import (
	"errors"
	"testing"

	"seatly/internal/seatmap"
)

func TestAssignConflict(t *testing.T) {
	state := NewLegState("L:0", []Passenger{{ID: "1"}, {ID: "2"}})

	if err := state.assign("1", "6A"); err != nil {
		t.Fatal(err)
	}
	err := state.assign("2", "6A")
	if !errors.Is(err, ErrSeatConflict) {
		t.Fatalf("got %v, want ErrSeatConflict", err)
	}
	// Re-assigning your own seat is fine.
	if err := state.assign("1", "6A"); err != nil {
		t.Fatalf("own-seat reassign: %v", err)
	}
}

func TestReleaseIdempotent(t *testing.T) {
	state := NewLegState("L:0", []Passenger{{ID: "1"}})
	if err := state.assign("1", "6A"); err != nil {
		t.Fatal(err)
	}
	state.release("1")
	state.release("1")
	if got := state.SeatOf("1"); got != "" {
		t.Errorf("SeatOf after release = %q", got)
	}
	if got := state.PassengerAt("6A"); got != "" {
		t.Errorf("PassengerAt after release = %q", got)
	}
}

func TestHeldSeatsSorted(t *testing.T) {
	state := NewLegState("L:0", []Passenger{{ID: "1"}, {ID: "2"}, {ID: "3"}})
	for paxID, seat := range map[string]string{"1": "9C", "2": "2A", "3": "15K"} {
		if err := state.assign(paxID, seat); err != nil {
			t.Fatal(err)
		}
	}
	got := state.HeldSeats()
	want := []string{"15K", "2A", "9C"}
	if len(got) != len(want) {
		t.Fatalf("HeldSeats = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("HeldSeats = %v, want %v", got, want)
		}
	}
}

func TestSeedFromFileLaterPassengerWinsClash(t *testing.T) {
	state := NewLegState("L:0", []Passenger{
		{ID: "1", FileSeat: "4A"},
		{ID: "2", FileSeat: "4A"},
	})
	state.seedFromFile()
	if state.SeatOf("2") != "4A" || state.SeatOf("1") != "" {
		t.Errorf("clash resolution: 1=%q 2=%q", state.SeatOf("1"), state.SeatOf("2"))
	}
}

func TestRestoreDropsUnknownIDs(t *testing.T) {
	state := NewLegState("L:0", []Passenger{{ID: "1"}, {ID: "2"}})
	state.restore(LegSnapshot{
		LegID: "L:0",
		Assignments: map[string]string{
			"1":     "6A",
			"ghost": "6B",
		},
		Privacy: map[string]string{
			"6C": "1",
			"6H": "ghost",
		},
	})

	if state.SeatOf("1") != "6A" {
		t.Errorf("known assignment lost: %q", state.SeatOf("1"))
	}
	if state.PassengerAt("6B") != "" {
		t.Errorf("unknown passenger's assignment kept")
	}
	if state.OwnerOf("6C") != "1" {
		t.Errorf("known privacy hold lost")
	}
	if state.OwnerOf("6H") != "" {
		t.Errorf("unknown passenger's privacy hold kept")
	}
	// Every roster passenger keeps an entry even when absent from the record.
	snap := state.Snapshot()
	if _, ok := snap.Assignments["2"]; !ok {
		t.Errorf("passenger 2 missing from snapshot: %v", snap.Assignments)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	state := NewLegState("L:0", []Passenger{{ID: "1"}})
	if err := state.assign("1", "6A"); err != nil {
		t.Fatal(err)
	}
	snap := state.Snapshot()
	snap.Assignments["1"] = "99Z"
	if state.SeatOf("1") != "6A" {
		t.Errorf("snapshot mutation leaked into state")
	}
}

func TestEligiblePrivacySeatsRespectsBlockAndOccupancy(t *testing.T) {
	layout := seatmap.DefaultLayout()
	state := NewLegState("L:0", []Passenger{{ID: "1"}, {ID: "2"}})

	if err := state.assign("1", "6H"); err != nil {
		t.Fatal(err)
	}
	got := state.EligiblePrivacySeats(layout, "1")
	if len(got) != 2 || got[0] != "6J" || got[1] != "6K" {
		t.Fatalf("eligible = %v, want [6J 6K]", got)
	}

	if err := state.assign("2", "6K"); err != nil {
		t.Fatal(err)
	}
	got = state.EligiblePrivacySeats(layout, "1")
	if len(got) != 1 || got[0] != "6J" {
		t.Fatalf("eligible = %v, want [6J]", got)
	}
}
