package allocation

import (
	"sort"

	"seatly/internal/seatmap"
)

// LegState holds one leg's seat assignment store and privacy ownership
// store. It is not safe for concurrent use on its own; the engine
// serializes access behind a per-leg lock.
type LegState struct {
	legID string

	// passenger book: insertion order preserved for stable output
	paxOrder  []string
	pax       map[string]Passenger
	fileSeats map[string]string

	assignments map[string]string // passengerID -> seatID, "" when unassigned
	bySeat      map[string]string // seatID -> passengerID, reverse index
	privacy     map[string]string // seatID -> owner passengerID
}

// NewLegState builds an empty state for the leg's passenger list. Every
// passenger gets an assignment entry (possibly empty) up front, matching
// the invariant that the map is total over the leg's passengers.
func NewLegState(legID string, passengers []Passenger) *LegState {
	s := &LegState{
		legID:       legID,
		paxOrder:    make([]string, 0, len(passengers)),
		pax:         make(map[string]Passenger, len(passengers)),
		fileSeats:   make(map[string]string, len(passengers)),
		assignments: make(map[string]string, len(passengers)),
		bySeat:      make(map[string]string),
		privacy:     make(map[string]string),
	}
	for _, p := range passengers {
		if _, dup := s.pax[p.ID]; dup {
			continue
		}
		s.paxOrder = append(s.paxOrder, p.ID)
		s.pax[p.ID] = p
		s.fileSeats[p.ID] = p.FileSeat
		s.assignments[p.ID] = ""
	}
	return s
}

func (s *LegState) LegID() string {
	return s.legID
}

// Passengers returns the leg's passengers in booking order.
func (s *LegState) Passengers() []Passenger {
	out := make([]Passenger, 0, len(s.paxOrder))
	for _, id := range s.paxOrder {
		out = append(out, s.pax[id])
	}
	return out
}

func (s *LegState) hasPassenger(paxID string) bool {
	_, ok := s.pax[paxID]
	return ok
}

//  SEAT ASSIGNMENT STORE

// SeatOf returns the passenger's current seat id, empty when unassigned.
func (s *LegState) SeatOf(paxID string) string {
	return s.assignments[paxID]
}

// PassengerAt returns the passenger currently assigned to the seat, or
// empty when the seat is free.
func (s *LegState) PassengerAt(seatID string) string {
	return s.bySeat[seatID]
}

// HeldSeats returns every currently assigned seat id, sorted.
func (s *LegState) HeldSeats() []string {
	out := make([]string, 0, len(s.bySeat))
	for seatID := range s.bySeat {
		out = append(out, seatID)
	}
	sort.Strings(out)
	return out
}

// assign moves the passenger onto the seat. The engine must evict any
// other holder first; a still-occupied seat is a conflict.
func (s *LegState) assign(paxID, seatID string) error {
	if holder := s.bySeat[seatID]; holder != "" && holder != paxID {
		return ErrSeatConflict
	}
	s.release(paxID)
	s.assignments[paxID] = seatID
	s.bySeat[seatID] = paxID
	return nil
}

// release frees the passenger's seat. No-op when already unassigned.
func (s *LegState) release(paxID string) {
	if prev := s.assignments[paxID]; prev != "" {
		delete(s.bySeat, prev)
	}
	s.assignments[paxID] = ""
}

//  PRIVACY OWNERSHIP STORE

// OwnerOf returns the passenger holding the seat as privacy, or empty.
func (s *LegState) OwnerOf(seatID string) string {
	return s.privacy[seatID]
}

// PrivacySeatsOf returns the seat ids the passenger holds as privacy,
// sorted.
func (s *LegState) PrivacySeatsOf(paxID string) []string {
	var out []string
	for seatID, owner := range s.privacy {
		if owner == paxID {
			out = append(out, seatID)
		}
	}
	sort.Strings(out)
	return out
}

// togglePrivacy flips the passenger's privacy hold on the seat. A seat
// owned by someone else is rejected; eligibility is the engine's concern.
func (s *LegState) togglePrivacy(paxID, seatID string) error {
	if owner := s.privacy[seatID]; owner != "" && owner != paxID {
		return ErrPrivacySeatTaken
	}
	if s.privacy[seatID] == paxID {
		delete(s.privacy, seatID)
	} else {
		s.privacy[seatID] = paxID
	}
	return nil
}

// clearPrivacyOf removes every privacy entry the passenger owns. Used on
// cancellation, seat change and explicit clear; always atomic with the
// operation that triggered it.
func (s *LegState) clearPrivacyOf(paxID string) {
	for seatID, owner := range s.privacy {
		if owner == paxID {
			delete(s.privacy, seatID)
		}
	}
}

// EligiblePrivacySeats returns the seats the passenger may hold as
// privacy: every other seat in the same row and block as their current
// seat that no passenger is assigned to, in block column order.
func (s *LegState) EligiblePrivacySeats(layout seatmap.Layout, paxID string) []string {
	current := s.assignments[paxID]
	if current == "" {
		return nil
	}
	code, err := seatmap.ParseSeatCode(current)
	if err != nil {
		return nil
	}
	var out []string
	for _, neighbour := range layout.RowNeighbours(code) {
		id := neighbour.ID()
		if s.bySeat[id] != "" {
			continue
		}
		out = append(out, id)
	}
	return out
}

//  SNAPSHOTS

// Snapshot copies the current maps for lock-free reading by callers.
func (s *LegState) Snapshot() LegSnapshot {
	assignments := make(map[string]string, len(s.assignments))
	for k, v := range s.assignments {
		assignments[k] = v
	}
	privacy := make(map[string]string, len(s.privacy))
	for k, v := range s.privacy {
		privacy[k] = v
	}
	return LegSnapshot{LegID: s.legID, Assignments: assignments, Privacy: privacy}
}

// restore overwrites the stores from a snapshot. Used to roll back a
// transition whose persistence failed and to hydrate from durable state.
func (s *LegState) restore(snap LegSnapshot) {
	s.assignments = make(map[string]string, len(s.pax))
	s.bySeat = make(map[string]string)
	s.privacy = make(map[string]string, len(snap.Privacy))

	// hydrate: every known passenger keeps an entry, unknown ids from a
	// stale record are dropped
	for _, paxID := range s.paxOrder {
		s.assignments[paxID] = ""
	}
	for paxID, seatID := range snap.Assignments {
		if _, known := s.pax[paxID]; !known || seatID == "" {
			continue
		}
		s.assignments[paxID] = seatID
		s.bySeat[seatID] = paxID
	}
	for seatID, owner := range snap.Privacy {
		if _, known := s.pax[owner]; known {
			s.privacy[seatID] = owner
		}
	}
}

// seedFromFile resets every passenger to their file seat and empties the
// privacy store. Later passengers in booking order win a file-seat clash,
// matching first-open seeding.
func (s *LegState) seedFromFile() {
	s.assignments = make(map[string]string, len(s.pax))
	s.bySeat = make(map[string]string)
	s.privacy = make(map[string]string)

	for _, paxID := range s.paxOrder {
		s.assignments[paxID] = ""
	}
	for _, paxID := range s.paxOrder {
		seat := s.fileSeats[paxID]
		if seat == "" {
			continue
		}
		if holder := s.bySeat[seat]; holder != "" {
			s.assignments[holder] = ""
			delete(s.bySeat, seat)
		}
		s.assignments[paxID] = seat
		s.bySeat[seat] = paxID
	}
}

// clearAll empties both stores, keeping every passenger entry present.
func (s *LegState) clearAll() {
	for _, paxID := range s.paxOrder {
		s.assignments[paxID] = ""
	}
	s.bySeat = make(map[string]string)
	s.privacy = make(map[string]string)
}

func (s *LegState) hasAnyAssignment() bool {
	return len(s.bySeat) > 0
}

func (s *LegState) hasAnyFileSeat() bool {
	for _, seat := range s.fileSeats {
		if seat != "" {
			return true
		}
	}
	return false
}
