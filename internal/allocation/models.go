package allocation

import (
	"time"

	"github.com/google/uuid"

	"seatly/internal/seatmap"
)

// Passenger is the engine's view of one traveller on one leg. FileSeat is
// the seat pre-assigned in the booking file, empty when none was.
type Passenger struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FileSeat string `json:"file_seat,omitempty"`
}

// LegSnapshot is a consistent read of one leg's seat state, taken under
// the leg lock. Assignments map passenger id to seat id (empty string for
// unassigned); Privacy maps seat id to the owning passenger id.
type LegSnapshot struct {
	LegID       string            `json:"leg_id"`
	Assignments map[string]string `json:"assignments"`
	Privacy     map[string]string `json:"privacy"`
}

// RefundEvent is the settlement owed to a privacy owner at the moment one
// of their held seats is sold to a third party. The engine emits it; the
// billing collaborator applies it. It fires once per sold seat, never
// retroactively for the rest of the owner's released set.
type RefundEvent struct {
	EventID    uuid.UUID    `json:"event_id"`
	LegID      string       `json:"leg_id"`
	OwnerID    string       `json:"owner_id"`
	SeatID     string       `json:"seat_id"`
	Zone       seatmap.Zone `json:"zone"`
	RefundTHB  int64        `json:"refund_thb"`
	OccurredAt time.Time    `json:"occurred_at"`
}

func newRefundEvent(legID, ownerID, seatID string, zone seatmap.Zone, amount int64) RefundEvent {
	return RefundEvent{
		EventID:    uuid.New(),
		LegID:      legID,
		OwnerID:    ownerID,
		SeatID:     seatID,
		Zone:       zone,
		RefundTHB:  amount,
		OccurredAt: time.Now().UTC(),
	}
}

// SeatQuote is the price a given passenger would see for a given seat:
// base price normally, base plus markup when the seat is privacy-held by
// someone else. Occupied seats are not quotable.
type SeatQuote struct {
	SeatID       string       `json:"seat_id"`
	Zone         seatmap.Zone `json:"zone"`
	PriceTHB     int64        `json:"price_thb"`
	MarkedUp     bool         `json:"marked_up"`
	PrivacyOwner string       `json:"privacy_owner,omitempty"`
	Occupied     bool         `json:"occupied"`
	OwnSeat      bool         `json:"own_seat"`
}
