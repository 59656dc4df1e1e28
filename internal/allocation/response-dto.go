package allocation

// BookResponse returns the post-transition seat map plus any refund
// events the sale triggered.
type BookResponse struct {
	SeatMap LegSnapshot   `json:"seat_map"`
	Refunds []RefundEvent `json:"refunds"`
}

// PrivacyOptionsResponse lists the seats a passenger may currently take
// a privacy hold on.
type PrivacyOptionsResponse struct {
	PassengerID   string   `json:"passenger_id"`
	CurrentSeatID string   `json:"current_seat_id,omitempty"`
	EligibleSeats []string `json:"eligible_seats"`
}

// ClearAllLegsResponse reports how many legs a cross-leg clear touched.
type ClearAllLegsResponse struct {
	PassengerID string `json:"passenger_id"`
	LegsCleared int    `json:"legs_cleared"`
}
