package fares

import "seatly/internal/seatmap"

// FareLine is one passenger's charges on one leg. A passenger without a
// seat gets a zero line so every roster entry shows up in the cart.
type FareLine struct {
	PassengerID     string       `json:"passenger_id"`
	PassengerName   string       `json:"passenger_name"`
	SeatID          string       `json:"seat_id,omitempty"`
	Zone            seatmap.Zone `json:"zone,omitempty"`
	BaseTHB         int64        `json:"base_thb"`
	PrivacySeatIDs  []string     `json:"privacy_seat_ids,omitempty"`
	PrivacyTotalTHB int64        `json:"privacy_total_thb"`
	EstRefundTHB    int64        `json:"est_refund_thb"`
	TotalTHB        int64        `json:"total_thb"`
}

// LegFares aggregates one leg of a booking.
type LegFares struct {
	LegID    string     `json:"leg_id"`
	Lines    []FareLine `json:"lines"`
	TotalTHB int64      `json:"total_thb"`
}

// BookingFares spans every open leg of one confirmation number.
type BookingFares struct {
	ConfirmationNumber string     `json:"confirmation_number"`
	Legs               []LegFares `json:"legs"`
	GrandTotalTHB      int64      `json:"grand_total_thb"`
}
