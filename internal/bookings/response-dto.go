package bookings

import "time"

// BookingResponse is the imported booking with the engine keys its legs
// were opened under.
type BookingResponse struct {
	ConfirmationNumber string        `json:"confirmation_number"`
	Legs               []LegResponse `json:"legs"`
	CreatedAt          time.Time     `json:"created_at"`
}

type LegResponse struct {
	LegKey      string              `json:"leg_key"`
	Origin      string              `json:"origin"`
	Destination string              `json:"destination"`
	Departure   time.Time           `json:"departure"`
	Passengers  []PassengerResponse `json:"passengers"`
}

type PassengerResponse struct {
	PassengerRef string `json:"passenger_ref"`
	Name         string `json:"name"`
	FileSeat     string `json:"file_seat,omitempty"`
}
