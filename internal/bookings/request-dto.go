package bookings

import "time"

// ImportBookingRequest is the normalized reservation payload handed over
// by the reservation system.
type ImportBookingRequest struct {
	ConfirmationNumber string             `json:"confirmation_number" binding:"required,alphanum,min=4,max=16"`
	Legs               []ImportLegRequest `json:"legs" binding:"required,min=1,dive"`
}

type ImportLegRequest struct {
	Origin      string                   `json:"origin" binding:"required,len=3,uppercase"`
	Destination string                   `json:"destination" binding:"required,len=3,uppercase"`
	Departure   time.Time                `json:"departure" binding:"required"`
	Passengers  []ImportPassengerRequest `json:"passengers" binding:"required,min=1,dive"`
}

type ImportPassengerRequest struct {
	PassengerRef string `json:"passenger_ref" binding:"required,min=1,max=32"`
	Name         string `json:"name" binding:"required,min=1,max=120"`
	FileSeat     string `json:"file_seat" binding:"omitempty,max=8"`
}
