package bookings

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Booking is one reservation record, identified by its confirmation
// number. Seat state lives in the allocation engine, keyed per leg; the
// booking rows here are the roster the engine seeds from.
type Booking struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ConfirmationNumber string    `gorm:"type:varchar(16);unique;not null;index" json:"confirmation_number"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// Relationships
	Legs []Leg `json:"legs,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// Leg is one flight segment of a booking.
type Leg struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID   uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	LegIndex    int       `gorm:"not null" json:"leg_index"`
	Origin      string    `gorm:"type:varchar(8);not null" json:"origin"`
	Destination string    `gorm:"type:varchar(8);not null" json:"destination"`
	Departure   time.Time `gorm:"not null" json:"departure"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Passengers []LegPassenger `json:"passengers,omitempty" gorm:"foreignKey:LegID;constraint:OnDelete:CASCADE;"`
}

// LegPassenger is one roster entry on one leg. PassengerRef is the
// airline's stable passenger id within the booking, not a row id.
// FileSeat is the seat already on file, empty when none was assigned.
type LegPassenger struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LegID        uuid.UUID `gorm:"type:uuid;index;not null" json:"leg_id"`
	PassengerRef string    `gorm:"type:varchar(32);not null" json:"passenger_ref"`
	Name         string    `gorm:"type:varchar(120);not null" json:"name"`
	FileSeat     string    `gorm:"type:varchar(8)" json:"file_seat,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (Leg) TableName() string {
	return "booking_legs"
}

func (LegPassenger) TableName() string {
	return "booking_leg_passengers"
}

// LegKey builds the stable id the allocation engine keys a leg's durable
// state by.
func LegKey(confirmationNumber string, legIndex int) string {
	return fmt.Sprintf("%s:%d", confirmationNumber, legIndex)
}

// Key returns the engine key of a leg loaded with its booking's
// confirmation number.
func (l Leg) Key(confirmationNumber string) string {
	return LegKey(confirmationNumber, l.LegIndex)
}
