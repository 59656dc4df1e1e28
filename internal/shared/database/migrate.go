package database

import (
	"seatly/internal/billing"
	"seatly/internal/bookings"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&bookings.Booking{},
		&bookings.Leg{},
		&bookings.LegPassenger{},
		&billing.Settlement{},
	)
}
