package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the integrity constraints AutoMigrate does not
// express. Every statement is idempotent so startup can re-run them.
func MigrateConstraints(db *gorm.DB) error {
	// A booking cannot carry two legs with the same index
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_leg_index_per_booking
		ON booking_legs (booking_id, leg_index);
	`).Error
	if err != nil {
		return err
	}

	// A passenger ref appears once per leg roster
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_passenger_per_leg
		ON booking_leg_passengers (leg_id, passenger_ref);
	`).Error
	if err != nil {
		return err
	}

	// Settlement lookups run per passenger across legs
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_refund_settlements_passenger_leg
		ON refund_settlements (passenger_ref, leg_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
