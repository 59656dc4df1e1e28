package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"seatly/internal/allocation"
	"seatly/internal/bookings"
	"seatly/internal/pricing"
	"seatly/internal/seatmap"
	"seatly/internal/shared/config"
	"seatly/internal/shared/database"
	"seatly/pkg/cache"
)

type Seeder struct {
	db      *database.DB
	engine  *allocation.Engine
	service bookings.Service
}

func main() {
	fmt.Println("🌱 Starting Seatly Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	stateRepo := allocation.NewStateRepository(cache.NewService(db.GetRedisClient()))
	engine, err := allocation.NewEngine(seatmap.LayoutWithRows(cfg.Cabin.Rows), pricing.DefaultTable(), stateRepo, nil)
	if err != nil {
		log.Fatalf("Failed to initialize allocation engine: %v", err)
	}

	seeder := &Seeder{
		db:      db,
		engine:  engine,
		service: bookings.NewService(bookings.NewRepository(db.GetPostgreSQL()), engine),
	}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"refund_settlements",
		"booking_leg_passengers",
		"booking_legs",
		"bookings",
	}

	for _, table := range tables {
		if err := s.db.GetPostgreSQL().Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	// Drop the durable seat state the old bookings left behind
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store := cache.NewService(s.db.GetRedisClient())
	for _, pattern := range []string{"seatmap:assignment:*", "seatmap:privacy:*"} {
		if err := store.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to clear redis pattern %s: %w", pattern, err)
		}
	}
	return nil
}

// SeedAll loads a demo roundtrip booking and a few seat assignments so
// the API has something to show out of the box.
func (s *Seeder) SeedAll() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	departure := time.Date(2026, 10, 2, 7, 25, 0, 0, time.UTC)
	passengers := []bookings.ImportPassengerRequest{
		{PassengerRef: "1", Name: "Anchali Srisuwan", FileSeat: "4A"},
		{PassengerRef: "2", Name: "Boonmee Srisuwan", FileSeat: "4B"},
		{PassengerRef: "3", Name: "Chailai Srisuwan"},
		{PassengerRef: "4", Name: "Decha Srisuwan"},
	}

	booking, err := s.service.ImportBooking(ctx, bookings.ImportBookingRequest{
		ConfirmationNumber: "GHL42K",
		Legs: []bookings.ImportLegRequest{
			{Origin: "DMK", Destination: "CNX", Departure: departure, Passengers: passengers},
			{Origin: "CNX", Destination: "DMK", Departure: departure.Add(96 * time.Hour), Passengers: passengers},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to import demo booking: %w", err)
	}
	fmt.Printf("   booked %s with %d legs\n", booking.ConfirmationNumber, len(booking.Legs))

	// Give the outbound leg a lived-in seat map: one upgrade with a
	// privacy seat and one plain happy-zone pick.
	outbound := booking.Legs[0].LegKey
	if _, _, err := s.engine.Book(ctx, outbound, "3", "1A"); err != nil {
		return fmt.Errorf("failed to seed seat: %w", err)
	}
	if _, err := s.engine.TogglePrivacy(ctx, outbound, "3", "1B"); err != nil {
		return fmt.Errorf("failed to seed privacy seat: %w", err)
	}
	if _, _, err := s.engine.Book(ctx, outbound, "4", "12K"); err != nil {
		return fmt.Errorf("failed to seed seat: %w", err)
	}

	fmt.Printf("   seeded seat map for leg %s\n", outbound)
	return nil
}
