package bookings

import (
	"context"
	"errors"
	"fmt"

	"seatly/internal/allocation"
	"seatly/pkg/logger"
)

var ErrDuplicateConfirmation = errors.New("confirmation number already imported")

type Service interface {
	ImportBooking(ctx context.Context, req ImportBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, confirmationNumber string) (*BookingResponse, error)
	ListConfirmations(ctx context.Context) ([]string, error)
	DeleteBooking(ctx context.Context, confirmationNumber string) error

	// OpenStoredBookings replays every persisted booking into the
	// allocation engine. Called once at startup.
	OpenStoredBookings(ctx context.Context) (int, error)
}

type service struct {
	repo   Repository
	engine *allocation.Engine
	log    *logger.Logger
}

func NewService(repo Repository, engine *allocation.Engine) Service {
	return &service{repo: repo, engine: engine, log: logger.GetDefault()}
}

// ImportBooking persists the reservation and opens each leg on the
// allocation engine, seeding seat state from the filed seats.
func (s *service) ImportBooking(ctx context.Context, req ImportBookingRequest) (*BookingResponse, error) {
	if _, err := s.repo.GetByConfirmation(ctx, req.ConfirmationNumber); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateConfirmation, req.ConfirmationNumber)
	} else if !errors.Is(err, ErrBookingNotFound) {
		return nil, err
	}

	booking := &Booking{ConfirmationNumber: req.ConfirmationNumber}
	for i, leg := range req.Legs {
		row := Leg{
			LegIndex:    i,
			Origin:      leg.Origin,
			Destination: leg.Destination,
			Departure:   leg.Departure,
		}
		for _, p := range leg.Passengers {
			row.Passengers = append(row.Passengers, LegPassenger{
				PassengerRef: p.PassengerRef,
				Name:         p.Name,
				FileSeat:     p.FileSeat,
			})
		}
		booking.Legs = append(booking.Legs, row)
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to store booking: %w", err)
	}

	if err := s.openLegs(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info("booking imported",
		"confirmation_number", booking.ConfirmationNumber,
		"legs", len(booking.Legs))

	return toBookingResponse(booking), nil
}

func (s *service) GetBooking(ctx context.Context, confirmationNumber string) (*BookingResponse, error) {
	booking, err := s.repo.GetByConfirmation(ctx, confirmationNumber)
	if err != nil {
		return nil, err
	}
	return toBookingResponse(booking), nil
}

func (s *service) ListConfirmations(ctx context.Context) ([]string, error) {
	return s.repo.ListConfirmations(ctx)
}

// DeleteBooking removes the stored reservation and closes its legs,
// purging their durable seat state.
func (s *service) DeleteBooking(ctx context.Context, confirmationNumber string) error {
	booking, err := s.repo.GetByConfirmation(ctx, confirmationNumber)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteByConfirmation(ctx, confirmationNumber); err != nil {
		return err
	}
	for _, leg := range booking.Legs {
		if err := s.engine.CloseLeg(ctx, leg.Key(confirmationNumber)); err != nil {
			s.log.Warn("failed to close leg after booking delete",
				"leg_id", leg.Key(confirmationNumber), "error", err)
		}
	}
	return nil
}

func (s *service) OpenStoredBookings(ctx context.Context) (int, error) {
	confirmations, err := s.repo.ListConfirmations(ctx)
	if err != nil {
		return 0, err
	}
	opened := 0
	for _, confirmation := range confirmations {
		booking, err := s.repo.GetByConfirmation(ctx, confirmation)
		if err != nil {
			return opened, err
		}
		if err := s.openLegs(ctx, booking); err != nil {
			return opened, err
		}
		opened += len(booking.Legs)
	}
	return opened, nil
}

func (s *service) openLegs(ctx context.Context, booking *Booking) error {
	for _, leg := range booking.Legs {
		legID := leg.Key(booking.ConfirmationNumber)
		passengers := make([]allocation.Passenger, 0, len(leg.Passengers))
		for _, p := range leg.Passengers {
			passengers = append(passengers, allocation.Passenger{
				ID:       p.PassengerRef,
				Name:     p.Name,
				FileSeat: p.FileSeat,
			})
		}
		if err := s.engine.OpenLeg(ctx, legID, passengers); err != nil {
			return fmt.Errorf("failed to open leg %s: %w", legID, err)
		}
	}
	return nil
}

func toBookingResponse(booking *Booking) *BookingResponse {
	resp := &BookingResponse{
		ConfirmationNumber: booking.ConfirmationNumber,
		CreatedAt:          booking.CreatedAt,
	}
	for _, leg := range booking.Legs {
		legResp := LegResponse{
			LegKey:      leg.Key(booking.ConfirmationNumber),
			Origin:      leg.Origin,
			Destination: leg.Destination,
			Departure:   leg.Departure,
		}
		for _, p := range leg.Passengers {
			legResp.Passengers = append(legResp.Passengers, PassengerResponse{
				PassengerRef: p.PassengerRef,
				Name:         p.Name,
				FileSeat:     p.FileSeat,
			})
		}
		resp.Legs = append(resp.Legs, legResp)
	}
	return resp
}
