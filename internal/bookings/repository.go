package bookings

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("booking not found")

type Repository interface {
	CreateBooking(ctx context.Context, booking *Booking) error
	GetByConfirmation(ctx context.Context, confirmationNumber string) (*Booking, error)
	ListConfirmations(ctx context.Context) ([]string, error)
	DeleteByConfirmation(ctx context.Context, confirmationNumber string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBooking(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) GetByConfirmation(ctx context.Context, confirmationNumber string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Legs", func(db *gorm.DB) *gorm.DB {
			return db.Order("booking_legs.leg_index ASC")
		}).
		Preload("Legs.Passengers", func(db *gorm.DB) *gorm.DB {
			return db.Order("booking_leg_passengers.created_at ASC")
		}).
		Where("confirmation_number = ?", confirmationNumber).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListConfirmations(ctx context.Context) ([]string, error) {
	var confirmations []string
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Order("created_at ASC").
		Pluck("confirmation_number", &confirmations).Error
	return confirmations, err
}

func (r *repository) DeleteByConfirmation(ctx context.Context, confirmationNumber string) error {
	result := r.db.WithContext(ctx).
		Where("confirmation_number = ?", confirmationNumber).
		Delete(&Booking{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
