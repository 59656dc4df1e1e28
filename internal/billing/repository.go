package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// RecordSettlement inserts the settlement, reporting false when the
	// event id was already recorded.
	RecordSettlement(ctx context.Context, settlement *Settlement) (bool, error)
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*Settlement, error)
	ListByPassenger(ctx context.Context, passengerRef string) ([]Settlement, error)
	ListByLeg(ctx context.Context, legID string) ([]Settlement, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) RecordSettlement(ctx context.Context, settlement *Settlement) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(settlement)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*Settlement, error) {
	var settlement Settlement
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&settlement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settlement, nil
}

func (r *repository) ListByPassenger(ctx context.Context, passengerRef string) ([]Settlement, error) {
	var settlements []Settlement
	err := r.db.WithContext(ctx).
		Where("passenger_ref = ?", passengerRef).
		Order("created_at DESC").
		Find(&settlements).Error
	return settlements, err
}

func (r *repository) ListByLeg(ctx context.Context, legID string) ([]Settlement, error) {
	var settlements []Settlement
	err := r.db.WithContext(ctx).
		Where("leg_id = ?", legID).
		Order("created_at DESC").
		Find(&settlements).Error
	return settlements, err
}
