package billing

import (
	"time"

	"github.com/google/uuid"
)

type SettlementStatus string

const (
	SettlementStatusPending SettlementStatus = "PENDING"
	SettlementStatusSettled SettlementStatus = "SETTLED"
	SettlementStatusFailed  SettlementStatus = "FAILED"
)

func (s SettlementStatus) IsValid() bool {
	switch s {
	case SettlementStatusPending, SettlementStatusSettled, SettlementStatusFailed:
		return true
	}
	return false
}

func (s SettlementStatus) String() string {
	return string(s)
}

// Settlement is the recorded payout for one refund event. EventID is
// unique so a redelivered Kafka message never settles twice.
type Settlement struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID      uuid.UUID        `gorm:"type:uuid;unique;not null" json:"event_id"`
	LegID        string           `gorm:"type:varchar(24);index;not null" json:"leg_id"`
	PassengerRef string           `gorm:"type:varchar(32);index;not null" json:"passenger_ref"`
	SeatID       string           `gorm:"type:varchar(8);not null" json:"seat_id"`
	Zone         string           `gorm:"type:varchar(16);not null" json:"zone"`
	AmountTHB    int64            `gorm:"not null" json:"amount_thb"`
	Status       SettlementStatus `gorm:"type:varchar(16);default:'PENDING'" json:"status"`
	SettledAt    *time.Time       `json:"settled_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

func (Settlement) TableName() string {
	return "refund_settlements"
}

func (s *Settlement) MarkSettled() {
	s.Status = SettlementStatusSettled
	now := time.Now()
	s.SettledAt = &now
}
