package billing

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"seatly/internal/allocation"
	"seatly/internal/seatmap"
	"seatly/pkg/logger"
)

type fakeRepository struct {
	Repository
	settlements map[uuid.UUID]*Settlement
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{settlements: make(map[uuid.UUID]*Settlement)}
}

func (r *fakeRepository) RecordSettlement(_ context.Context, s *Settlement) (bool, error) {
	if _, ok := r.settlements[s.EventID]; ok {
		return false, nil
	}
	r.settlements[s.EventID] = s
	return true, nil
}

func testEvent() allocation.RefundEvent {
	return allocation.RefundEvent{
		EventID:    uuid.New(),
		LegID:      "GHL42K:0",
		OwnerID:    "2",
		SeatID:     "6B",
		Zone:       seatmap.ZoneHappy,
		RefundTHB:  150,
		OccurredAt: time.Now(),
	}
}

func newTestHandler(repo Repository) *settlementHandler {
	return &settlementHandler{
		repo:   repo,
		log:    logger.GetDefault(),
		config: &ConsumerConfig{MaxRetries: 1, RetryBackoff: time.Millisecond},
	}
}

func TestSettlementFromEvent(t *testing.T) {
	event := testEvent()
	settlement := SettlementFromEvent(event)

	if settlement.EventID != event.EventID {
		t.Errorf("event id = %s", settlement.EventID)
	}
	if settlement.PassengerRef != "2" || settlement.SeatID != "6B" {
		t.Errorf("settlement = %+v", settlement)
	}
	if settlement.Zone != "happy" || settlement.AmountTHB != 150 {
		t.Errorf("settlement = %+v", settlement)
	}
	if settlement.Status == SettlementStatusSettled {
		t.Errorf("settlement must not be settled before the worker records it")
	}
}

func TestProcessMessageRecordsSettlement(t *testing.T) {
	repo := newFakeRepository()
	handler := newTestHandler(repo)
	event := testEvent()

	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatal(err)
	}
	message := &sarama.ConsumerMessage{Topic: "seat-refunds", Value: payload}

	if err := handler.processMessage(context.Background(), message); err != nil {
		t.Fatalf("processMessage: %v", err)
	}

	settlement, ok := repo.settlements[event.EventID]
	if !ok {
		t.Fatal("settlement not recorded")
	}
	if settlement.Status != SettlementStatusSettled || settlement.SettledAt == nil {
		t.Errorf("settlement not marked settled: %+v", settlement)
	}
	if settlement.AmountTHB != 150 || settlement.LegID != "GHL42K:0" {
		t.Errorf("settlement = %+v", settlement)
	}
}

func TestProcessMessageRedeliveryIsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	handler := newTestHandler(repo)
	event := testEvent()

	payload, _ := json.Marshal(event)
	message := &sarama.ConsumerMessage{Topic: "seat-refunds", Value: payload}

	for i := 0; i < 3; i++ {
		if err := handler.processMessage(context.Background(), message); err != nil {
			t.Fatalf("delivery %d: %v", i, err)
		}
	}
	if len(repo.settlements) != 1 {
		t.Errorf("settlements = %d, want 1", len(repo.settlements))
	}
}

func TestProcessMessageBadPayload(t *testing.T) {
	handler := newTestHandler(newFakeRepository())
	message := &sarama.ConsumerMessage{Topic: "seat-refunds", Value: []byte("not json")}

	if err := handler.processMessage(context.Background(), message); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestSettlementStatusIsValid(t *testing.T) {
	valid := []SettlementStatus{SettlementStatusPending, SettlementStatusSettled, SettlementStatusFailed}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if SettlementStatus("PAID").IsValid() {
		t.Error("PAID should be invalid")
	}
}
