package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"seatly/internal/allocation"
	"seatly/pkg/logger"
)

type ConsumerConfig struct {
	Brokers          []string
	GroupID          string
	Topics           []string
	SessionTimeoutMs int
	HeartbeatMs      int
	OffsetOldest     bool
	MaxRetries       int
	RetryBackoff     time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:          []string{"localhost:9092"},
		GroupID:          "seatly-settlement-workers",
		Topics:           []string{"seat-refunds"},
		SessionTimeoutMs: 30000,
		HeartbeatMs:      3000,
		OffsetOldest:     true,
		MaxRetries:       3,
		RetryBackoff:     time.Second,
	}
}

// SettlementConsumer drains refund events into the settlement table.
type SettlementConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	repo          Repository
	log           *logger.Logger
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

func NewSettlementConsumer(config *ConsumerConfig, repo Repository) (*SettlementConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Return.Errors = true
	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create settlement consumer group: %w", err)
	}

	return &SettlementConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		repo:          repo,
		log:           logger.GetDefault(),
	}, nil
}

func (c *SettlementConsumer) Start(ctx context.Context, numWorkers int) {
	ctx, c.cancel = context.WithCancel(ctx)

	go c.handleErrors()

	for i := 0; i < numWorkers; i++ {
		c.wg.Add(1)
		go func(workerID int) {
			defer c.wg.Done()
			c.runWorker(ctx, workerID)
		}(i)
	}

	c.log.Info("settlement workers started",
		"workers", numWorkers,
		"topics", c.config.Topics)
}

func (c *SettlementConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &settlementHandler{repo: c.repo, log: c.log, workerID: workerID, config: c.config}
	for {
		select {
		case <-ctx.Done():
			return
		default:
			if err := c.consumerGroup.Consume(ctx, c.config.Topics, handler); err != nil {
				c.log.Warn("settlement worker consume error", "worker", workerID, "error", err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (c *SettlementConsumer) handleErrors() {
	for err := range c.consumerGroup.Errors() {
		c.log.Warn("settlement consumer group error", "error", err)
	}
}

func (c *SettlementConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	if err := c.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close settlement consumer group: %w", err)
	}
	return nil
}

type settlementHandler struct {
	repo     Repository
	log      *logger.Logger
	workerID int
	config   *ConsumerConfig
}

func (h *settlementHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *settlementHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *settlementHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}
			if err := h.processMessage(session.Context(), message); err != nil {
				h.log.Warn("failed to settle refund", "worker", h.workerID, "error", err)
			} else {
				session.MarkMessage(message, "")
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *settlementHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var event allocation.RefundEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal refund event: %w", err)
	}

	settlement := SettlementFromEvent(event)
	settlement.MarkSettled()

	inserted, err := h.recordWithRetry(ctx, settlement)
	if err != nil {
		return err
	}
	if !inserted {
		// Redeliveries are expected with at-least-once consumption.
		h.log.Debug("refund event already settled", "event_id", event.EventID.String())
		return nil
	}

	h.log.Info("refund settled",
		"worker", h.workerID,
		"event_id", event.EventID.String(),
		"passenger", event.OwnerID,
		"amount_thb", event.RefundTHB)
	return nil
}

func (h *settlementHandler) recordWithRetry(ctx context.Context, settlement *Settlement) (bool, error) {
	var lastErr error
	for attempt := 0; attempt <= h.config.MaxRetries; attempt++ {
		inserted, err := h.repo.RecordSettlement(ctx, settlement)
		if err == nil {
			return inserted, nil
		}
		lastErr = err
		if attempt == h.config.MaxRetries {
			break
		}
		select {
		case <-time.After(h.config.RetryBackoff * time.Duration(1<<attempt)):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return false, lastErr
}

// SettlementFromEvent maps a refund event onto its settlement row.
func SettlementFromEvent(event allocation.RefundEvent) *Settlement {
	return &Settlement{
		EventID:      event.EventID,
		LegID:        event.LegID,
		PassengerRef: event.OwnerID,
		SeatID:       event.SeatID,
		Zone:         event.Zone.String(),
		AmountTHB:    event.RefundTHB,
	}
}
