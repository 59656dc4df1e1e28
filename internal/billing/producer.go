package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"seatly/internal/allocation"
	"seatly/pkg/logger"
)

// ProducerConfig configures the refund event producer.
type ProducerConfig struct {
	Brokers          []string
	RefundTopic      string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
}

func DefaultProducerConfig() *ProducerConfig {
	return &ProducerConfig{
		Brokers:          []string{"localhost:9092"},
		RefundTopic:      "seat-refunds",
		RetryMax:         3,
		TimeoutMs:        10000,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
	}
}

// RefundProducer publishes refund events for the settlement workers. It
// satisfies allocation.RefundPublisher.
type RefundProducer struct {
	producer sarama.SyncProducer
	config   *ProducerConfig
	log      *logger.Logger
}

func NewRefundProducer(config *ProducerConfig) (*RefundProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keyed on the refund owner keeps one passenger's
	// settlements in order.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create refund producer: %w", err)
	}

	return &RefundProducer{
		producer: producer,
		config:   config,
		log:      logger.GetDefault(),
	}, nil
}

func (p *RefundProducer) PublishRefund(ctx context.Context, event allocation.RefundEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal refund event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.config.RefundTopic,
		Key:       sarama.StringEncoder(event.OwnerID),
		Value:     sarama.ByteEncoder(payload),
		Headers:   refundHeaders(event),
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish refund event: %w", err)
	}

	p.log.Info("refund event published",
		"topic", p.config.RefundTopic,
		"partition", partition,
		"offset", offset,
		"event_id", event.EventID.String(),
		"owner", event.OwnerID,
		"amount_thb", event.RefundTHB)
	return nil
}

func refundHeaders(event allocation.RefundEvent) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("event_id"), Value: []byte(event.EventID.String())},
		{Key: []byte("leg_id"), Value: []byte(event.LegID)},
		{Key: []byte("seat_id"), Value: []byte(event.SeatID)},
		{Key: []byte("zone"), Value: []byte(event.Zone)},
		{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339))},
	}
}

func (p *RefundProducer) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close refund producer: %w", err)
		}
	}
	return nil
}
