// Package kafka publishes domain events to a Kafka topic so downstream
// consumers (billing, analytics, mobile push) can react to order lifecycle
// changes without coupling to the service's store.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"loadboard/internal/core/domain/events"

	"github.com/Shopify/sarama"
)

// Publisher sends domain events to Kafka using a synchronous producer.
// Messages are keyed by order id, which keeps every event of one order on the
// same partition and therefore in commit order for consumers.
//
// Publish is best effort: broker failures are logged and swallowed so the
// business operation that produced the event never fails on messaging.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewPublisher creates a Kafka-backed event publisher.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 10
	config.Producer.Return.Successes = true
	config.Producer.Retry.Backoff = 500 * time.Millisecond
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "kafka_publisher"),
	}, nil
}

type eventMessage struct {
	Kind       string    `json:"kind"`
	OrderID    string    `json:"order_id"`
	MerchantID string    `json:"merchant_id"`
	DriverID   string    `json:"driver_id,omitempty"`
	BidID      string    `json:"bid_id,omitempty"`
	Price      int64     `json:"price,omitempty"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publish sends the event to the configured topic, keyed by order id.
func (p *Publisher) Publish(_ context.Context, event events.Event) {
	msg := eventMessage{
		Kind:       string(event.Kind),
		OrderID:    event.Order.ID.String(),
		MerchantID: event.Order.MerchantID.String(),
		Status:     event.Order.Status.String(),
		OccurredAt: event.OccurredAt,
	}
	if event.Order.DriverID != nil {
		msg.DriverID = event.Order.DriverID.String()
	}
	if event.Bid != nil {
		msg.BidID = event.Bid.ID.String()
		msg.Price = event.Bid.Price
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		p.logger.Error("failed to encode event", "kind", event.Kind, "error", err)
		return
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(msg.OrderID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		p.logger.Error("failed to send event to Kafka",
			"kind", event.Kind,
			"orderId", msg.OrderID,
			"error", err)
		return
	}

	p.logger.Debug("event sent to Kafka",
		"kind", event.Kind,
		"orderId", msg.OrderID,
		"partition", partition,
		"offset", offset)
}

// Close closes the underlying producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
