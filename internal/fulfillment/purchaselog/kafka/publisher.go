// Package kafka publishes purchase records as events on a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/jcmexdev/storefront-pricing/internal/fulfillment/purchaselog"
)

var _ purchaselog.Repository = (*Publisher)(nil)

// Producer is the part of a Kafka writer the publisher needs.
type Producer interface {
	WriteMessage(ctx context.Context, msg kafkago.Message) error
	Close() error
}

// PurchaseEvent is the JSON payload of each message.
type PurchaseEvent struct {
	PurchaseID string          `json:"purchase_id"`
	ISBN       string          `json:"isbn"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Total      decimal.Decimal `json:"total"`
	RequestID  string          `json:"request_id,omitempty"`
	TraceID    string          `json:"trace_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Publisher writes one message per purchase, keyed by ISBN so every
// purchase of a book lands on the same partition.
type Publisher struct {
	producer Producer
	topic    string
}

func NewPublisher(producer Producer, topic string) *Publisher {
	return &Publisher{producer: producer, topic: topic}
}

// Dial builds a traced writer for topic. The trace context of each Save is
// injected into the message headers.
func Dial(brokers []string, topic, clientID string) (*Publisher, error) {
	base := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		BatchTimeout: 10 * time.Millisecond,
	}

	writer, err := otelkafka.NewWriter(base,
		otelkafka.WithTracerProvider(otel.GetTracerProvider()),
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes(
			[]attribute.KeyValue{
				semconv.MessagingDestinationNameKey.String(topic),
				attribute.String("messaging.kafka.client_id", clientID),
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka: create writer for %s: %w", topic, err)
	}
	return NewPublisher(writer, topic), nil
}

func (p *Publisher) Save(ctx context.Context, rec *purchaselog.Record) error {
	payload, err := json.Marshal(PurchaseEvent{
		PurchaseID: rec.ID,
		ISBN:       rec.ISBN,
		Quantity:   rec.Quantity,
		UnitPrice:  rec.UnitPrice,
		Total:      rec.Total(),
		RequestID:  rec.RequestID,
		TraceID:    rec.TraceID,
		CreatedAt:  rec.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("kafka: encode purchase %s: %w", rec.ID, err)
	}

	msg := kafkago.Message{
		Key:   []byte(rec.ISBN),
		Value: payload,
	}
	if err := p.producer.WriteMessage(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publish purchase %s to %s: %w", rec.ID, p.topic, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
