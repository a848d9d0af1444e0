// Package event publishes storefront events to Kafka and turns content
// change events from other replicas into store refreshes.
package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/prakhar2b/sm-dryfruto/pkg/kafka"
	"github.com/prakhar2b/sm-dryfruto/pkg/logger"
)

// Kafka topics.
var (
	TopicContentChanged     = pkgkafka.Topic("content", "changed")
	TopicBulkOrderSubmitted = pkgkafka.Topic("bulk_order", "submitted")
)

// Event types.
const (
	TypeContentChanged     = "content.changed"
	TypeBulkOrderSubmitted = "bulk_order.submitted"
)

// SourceStorefront identifies events emitted by this service.
const SourceStorefront = "storefront"

// ContentChangedData is the payload of a content.changed event.
type ContentChangedData struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
	ID       string `json:"id,omitempty"`
}

// BulkOrderSubmittedData is the payload of a bulk_order.submitted event.
type BulkOrderSubmittedData struct {
	Name        string `json:"name"`
	Company     string `json:"company,omitempty"`
	Phone       string `json:"phone"`
	ProductType string `json:"productType"`
	Quantity    string `json:"quantity"`
}

// Publisher emits storefront events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	ContentChanged(ctx context.Context, data ContentChangedData) error
	BulkOrderSubmitted(ctx context.Context, data BulkOrderSubmittedData) error
	Close() error
}

type kafkaWriter interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
	Close() error
}

// KafkaPublisher publishes events with the shared Kafka producer. Every
// event carries the replica ID so the replica can skip its own messages.
type KafkaPublisher struct {
	producer  kafkaWriter
	replicaID string
	logger    *slog.Logger
}

// NewKafkaPublisher creates a publisher on top of producer.
func NewKafkaPublisher(producer *pkgkafka.Producer, replicaID string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, replicaID: replicaID, logger: logger}
}

// ContentChanged publishes a content.changed event keyed by resource.
func (p *KafkaPublisher) ContentChanged(ctx context.Context, data ContentChangedData) error {
	return p.publish(ctx, TopicContentChanged, TypeContentChanged, data.Resource, data)
}

// BulkOrderSubmitted publishes a bulk_order.submitted event keyed by phone.
func (p *KafkaPublisher) BulkOrderSubmitted(ctx context.Context, data BulkOrderSubmittedData) error {
	return p.publish(ctx, TopicBulkOrderSubmitted, TypeBulkOrderSubmitted, data.Phone, data)
}

func (p *KafkaPublisher) publish(ctx context.Context, topic, eventType, key string, data any) error {
	ev, err := pkgkafka.NewEvent(eventType, key, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}
	ev.WithOrigin(p.replicaID)
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		ev.WithCorrelationID(id)
	}

	if err := p.producer.Publish(ctx, topic, ev); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("event_type", eventType),
		slog.String("key", key),
	)
	return nil
}

// Close flushes and closes the producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher drops every event. It is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) ContentChanged(context.Context, ContentChangedData) error { return nil }

func (NoopPublisher) BulkOrderSubmitted(context.Context, BulkOrderSubmittedData) error { return nil }

func (NoopPublisher) Close() error { return nil }
