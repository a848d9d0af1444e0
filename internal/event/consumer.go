package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/prakhar2b/sm-dryfruto/internal/content"
	pkgkafka "github.com/prakhar2b/sm-dryfruto/pkg/kafka"
)

// Refresher reloads content. *content.Store implements it.
type Refresher interface {
	Refresh(ctx context.Context) *content.Snapshot
}

// ContentChangedHandler refreshes the store when another replica reports a
// content change. Events published by this replica are ignored; the replica
// already refreshed after its own mutation.
func ContentChangedHandler(store Refresher, replicaID string, logger *slog.Logger) pkgkafka.Handler {
	return func(ctx context.Context, ev *pkgkafka.Event) error {
		if ev.EventType != TypeContentChanged {
			return nil
		}
		if ev.Origin == replicaID {
			return nil
		}

		var data ContentChangedData
		if err := ev.UnmarshalData(&data); err != nil {
			return fmt.Errorf("decode content.changed payload: %w", err)
		}

		snap := store.Refresh(ctx)
		logger.InfoContext(ctx, "content refreshed after remote change",
			slog.String("resource", data.Resource),
			slog.String("action", data.Action),
			slog.String("origin", ev.Origin),
			slog.Int("products", len(snap.Products)),
		)
		return nil
	}
}

// ConsumerConfig configures the content change consumer.
type ConsumerConfig struct {
	Brokers     []string
	GroupPrefix string
	ReplicaID   string
}

// NewContentConsumer builds a consumer for content.changed. Each replica
// joins its own consumer group so every replica sees every event, starting
// from the newest offset because older changes are already in the snapshot
// loaded at startup.
func NewContentConsumer(cfg ConsumerConfig, store Refresher, logger *slog.Logger) *pkgkafka.Consumer {
	handler := pkgkafka.IdempotentHandler(
		pkgkafka.NewMemoryIdempotencyStore(time.Hour),
		ContentChangedHandler(store, cfg.ReplicaID, logger),
		logger,
	)
	return pkgkafka.NewConsumer(pkgkafka.ConsumerConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupPrefix + "." + cfg.ReplicaID,
		Topic:       TopicContentChanged,
		MinBytes:    1,
		MaxBytes:    1 << 20,
		StartOffset: kafka.LastOffset,
	}, handler, logger)
}
