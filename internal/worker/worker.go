package worker

import (
	"context"
	"encoding/json"
	"log"

	"foodshare/internal/broker"
	"foodshare/internal/models"

	"github.com/segmentio/kafka-go"
)

// ViewInvalidator drops staled read-side views.
type ViewInvalidator interface {
	InvalidateListings(ctx context.Context) error
	InvalidateClaims(ctx context.Context) error
}

// CacheWorker consumes domain events and invalidates the read-side
// cache, so every replica's presentation views converge after any
// writer's commit.
type CacheWorker struct {
	consumer *broker.Consumer
	cache    ViewInvalidator
}

// NewCacheWorker creates a new cache invalidation worker
func NewCacheWorker(consumer *broker.Consumer, cache ViewInvalidator) *CacheWorker {
	return &CacheWorker{
		consumer: consumer,
		cache:    cache,
	}
}

// Start starts the worker
func (w *CacheWorker) Start(ctx context.Context) error {
	log.Println("Starting cache invalidation worker...")
	return w.consumer.StartConsuming(ctx, w.handleMessage)
}

// Stop stops the worker
func (w *CacheWorker) Stop() error {
	log.Println("Stopping cache invalidation worker...")
	return w.consumer.Close()
}

func (w *CacheWorker) handleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		log.Printf("Failed to unmarshal event: %v", err)
		return err
	}

	switch baseEvent.EventType {
	case models.EventTypeClaimCreated, models.EventTypeListingDeleted:
		// Both listing quantity and the claim set changed.
		if err := w.cache.InvalidateListings(ctx); err != nil {
			return err
		}
		return w.cache.InvalidateClaims(ctx)

	case models.EventTypeListingCreated, models.EventTypeListingUpdated:
		return w.cache.InvalidateListings(ctx)

	case models.EventTypeClaimStatusUpdated, models.EventTypeClaimDeleted:
		return w.cache.InvalidateClaims(ctx)

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
