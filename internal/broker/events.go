package broker

import (
	"context"
	"fmt"

	"foodshare/internal/models"
)

// EventPublisher handles publishing domain events. Events go out after
// the corresponding store write commits; a publish failure never rolls
// the write back.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishClaimCreated publishes ClaimCreated event
func (ep *EventPublisher) PublishClaimCreated(ctx context.Context, event *models.ClaimCreatedEvent) error {
	key := fmt.Sprintf("listing-%d", event.ListingID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishClaimStatusUpdated publishes ClaimStatusUpdated event
func (ep *EventPublisher) PublishClaimStatusUpdated(ctx context.Context, event *models.ClaimStatusUpdatedEvent) error {
	key := fmt.Sprintf("claim-%d", event.ClaimID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishClaimDeleted publishes ClaimDeleted event
func (ep *EventPublisher) PublishClaimDeleted(ctx context.Context, event *models.ClaimDeletedEvent) error {
	key := fmt.Sprintf("claim-%d", event.ClaimID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishListingCreated publishes ListingCreated event
func (ep *EventPublisher) PublishListingCreated(ctx context.Context, event *models.ListingCreatedEvent) error {
	key := fmt.Sprintf("listing-%d", event.ListingID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishListingUpdated publishes ListingUpdated event
func (ep *EventPublisher) PublishListingUpdated(ctx context.Context, event *models.ListingUpdatedEvent) error {
	key := fmt.Sprintf("listing-%d", event.ListingID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishListingDeleted publishes ListingDeleted event
func (ep *EventPublisher) PublishListingDeleted(ctx context.Context, event *models.ListingDeletedEvent) error {
	key := fmt.Sprintf("listing-%d", event.ListingID)
	return ep.producer.PublishEvent(ctx, key, event)
}
