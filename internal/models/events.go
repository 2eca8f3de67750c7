package models

import "time"

// Event types
const (
	EventTypeClaimCreated       = "CLAIM_CREATED"
	EventTypeClaimStatusUpdated = "CLAIM_STATUS_UPDATED"
	EventTypeClaimDeleted       = "CLAIM_DELETED"
	EventTypeListingCreated     = "LISTING_CREATED"
	EventTypeListingUpdated     = "LISTING_UPDATED"
	EventTypeListingDeleted     = "LISTING_DELETED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ClaimCreatedEvent published after a claim transaction commits
type ClaimCreatedEvent struct {
	BaseEvent
	ClaimID    int64 `json:"claim_id"`
	ListingID  int64 `json:"listing_id"`
	ReceiverID int64 `json:"receiver_id"`
	Quantity   int   `json:"quantity"`
	Remaining  int   `json:"remaining"`
}

// ClaimStatusUpdatedEvent published when an operator changes a claim's status
type ClaimStatusUpdatedEvent struct {
	BaseEvent
	ClaimID int64  `json:"claim_id"`
	Status  string `json:"status"`
}

// ClaimDeletedEvent published when a claim is deleted
type ClaimDeletedEvent struct {
	BaseEvent
	ClaimID int64 `json:"claim_id"`
}

// ListingCreatedEvent published when a listing is created
type ListingCreatedEvent struct {
	BaseEvent
	ListingID int64 `json:"listing_id"`
	Quantity  int   `json:"quantity"`
}

// ListingUpdatedEvent published when a listing is edited
type ListingUpdatedEvent struct {
	BaseEvent
	ListingID int64 `json:"listing_id"`
}

// ListingDeletedEvent published after a listing and its claims are removed
type ListingDeletedEvent struct {
	BaseEvent
	ListingID     int64 `json:"listing_id"`
	ClaimsRemoved int64 `json:"claims_removed"`
}
