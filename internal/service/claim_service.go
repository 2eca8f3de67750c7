package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodshare/internal/models"
	"foodshare/internal/store"
	"foodshare/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClaimStore is the persistence surface the claim service depends on.
type ClaimStore interface {
	CreateClaimTx(ctx context.Context, listingID, receiverID int64, quantity int) (*models.Claim, int, error)
	GetClaimByID(ctx context.Context, id int64) (*models.Claim, error)
	GetClaims(ctx context.Context) ([]models.Claim, error)
	GetClaimsByListingID(ctx context.Context, listingID int64) ([]models.Claim, error)
	UpdateClaimStatus(ctx context.Context, claimID int64, status string) error
	DeleteClaim(ctx context.Context, id int64) error
}

// ClaimPublisher emits claim domain events after commit.
type ClaimPublisher interface {
	PublishClaimCreated(ctx context.Context, event *models.ClaimCreatedEvent) error
	PublishClaimStatusUpdated(ctx context.Context, event *models.ClaimStatusUpdatedEvent) error
	PublishClaimDeleted(ctx context.Context, event *models.ClaimDeletedEvent) error
}

// Invalidator drops staled read-side views after a successful mutation.
type Invalidator interface {
	InvalidateListings(ctx context.Context) error
	InvalidateClaims(ctx context.Context) error
}

// ClaimService is the sole authority for moving a listing's quantity
// downward. All serialization rests on the store's locking transaction;
// the service adds the error taxonomy, events, metrics and cache
// invalidation around it.
type ClaimService struct {
	store     ClaimStore
	cache     Invalidator
	publisher ClaimPublisher
	logger    *zap.Logger
}

// NewClaimService creates a new claim service
func NewClaimService(store ClaimStore, cache Invalidator, publisher ClaimPublisher) *ClaimService {
	return &ClaimService{
		store:     store,
		cache:     cache,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// CreateClaimRequest represents a receiver's claim request
type CreateClaimRequest struct {
	ListingID  int64 `json:"listing_id" binding:"required"`
	ReceiverID int64 `json:"receiver_id" binding:"required"`
	Quantity   int   `json:"quantity" binding:"required,min=1"`
}

// CreateClaimResponse represents the result of a successful claim
type CreateClaimResponse struct {
	ClaimID   int64  `json:"claim_id"`
	Status    string `json:"status"`
	Remaining int    `json:"remaining"`
}

// CreateClaim atomically claims quantity from a listing. Failure leaves
// the store unchanged. Errors: ErrNotFound (listing absent),
// InsufficientQuantityError (requested > available, carries available),
// ErrStoreUnavailable (tx/lock failure, retryable).
func (s *ClaimService) CreateClaim(ctx context.Context, req *CreateClaimRequest) (*CreateClaimResponse, error) {
	ctx, span := util.StartSpan(ctx, "ClaimService.CreateClaim")
	defer span.End()

	if req.Quantity < 1 {
		util.ClaimsFailedTotal.WithLabelValues("invalid_quantity").Inc()
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	start := time.Now()
	claim, remaining, err := s.store.CreateClaimTx(ctx, req.ListingID, req.ReceiverID, req.Quantity)
	util.ClaimTxLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, s.translateClaimError(err, req)
	}

	util.ClaimsCreatedTotal.Inc()
	s.logger.Info("Claim created",
		zap.Int64("claim_id", claim.ID),
		zap.Int64("listing_id", req.ListingID),
		zap.Int("quantity", req.Quantity),
		zap.Int("remaining", remaining))

	event := &models.ClaimCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeClaimCreated,
			Timestamp: time.Now().UTC(),
		},
		ClaimID:    claim.ID,
		ListingID:  claim.ListingID,
		ReceiverID: claim.ReceiverID,
		Quantity:   claim.Quantity,
		Remaining:  remaining,
	}
	if err := s.publisher.PublishClaimCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish ClaimCreated event", zap.Error(err))
	}

	s.invalidateAfterClaim(ctx)

	return &CreateClaimResponse{
		ClaimID:   claim.ID,
		Status:    claim.Status,
		Remaining: remaining,
	}, nil
}

func (s *ClaimService) translateClaimError(err error, req *CreateClaimRequest) error {
	if errors.Is(err, store.ErrListingNotFound) {
		util.ClaimsFailedTotal.WithLabelValues("not_found").Inc()
		s.logger.Info("Claim rejected, listing not found",
			zap.Int64("listing_id", req.ListingID))
		return ErrNotFound
	}

	var insufficient *store.InsufficientQuantityError
	if errors.As(err, &insufficient) {
		util.ClaimsFailedTotal.WithLabelValues("insufficient_quantity").Inc()
		s.logger.Info("Claim rejected, insufficient quantity",
			zap.Int64("listing_id", req.ListingID),
			zap.Int("requested", req.Quantity),
			zap.Int("available", insufficient.Available))
		return &InsufficientQuantityError{Available: insufficient.Available}
	}

	util.ClaimsFailedTotal.WithLabelValues("store_error").Inc()
	s.logger.Error("Claim transaction failed",
		zap.Int64("listing_id", req.ListingID),
		zap.Error(err))
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

func (s *ClaimService) invalidateAfterClaim(ctx context.Context) {
	if err := s.cache.InvalidateListings(ctx); err != nil {
		s.logger.Warn("Failed to invalidate listing views", zap.Error(err))
	} else {
		util.CacheInvalidationsTotal.WithLabelValues("listings").Inc()
	}
	if err := s.cache.InvalidateClaims(ctx); err != nil {
		s.logger.Warn("Failed to invalidate claim views", zap.Error(err))
	} else {
		util.CacheInvalidationsTotal.WithLabelValues("claims").Inc()
	}
}

// UpdateStatus sets a claim's status by operator action. Any known
// status may be set at any time; no transition table is enforced.
func (s *ClaimService) UpdateStatus(ctx context.Context, claimID int64, status string) error {
	ctx, span := util.StartSpan(ctx, "ClaimService.UpdateStatus")
	defer span.End()

	if !models.ValidClaimStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if err := s.store.UpdateClaimStatus(ctx, claimID, status); err != nil {
		if errors.Is(err, store.ErrClaimNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	util.ClaimStatusUpdatesTotal.WithLabelValues(status).Inc()
	s.logger.Info("Claim status updated",
		zap.Int64("claim_id", claimID),
		zap.String("status", status))

	event := &models.ClaimStatusUpdatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeClaimStatusUpdated,
			Timestamp: time.Now().UTC(),
		},
		ClaimID: claimID,
		Status:  status,
	}
	if err := s.publisher.PublishClaimStatusUpdated(ctx, event); err != nil {
		s.logger.Error("Failed to publish ClaimStatusUpdated event", zap.Error(err))
	}

	if err := s.cache.InvalidateClaims(ctx); err != nil {
		s.logger.Warn("Failed to invalidate claim views", zap.Error(err))
	}

	return nil
}

// DeleteClaim removes a claim. The quantity the claim reserved is not
// returned to the listing, cancelled or not.
func (s *ClaimService) DeleteClaim(ctx context.Context, claimID int64) error {
	ctx, span := util.StartSpan(ctx, "ClaimService.DeleteClaim")
	defer span.End()

	if err := s.store.DeleteClaim(ctx, claimID); err != nil {
		if errors.Is(err, store.ErrClaimNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	util.ClaimsDeletedTotal.Inc()
	s.logger.Info("Claim deleted", zap.Int64("claim_id", claimID))

	event := &models.ClaimDeletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeClaimDeleted,
			Timestamp: time.Now().UTC(),
		},
		ClaimID: claimID,
	}
	if err := s.publisher.PublishClaimDeleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish ClaimDeleted event", zap.Error(err))
	}

	if err := s.cache.InvalidateClaims(ctx); err != nil {
		s.logger.Warn("Failed to invalidate claim views", zap.Error(err))
	}

	return nil
}

// GetClaim retrieves a claim by ID
func (s *ClaimService) GetClaim(ctx context.Context, claimID int64) (*models.Claim, error) {
	claim, err := s.store.GetClaimByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, store.ErrClaimNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return claim, nil
}

// ListClaims retrieves all claims
func (s *ClaimService) ListClaims(ctx context.Context) ([]models.Claim, error) {
	claims, err := s.store.GetClaims(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return claims, nil
}
