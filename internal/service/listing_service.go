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

// ListingStore is the persistence surface the listing service depends on.
type ListingStore interface {
	CreateListing(ctx context.Context, listing *models.Listing) error
	GetListingByID(ctx context.Context, id int64) (*models.Listing, error)
	GetListings(ctx context.Context) ([]models.Listing, error)
	GetJoinedListings(ctx context.Context) ([]models.JoinedListing, error)
	UpdateListing(ctx context.Context, listing *models.Listing) error
	DeleteListing(ctx context.Context, id int64) error
	DeleteClaimsByListingID(ctx context.Context, listingID int64) (int64, error)
	GetProviderByID(ctx context.Context, id int64) (*models.Provider, error)
}

// ListingPublisher emits listing domain events.
type ListingPublisher interface {
	PublishListingCreated(ctx context.Context, event *models.ListingCreatedEvent) error
	PublishListingUpdated(ctx context.Context, event *models.ListingUpdatedEvent) error
	PublishListingDeleted(ctx context.Context, event *models.ListingDeletedEvent) error
}

// ListingService handles listing lifecycle, including the claim cascade
// on deletion.
type ListingService struct {
	store     ListingStore
	cache     Invalidator
	publisher ListingPublisher
	logger    *zap.Logger
}

// NewListingService creates a new listing service
func NewListingService(store ListingStore, cache Invalidator, publisher ListingPublisher) *ListingService {
	return &ListingService{
		store:     store,
		cache:     cache,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// CreateListing creates a listing. When a provider is referenced, its
// category is copied onto the listing (denormalized, survives provider
// deletion).
func (s *ListingService) CreateListing(ctx context.Context, listing *models.Listing) error {
	ctx, span := util.StartSpan(ctx, "ListingService.CreateListing")
	defer span.End()

	if listing.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}

	if listing.ProviderID.Valid {
		provider, err := s.store.GetProviderByID(ctx, listing.ProviderID.Int64)
		if err == nil {
			listing.ProviderType = provider.Type
		} else if !errors.Is(err, store.ErrProviderNotFound) {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	if err := s.store.CreateListing(ctx, listing); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	util.ListingsCreatedTotal.Inc()
	s.logger.Info("Listing created",
		zap.Int64("listing_id", listing.ID),
		zap.String("food_name", listing.FoodName),
		zap.Int("quantity", listing.Quantity))

	event := &models.ListingCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeListingCreated,
			Timestamp: time.Now().UTC(),
		},
		ListingID: listing.ID,
		Quantity:  listing.Quantity,
	}
	if err := s.publisher.PublishListingCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish ListingCreated event", zap.Error(err))
	}

	if err := s.cache.InvalidateListings(ctx); err != nil {
		s.logger.Warn("Failed to invalidate listing views", zap.Error(err))
	}

	return nil
}

// UpdateListing applies an administrative edit, including direct
// quantity overrides.
func (s *ListingService) UpdateListing(ctx context.Context, listing *models.Listing) error {
	ctx, span := util.StartSpan(ctx, "ListingService.UpdateListing")
	defer span.End()

	if listing.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}

	if err := s.store.UpdateListing(ctx, listing); err != nil {
		if errors.Is(err, store.ErrListingNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	event := &models.ListingUpdatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeListingUpdated,
			Timestamp: time.Now().UTC(),
		},
		ListingID: listing.ID,
	}
	if err := s.publisher.PublishListingUpdated(ctx, event); err != nil {
		s.logger.Error("Failed to publish ListingUpdated event", zap.Error(err))
	}

	if err := s.cache.InvalidateListings(ctx); err != nil {
		s.logger.Warn("Failed to invalidate listing views", zap.Error(err))
	}

	return nil
}

// DeleteListing removes a listing and every claim referencing it.
// Claims go first, then the listing, as two separate writes: if the
// listing delete fails afterwards, the store holds a claim-free listing
// rather than orphaned claims.
func (s *ListingService) DeleteListing(ctx context.Context, listingID int64) error {
	ctx, span := util.StartSpan(ctx, "ListingService.DeleteListing")
	defer span.End()

	if _, err := s.store.GetListingByID(ctx, listingID); err != nil {
		if errors.Is(err, store.ErrListingNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	removed, err := s.store.DeleteClaimsByListingID(ctx, listingID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	util.CascadedClaimsDeletedTotal.Add(float64(removed))

	if err := s.store.DeleteListing(ctx, listingID); err != nil {
		if errors.Is(err, store.ErrListingNotFound) {
			// Claims already gone; a concurrent delete won the race.
			return ErrNotFound
		}
		s.logger.Error("Listing delete failed after claim cascade",
			zap.Int64("listing_id", listingID),
			zap.Int64("claims_removed", removed),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	util.ListingsDeletedTotal.Inc()
	s.logger.Info("Listing deleted",
		zap.Int64("listing_id", listingID),
		zap.Int64("claims_removed", removed))

	event := &models.ListingDeletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeListingDeleted,
			Timestamp: time.Now().UTC(),
		},
		ListingID:     listingID,
		ClaimsRemoved: removed,
	}
	if err := s.publisher.PublishListingDeleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish ListingDeleted event", zap.Error(err))
	}

	if err := s.cache.InvalidateListings(ctx); err != nil {
		s.logger.Warn("Failed to invalidate listing views", zap.Error(err))
	}
	if err := s.cache.InvalidateClaims(ctx); err != nil {
		s.logger.Warn("Failed to invalidate claim views", zap.Error(err))
	}

	return nil
}

// GetListing retrieves a listing by ID
func (s *ListingService) GetListing(ctx context.Context, listingID int64) (*models.Listing, error) {
	listing, err := s.store.GetListingByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, store.ErrListingNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return listing, nil
}

// ListListings retrieves all listings
func (s *ListingService) ListListings(ctx context.Context) ([]models.Listing, error) {
	listings, err := s.store.GetListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return listings, nil
}

// ListJoinedListings retrieves listings with provider contact details
func (s *ListingService) ListJoinedListings(ctx context.Context) ([]models.JoinedListing, error) {
	listings, err := s.store.GetJoinedListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return listings, nil
}
