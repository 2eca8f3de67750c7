package service

import (
	"context"
	"errors"
	"fmt"

	"foodshare/internal/models"
	"foodshare/internal/store"
	"foodshare/internal/util"

	"go.uber.org/zap"
)

// DirectoryStore is the persistence surface for provider and receiver
// records.
type DirectoryStore interface {
	CreateProvider(ctx context.Context, provider *models.Provider) error
	GetProviderByID(ctx context.Context, id int64) (*models.Provider, error)
	GetProviders(ctx context.Context) ([]models.Provider, error)
	UpdateProvider(ctx context.Context, provider *models.Provider) error
	DeleteProvider(ctx context.Context, id int64) error

	CreateReceiver(ctx context.Context, receiver *models.Receiver) error
	GetReceiverByID(ctx context.Context, id int64) (*models.Receiver, error)
	GetReceivers(ctx context.Context) ([]models.Receiver, error)
	UpdateReceiver(ctx context.Context, receiver *models.Receiver) error
	DeleteReceiver(ctx context.Context, id int64) error
}

// DirectoryInvalidator drops provider and receiver views.
type DirectoryInvalidator interface {
	InvalidateProviders(ctx context.Context) error
	InvalidateReceivers(ctx context.Context) error
}

// DirectoryService handles provider and receiver lifecycle. Deleting
// either does not cascade: listings and claims keep their references.
type DirectoryService struct {
	store  DirectoryStore
	cache  DirectoryInvalidator
	logger *zap.Logger
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(store DirectoryStore, cache DirectoryInvalidator) *DirectoryService {
	return &DirectoryService{
		store:  store,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// CreateProvider registers a provider
func (s *DirectoryService) CreateProvider(ctx context.Context, provider *models.Provider) error {
	if err := s.store.CreateProvider(ctx, provider); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.logger.Info("Provider created", zap.Int64("provider_id", provider.ID))
	s.invalidateProviders(ctx)
	return nil
}

// GetProvider retrieves a provider by ID
func (s *DirectoryService) GetProvider(ctx context.Context, id int64) (*models.Provider, error) {
	provider, err := s.store.GetProviderByID(ctx, id)
	if err != nil {
		return nil, s.translate(err)
	}
	return provider, nil
}

// ListProviders retrieves all providers
func (s *DirectoryService) ListProviders(ctx context.Context) ([]models.Provider, error) {
	providers, err := s.store.GetProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return providers, nil
}

// UpdateProvider updates a provider's fields
func (s *DirectoryService) UpdateProvider(ctx context.Context, provider *models.Provider) error {
	if err := s.store.UpdateProvider(ctx, provider); err != nil {
		return s.translate(err)
	}
	s.invalidateProviders(ctx)
	return nil
}

// DeleteProvider removes a provider, leaving its listings with a
// dangling reference.
func (s *DirectoryService) DeleteProvider(ctx context.Context, id int64) error {
	if err := s.store.DeleteProvider(ctx, id); err != nil {
		return s.translate(err)
	}
	s.logger.Info("Provider deleted", zap.Int64("provider_id", id))
	s.invalidateProviders(ctx)
	return nil
}

// CreateReceiver registers a receiver
func (s *DirectoryService) CreateReceiver(ctx context.Context, receiver *models.Receiver) error {
	if err := s.store.CreateReceiver(ctx, receiver); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.logger.Info("Receiver created", zap.Int64("receiver_id", receiver.ID))
	s.invalidateReceivers(ctx)
	return nil
}

// GetReceiver retrieves a receiver by ID
func (s *DirectoryService) GetReceiver(ctx context.Context, id int64) (*models.Receiver, error) {
	receiver, err := s.store.GetReceiverByID(ctx, id)
	if err != nil {
		return nil, s.translate(err)
	}
	return receiver, nil
}

// ListReceivers retrieves all receivers
func (s *DirectoryService) ListReceivers(ctx context.Context) ([]models.Receiver, error) {
	receivers, err := s.store.GetReceivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return receivers, nil
}

// UpdateReceiver updates a receiver's fields
func (s *DirectoryService) UpdateReceiver(ctx context.Context, receiver *models.Receiver) error {
	if err := s.store.UpdateReceiver(ctx, receiver); err != nil {
		return s.translate(err)
	}
	s.invalidateReceivers(ctx)
	return nil
}

// DeleteReceiver removes a receiver, leaving its claims with a dangling
// reference.
func (s *DirectoryService) DeleteReceiver(ctx context.Context, id int64) error {
	if err := s.store.DeleteReceiver(ctx, id); err != nil {
		return s.translate(err)
	}
	s.logger.Info("Receiver deleted", zap.Int64("receiver_id", id))
	s.invalidateReceivers(ctx)
	return nil
}

func (s *DirectoryService) translate(err error) error {
	if errors.Is(err, store.ErrProviderNotFound) || errors.Is(err, store.ErrReceiverNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

func (s *DirectoryService) invalidateProviders(ctx context.Context) {
	if err := s.cache.InvalidateProviders(ctx); err != nil {
		s.logger.Warn("Failed to invalidate provider views", zap.Error(err))
	}
}

func (s *DirectoryService) invalidateReceivers(ctx context.Context) {
	if err := s.cache.InvalidateReceivers(ctx); err != nil {
		s.logger.Warn("Failed to invalidate receiver views", zap.Error(err))
	}
}
