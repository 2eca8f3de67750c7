package store

import (
	"context"
	"database/sql"
	"errors"

	"foodshare/internal/models"
)

// ErrProviderNotFound is returned when a provider row does not exist.
var ErrProviderNotFound = errors.New("provider not found")

// ErrReceiverNotFound is returned when a receiver row does not exist.
var ErrReceiverNotFound = errors.New("receiver not found")

// CreateProvider creates a new provider
func (s *Store) CreateProvider(ctx context.Context, provider *models.Provider) error {
	query := `
		INSERT INTO providers (name, type, address, city, contact)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, provider, query,
		provider.Name, provider.Type, provider.Address, provider.City, provider.Contact)
}

// GetProviderByID retrieves a provider by ID
func (s *Store) GetProviderByID(ctx context.Context, id int64) (*models.Provider, error) {
	var provider models.Provider
	err := s.db.GetContext(ctx, &provider, "SELECT * FROM providers WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &provider, nil
}

// GetProviders retrieves all providers
func (s *Store) GetProviders(ctx context.Context) ([]models.Provider, error) {
	var providers []models.Provider
	err := s.db.SelectContext(ctx, &providers, "SELECT * FROM providers ORDER BY id")
	return providers, err
}

// UpdateProvider updates a provider's fields
func (s *Store) UpdateProvider(ctx context.Context, provider *models.Provider) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE providers
		SET name = $1, type = $2, address = $3, city = $4, contact = $5
		WHERE id = $6`,
		provider.Name, provider.Type, provider.Address, provider.City,
		provider.Contact, provider.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProviderNotFound
	}
	return nil
}

// DeleteProvider removes a provider. Listings keep their provider_id;
// the dangling reference is tolerated by readers.
func (s *Store) DeleteProvider(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM providers WHERE id = $1", id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProviderNotFound
	}
	return nil
}
