package store

import (
	"context"
	"database/sql"
	"fmt"

	"foodshare/internal/models"
)

// CreateListing creates a new food listing
func (s *Store) CreateListing(ctx context.Context, listing *models.Listing) error {
	query := `
		INSERT INTO listings (food_name, quantity, expiry_date, provider_id, provider_type, city, food_type, meal_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, listing, query,
		listing.FoodName, listing.Quantity, listing.ExpiryDate, listing.ProviderID,
		listing.ProviderType, listing.City, listing.FoodType, listing.MealType)
}

// GetListingByID retrieves a listing by ID
func (s *Store) GetListingByID(ctx context.Context, id int64) (*models.Listing, error) {
	var listing models.Listing
	err := s.db.GetContext(ctx, &listing, "SELECT * FROM listings WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetListings retrieves all listings ordered by expiry
func (s *Store) GetListings(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	err := s.db.SelectContext(ctx, &listings,
		"SELECT * FROM listings ORDER BY expiry_date ASC, id DESC")
	return listings, err
}

// GetJoinedListings retrieves listings with provider contact details.
// LEFT JOIN: a listing whose provider was deleted still comes back,
// with null provider columns.
func (s *Store) GetJoinedListings(ctx context.Context) ([]models.JoinedListing, error) {
	query := `
		SELECT l.id, l.food_name, l.quantity, l.expiry_date, l.city,
		       l.food_type, l.meal_type,
		       p.id AS provider_id, p.name AS provider_name, p.type AS provider_type,
		       p.contact, p.address
		FROM listings l
		LEFT JOIN providers p ON l.provider_id = p.id
		ORDER BY l.expiry_date ASC, l.id DESC`

	var listings []models.JoinedListing
	err := s.db.SelectContext(ctx, &listings, query)
	return listings, err
}

// UpdateListing updates a listing's editable fields. Quantity edits here
// are administrative overrides, not claims.
func (s *Store) UpdateListing(ctx context.Context, listing *models.Listing) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE listings
		SET food_name = $1, quantity = $2, expiry_date = $3, city = $4, food_type = $5, meal_type = $6
		WHERE id = $7`,
		listing.FoodName, listing.Quantity, listing.ExpiryDate, listing.City,
		listing.FoodType, listing.MealType, listing.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrListingNotFound
	}
	return nil
}

// DeleteListing removes a listing row. Claims referencing it must be
// removed beforehand; the ordering is enforced by the listing service.
func (s *Store) DeleteListing(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM listings WHERE id = $1", id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrListingNotFound
	}
	return nil
}

// DeleteClaimsByListingID removes all claims referencing a listing and
// returns how many were removed.
func (s *Store) DeleteClaimsByListingID(ctx context.Context, listingID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM claims WHERE listing_id = $1", listingID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete claims for listing %d: %w", listingID, err)
	}
	return res.RowsAffected()
}
