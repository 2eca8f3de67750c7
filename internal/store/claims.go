package store

import (
	"context"
	"database/sql"
	"errors"

	"foodshare/internal/models"
)

// ErrClaimNotFound is returned when a claim row does not exist.
var ErrClaimNotFound = errors.New("claim not found")

// GetClaimByID retrieves a claim by ID
func (s *Store) GetClaimByID(ctx context.Context, id int64) (*models.Claim, error) {
	var claim models.Claim
	err := s.db.GetContext(ctx, &claim, "SELECT * FROM claims WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrClaimNotFound
	}
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// GetClaims retrieves all claims, newest first
func (s *Store) GetClaims(ctx context.Context) ([]models.Claim, error) {
	var claims []models.Claim
	err := s.db.SelectContext(ctx, &claims, "SELECT * FROM claims ORDER BY created_at DESC, id DESC")
	return claims, err
}

// GetClaimsByListingID retrieves claims for a listing
func (s *Store) GetClaimsByListingID(ctx context.Context, listingID int64) ([]models.Claim, error) {
	var claims []models.Claim
	err := s.db.SelectContext(ctx, &claims,
		"SELECT * FROM claims WHERE listing_id = $1 ORDER BY created_at DESC", listingID)
	return claims, err
}

// GetClaimsByReceiverID retrieves claims made by a receiver
func (s *Store) GetClaimsByReceiverID(ctx context.Context, receiverID int64) ([]models.Claim, error) {
	var claims []models.Claim
	err := s.db.SelectContext(ctx, &claims,
		"SELECT * FROM claims WHERE receiver_id = $1 ORDER BY created_at DESC", receiverID)
	return claims, err
}

// UpdateClaimStatus sets a claim's status. No transition table: any of
// the known statuses may be set at any time.
func (s *Store) UpdateClaimStatus(ctx context.Context, claimID int64, status string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE claims SET status = $1 WHERE id = $2", status, claimID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrClaimNotFound
	}
	return nil
}

// DeleteClaim removes a claim. The quantity it reserved is not returned
// to the listing.
func (s *Store) DeleteClaim(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM claims WHERE id = $1", id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrClaimNotFound
	}
	return nil
}
