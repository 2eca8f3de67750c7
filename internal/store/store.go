package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"foodshare/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// ErrListingNotFound is returned when a claim targets a listing that
// does not exist.
var ErrListingNotFound = errors.New("listing not found")

// InsufficientQuantityError is returned when a claim requests more than
// the listing's remaining quantity. Available carries the quantity seen
// under the row lock.
type InsufficientQuantityError struct {
	Available int
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("insufficient quantity: available=%d", e.Available)
}

type Store struct {
	db          *sqlx.DB
	lockTimeout time.Duration
}

// NewStore creates a new database store
func NewStore(databaseURL string, lockTimeout time.Duration) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, lockTimeout: lockTimeout}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// CreateClaimTx atomically claims quantity from a listing and records the
// claim. The listing row is locked with SELECT ... FOR UPDATE so that the
// read of its quantity and the decrement happen as one serialized step;
// a concurrent claimant blocks until this transaction commits and then
// observes the decremented quantity. Returns the created claim and the
// listing's remaining quantity after the decrement.
func (s *Store) CreateClaimTx(ctx context.Context, listingID, receiverID int64, quantity int) (*models.Claim, int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin claim transaction: %w", err)
	}
	defer tx.Rollback()

	if s.lockTimeout > 0 {
		// Bounded wait on the row lock; a timeout aborts the transaction
		// and surfaces as a lock_not_available error.
		_, err = tx.ExecContext(ctx,
			fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds()))
		if err != nil {
			return nil, 0, fmt.Errorf("failed to set lock timeout: %w", err)
		}
	}

	var available int
	err = tx.GetContext(ctx, &available,
		"SELECT quantity FROM listings WHERE id = $1 FOR UPDATE", listingID)
	if err == sql.ErrNoRows {
		return nil, 0, ErrListingNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to lock listing: %w", err)
	}

	if quantity > available {
		return nil, 0, &InsufficientQuantityError{Available: available}
	}

	claim := &models.Claim{
		ListingID:  listingID,
		ReceiverID: receiverID,
		Quantity:   quantity,
		Status:     models.ClaimStatusPending,
	}
	err = tx.GetContext(ctx, claim, `
		INSERT INTO claims (listing_id, receiver_id, quantity, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		listingID, receiverID, quantity, models.ClaimStatusPending)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to insert claim: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE listings SET quantity = quantity - $1 WHERE id = $2",
		quantity, listingID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decrement listing quantity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit claim transaction: %w", err)
	}

	return claim, available - quantity, nil
}
