package store

import (
	"context"
	"database/sql"

	"foodshare/internal/models"
)

// CreateReceiver creates a new receiver
func (s *Store) CreateReceiver(ctx context.Context, receiver *models.Receiver) error {
	query := `
		INSERT INTO receivers (name, type, city, contact)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, receiver, query,
		receiver.Name, receiver.Type, receiver.City, receiver.Contact)
}

// GetReceiverByID retrieves a receiver by ID
func (s *Store) GetReceiverByID(ctx context.Context, id int64) (*models.Receiver, error) {
	var receiver models.Receiver
	err := s.db.GetContext(ctx, &receiver, "SELECT * FROM receivers WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrReceiverNotFound
	}
	if err != nil {
		return nil, err
	}
	return &receiver, nil
}

// GetReceivers retrieves all receivers
func (s *Store) GetReceivers(ctx context.Context) ([]models.Receiver, error) {
	var receivers []models.Receiver
	err := s.db.SelectContext(ctx, &receivers, "SELECT * FROM receivers ORDER BY id")
	return receivers, err
}

// UpdateReceiver updates a receiver's fields
func (s *Store) UpdateReceiver(ctx context.Context, receiver *models.Receiver) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE receivers
		SET name = $1, type = $2, city = $3, contact = $4
		WHERE id = $5`,
		receiver.Name, receiver.Type, receiver.City, receiver.Contact, receiver.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrReceiverNotFound
	}
	return nil
}

// DeleteReceiver removes a receiver. Claims keep their receiver_id;
// the dangling reference is tolerated by readers.
func (s *Store) DeleteReceiver(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM receivers WHERE id = $1", id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrReceiverNotFound
	}
	return nil
}
