package postgres

import (
	"context"
	"errors"
	"fmt"

	"devevents/internal/models"
	"devevents/internal/storage"

	"github.com/lib/pq"
)

func (s *Storage) CreateBooking(ctx context.Context, b *models.Booking) (int64, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO bookings (event_id, email)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err = db.QueryRowContext(ctx, query, b.EventID, b.Email).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		// The explicit existence check runs before the insert; the foreign
		// key closes the remaining race window.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return 0, storage.ErrEventNotFound
		}
		return 0, fmt.Errorf("failed to create booking: %w", err)
	}

	return b.ID, nil
}

func (s *Storage) GetBookingsByEvent(ctx context.Context, eventID int64) ([]models.Booking, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, event_id, email, created_at, updated_at
		FROM bookings
		WHERE event_id = $1
		ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err = rows.Scan(&b.ID, &b.EventID, &b.Email, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}

		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}
