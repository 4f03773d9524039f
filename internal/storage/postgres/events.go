package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"devevents/internal/models"
	"devevents/internal/storage"

	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func (s *Storage) CreateEvent(ctx context.Context, e *models.Event) (int64, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO events (title, slug, description, overview, image, venue, location,
		                    date, time, mode, audience, agenda, organizer, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at`

	err = db.QueryRowContext(ctx, query,
		e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue, e.Location,
		e.Date, e.Time, e.Mode, e.Audience, pq.Array(e.Agenda), e.Organizer, pq.Array(e.Tags),
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return 0, storage.ErrSlugExists
		}
		return 0, fmt.Errorf("failed to create event: %w", err)
	}

	return e.ID, nil
}

func (s *Storage) UpdateEvent(ctx context.Context, e *models.Event) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE events
		SET title = $1, slug = $2, description = $3, overview = $4, image = $5,
		    venue = $6, location = $7, date = $8, time = $9, mode = $10,
		    audience = $11, agenda = $12, organizer = $13, tags = $14,
		    updated_at = NOW()
		WHERE id = $15`

	res, err := db.ExecContext(ctx, query,
		e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue, e.Location,
		e.Date, e.Time, e.Mode, e.Audience, pq.Array(e.Agenda), e.Organizer, pq.Array(e.Tags),
		e.ID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return storage.ErrSlugExists
		}
		return fmt.Errorf("failed to update event: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if affected == 0 {
		return storage.ErrEventNotFound
	}

	return nil
}

const eventColumns = `id, title, slug, description, overview, image, venue, location, date, time, mode, audience, agenda, organizer, tags, created_at, updated_at`

func scanEvent(row *sql.Row) (*models.Event, error) {
	var e models.Event

	err := row.Scan(
		&e.ID, &e.Title, &e.Slug, &e.Description, &e.Overview, &e.Image, &e.Venue,
		&e.Location, &e.Date, &e.Time, &e.Mode, &e.Audience, pq.Array(&e.Agenda),
		&e.Organizer, pq.Array(&e.Tags), &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &e, nil
}

func (s *Storage) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	return scanEvent(db.QueryRowContext(ctx, query, id))
}

func (s *Storage) GetEventBySlug(ctx context.Context, slug string) (*models.Event, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`

	return scanEvent(db.QueryRowContext(ctx, query, slug))
}

func (s *Storage) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date, time`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		err = rows.Scan(
			&e.ID, &e.Title, &e.Slug, &e.Description, &e.Overview, &e.Image, &e.Venue,
			&e.Location, &e.Date, &e.Time, &e.Mode, &e.Audience, pq.Array(&e.Agenda),
			&e.Organizer, pq.Array(&e.Tags), &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// GetEventWithBookings resolves an event by slug together with its bookings,
// newest first.
func (s *Storage) GetEventWithBookings(ctx context.Context, slug string) (*models.Event, []models.Booking, error) {
	event, err := s.GetEventBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	bookings, err := s.GetBookingsByEvent(ctx, event.ID)
	if err != nil {
		return nil, nil, err
	}

	return event, bookings, nil
}

func (s *Storage) EventExists(ctx context.Context, id int64) (bool, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return false, err
	}

	query := `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`

	var exists bool
	if err = db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check event existence: %w", err)
	}

	return exists, nil
}
