package validation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"devevents/internal/models"
)

// ErrEventMissing rejects a booking whose referenced event does not exist.
var ErrEventMissing = errors.New("cannot create booking: referenced event does not exist")

// Deliberately permissive local@domain.tld shape, not a full RFC 5322 check.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EventChecker reports whether an event with the given id exists.
type EventChecker interface {
	EventExists(ctx context.Context, eventID int64) (bool, error)
}

// PrepareBooking normalizes and validates a booking in place before it is
// written: the email is trimmed and lowercased and checked for shape, then
// the referenced event is looked up. A lookup failure propagates as-is
// rather than being reported as a validation error.
func PrepareBooking(ctx context.Context, b *models.Booking, events EventChecker) error {
	b.Email = strings.ToLower(strings.TrimSpace(b.Email))

	if b.Email == "" {
		return &FieldError{Field: "email", Message: "email is required"}
	}
	if !emailPattern.MatchString(b.Email) {
		return &FieldError{Field: "email", Message: "email must be a valid email address"}
	}

	exists, err := events.EventExists(ctx, b.EventID)
	if err != nil {
		return fmt.Errorf("check referenced event: %w", err)
	}
	if !exists {
		return ErrEventMissing
	}

	return nil
}
