package models

import "time"

// Booking is an email sign-up for an event. Email is stored trimmed and
// lowercased; the referenced event must exist when the booking is created.
type Booking struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
