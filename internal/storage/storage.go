package storage

import "errors"

var (
	// ErrConnStringNotSet is returned by the first database operation when
	// the connection string was absent from the configuration.
	ErrConnStringNotSet = errors.New("connection string not set")

	ErrEventNotFound = errors.New("event not found")

	// ErrSlugExists maps the storage layer's unique constraint on the event
	// slug to a rejected write.
	ErrSlugExists = errors.New("event with the same slug already exists")
)
