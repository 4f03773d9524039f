// Package validation holds the normalization and integrity checks that run
// on the write path, immediately before a record reaches storage.
package validation

// FieldError reports a single record field that failed a presence, format
// or non-emptiness rule. The write is rejected and nothing is committed.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func fieldRequired(field string) *FieldError {
	return &FieldError{
		Field:   field,
		Message: field + " is required and must be a non-empty string",
	}
}
