package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"devevents/internal/lib/slugify"
	"devevents/internal/models"
)

// dateLayouts are tried in order when normalizing a user-supplied date.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

var timePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// PrepareEvent validates and normalizes an event in place before it is
// written. Steps run in a fixed order and the first failure aborts the
// write: required string fields, non-empty agenda and tags, slug derivation
// (only when the title changed in this write), date normalization to
// YYYY-MM-DD, time normalization to zero-padded 24-hour HH:MM.
func PrepareEvent(e *models.Event, titleChanged bool) error {
	required := []struct {
		name  string
		value *string
	}{
		{"title", &e.Title},
		{"description", &e.Description},
		{"overview", &e.Overview},
		{"image", &e.Image},
		{"venue", &e.Venue},
		{"location", &e.Location},
		{"date", &e.Date},
		{"time", &e.Time},
		{"mode", &e.Mode},
		{"audience", &e.Audience},
		{"organizer", &e.Organizer},
	}

	for _, f := range required {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return fieldRequired(f.name)
		}
	}

	if err := checkStringList("agenda", e.Agenda); err != nil {
		return err
	}
	if err := checkStringList("tags", e.Tags); err != nil {
		return err
	}

	if titleChanged {
		e.Slug = slugify.Make(e.Title)
	}

	date, err := NormalizeDate(e.Date)
	if err != nil {
		return err
	}
	e.Date = date

	tm, err := NormalizeTime(e.Time)
	if err != nil {
		return err
	}
	e.Time = tm

	return nil
}

func checkStringList(field string, values []string) error {
	if len(values) == 0 {
		return &FieldError{
			Field:   field,
			Message: field + " must be a non-empty list of strings",
		}
	}

	for i, v := range values {
		values[i] = strings.TrimSpace(v)
		if values[i] == "" {
			return &FieldError{
				Field:   field,
				Message: field + " must not contain empty entries",
			}
		}
	}

	return nil
}

// NormalizeDate parses a calendar date in any supported layout and returns
// it as YYYY-MM-DD, dropping any time-of-day or offset.
func NormalizeDate(s string) (string, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}

	return "", &FieldError{Field: "date", Message: "invalid event date"}
}

// NormalizeTime accepts H:MM or HH:MM and returns a zero-padded 24-hour
// HH:MM string.
func NormalizeTime(s string) (string, error) {
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return "", &FieldError{Field: "time", Message: "time must be in HH:MM format"}
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])

	if hour > 23 || minute > 59 {
		return "", &FieldError{Field: "time", Message: "time must be a valid 24-hour time"}
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
