package validation

import (
	"context"
	"errors"
	"testing"

	"devevents/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventChecker struct {
	exists bool
	err    error
	calls  int
}

func (f *fakeEventChecker) EventExists(_ context.Context, _ int64) (bool, error) {
	f.calls++
	return f.exists, f.err
}

func TestPrepareBooking_Success(t *testing.T) {
	t.Parallel()

	checker := &fakeEventChecker{exists: true}
	b := &models.Booking{EventID: 42, Email: "  Gopher@Example.COM "}

	err := PrepareBooking(context.Background(), b, checker)
	require.NoError(t, err)

	assert.Equal(t, "gopher@example.com", b.Email, "email must be trimmed and lowercased")
	assert.Equal(t, 1, checker.calls)
}

func TestPrepareBooking_EmailShape(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		email   string
		wantErr string
	}{
		{name: "empty", email: "", wantErr: "email is required"},
		{name: "whitespace only", email: "   ", wantErr: "email is required"},
		{name: "no at sign", email: "gopher.example.com", wantErr: "email must be a valid email address"},
		{name: "no tld", email: "gopher@example", wantErr: "email must be a valid email address"},
		{name: "embedded space", email: "go pher@example.com", wantErr: "email must be a valid email address"},
		{name: "double at", email: "gopher@@example.com", wantErr: "email must be a valid email address"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			checker := &fakeEventChecker{exists: true}
			b := &models.Booking{EventID: 1, Email: tc.email}

			err := PrepareBooking(context.Background(), b, checker)
			require.Error(t, err)

			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, "email", fieldErr.Field)
			assert.EqualError(t, err, tc.wantErr)

			assert.Zero(t, checker.calls, "existence lookup must not run after a failed email check")
		})
	}
}

func TestPrepareBooking_MissingEvent(t *testing.T) {
	t.Parallel()

	checker := &fakeEventChecker{exists: false}
	b := &models.Booking{EventID: 404, Email: "gopher@example.com"}

	err := PrepareBooking(context.Background(), b, checker)
	require.ErrorIs(t, err, ErrEventMissing)
}

func TestPrepareBooking_LookupFailurePropagates(t *testing.T) {
	t.Parallel()

	lookupErr := errors.New("storage unavailable")
	checker := &fakeEventChecker{err: lookupErr}
	b := &models.Booking{EventID: 1, Email: "gopher@example.com"}

	err := PrepareBooking(context.Background(), b, checker)
	require.ErrorIs(t, err, lookupErr)
	require.NotErrorIs(t, err, ErrEventMissing)

	var fieldErr *FieldError
	assert.False(t, errors.As(err, &fieldErr), "infrastructure failure must not be a validation error")
}
