package postgres

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"devevents/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConn_MissingConnString(t *testing.T) {
	t.Parallel()

	s := New("")

	_, err := s.conn(context.Background())
	require.ErrorIs(t, err, storage.ErrConnStringNotSet)
}

func TestConn_SingleFlight(t *testing.T) {
	t.Parallel()

	db, _, err := sqlmock.New()
	require.NoError(t, err)

	var attempts int32

	s := &Storage{
		dsn: "postgres://test",
		open: func(_ string) (*sql.DB, error) {
			atomic.AddInt32(&attempts, 1)
			time.Sleep(50 * time.Millisecond) // keep the attempt in flight
			return db, nil
		},
	}

	const callers = 20

	var wg sync.WaitGroup
	results := make([]*sql.DB, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.conn(context.Background())
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts), "concurrent first callers must share one attempt")

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, db, results[i])
	}

	// a later call returns the cached handle without a new attempt
	got, err := s.conn(context.Background())
	require.NoError(t, err)
	assert.Same(t, db, got)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestConn_FailedAttemptRetries(t *testing.T) {
	t.Parallel()

	db, _, err := sqlmock.New()
	require.NoError(t, err)

	dialErr := errors.New("connection refused")

	var attempts int32
	s := &Storage{
		dsn: "postgres://test",
		open: func(_ string) (*sql.DB, error) {
			if atomic.AddInt32(&attempts, 1) == 1 {
				return nil, dialErr
			}
			return db, nil
		},
	}

	_, err = s.conn(context.Background())
	require.ErrorIs(t, err, dialErr)

	// the failed attempt is cleared, so the next call dials again
	got, err := s.conn(context.Background())
	require.NoError(t, err)
	assert.Same(t, db, got)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestConn_ContextCanceledWhileDialing(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})

	s := &Storage{
		dsn: "postgres://test",
		open: func(_ string) (*sql.DB, error) {
			<-release
			return nil, errors.New("late failure")
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.conn(ctx)
	require.ErrorIs(t, err, context.Canceled)

	close(release)
}
