package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"devevents/internal/storage"

	_ "github.com/lib/pq"
)

// Storage holds the single shared database handle for the process. The
// handle is opened lazily on first use: concurrent first callers share one
// in-flight attempt instead of racing to open several connections, and a
// live handle is returned immediately on later calls. A failed attempt is
// cleared so the next call can retry.
type Storage struct {
	dsn string

	mu      sync.Mutex
	db      *sql.DB
	attempt *connAttempt

	open func(dsn string) (*sql.DB, error)
}

type connAttempt struct {
	done chan struct{}
	db   *sql.DB
	err  error
}

// New returns a Storage that will connect to dsn on first use. An empty dsn
// is not an error until a database operation actually runs.
func New(dsn string) *Storage {
	return &Storage{
		dsn:  dsn,
		open: openDB,
	}
}

// NewWithDB wraps an already-open handle. Used by tests.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return db, nil
}

// conn returns the shared handle, establishing it if needed. Waiting on an
// in-flight attempt honors ctx cancellation; the attempt itself keeps
// running so other callers can still pick up its result.
func (s *Storage) conn(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()

	if s.db != nil {
		db := s.db
		s.mu.Unlock()
		return db, nil
	}

	if s.dsn == "" {
		s.mu.Unlock()
		return nil, storage.ErrConnStringNotSet
	}

	attempt := s.attempt
	if attempt == nil {
		attempt = &connAttempt{done: make(chan struct{})}
		s.attempt = attempt

		go func() {
			attempt.db, attempt.err = s.open(s.dsn)
			close(attempt.done)
		}()
	}

	s.mu.Unlock()

	select {
	case <-attempt.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if attempt.err != nil {
		if s.attempt == attempt {
			s.attempt = nil
		}
		return nil, attempt.err
	}

	s.db = attempt.db
	s.attempt = nil

	return s.db, nil
}

func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Close()
}
