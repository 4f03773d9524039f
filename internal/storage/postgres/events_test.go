package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"devevents/internal/models"
	"devevents/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() *models.Event {
	return &models.Event{
		Title:       "GopherCon 2025",
		Slug:        "gophercon-2025",
		Description: "The biggest Go conference",
		Overview:    "Three days of talks",
		Image:       "/images/gophercon.png",
		Venue:       "Moscone Center",
		Location:    "San Francisco, CA",
		Date:        "2025-11-12",
		Time:        "09:30",
		Mode:        "offline",
		Audience:    "Go developers",
		Agenda:      []string{"Registration", "Keynote"},
		Organizer:   "Gopher Events Inc",
		Tags:        []string{"go", "conference"},
	}
}

func eventRow(e *models.Event, id int64, ts time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "slug", "description", "overview", "image", "venue", "location",
		"date", "time", "mode", "audience", "agenda", "organizer", "tags", "created_at", "updated_at",
	}).AddRow(
		id, e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue, e.Location,
		e.Date, e.Time, e.Mode, e.Audience, []byte(`{Registration,Keynote}`),
		e.Organizer, []byte(`{go,conference}`), ts, ts,
	)
}

func TestCreateEvent(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock, e *models.Event)
		wantID  int64
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock, e *models.Event) {
				mock.ExpectQuery(`INSERT INTO events`).
					WithArgs(
						e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue,
						e.Location, e.Date, e.Time, e.Mode, e.Audience, pq.Array(e.Agenda),
						e.Organizer, pq.Array(e.Tags),
					).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
						AddRow(int64(7), now, now))
			},
			wantID: 7,
		},
		{
			name: "duplicate slug",
			mock: func(mock sqlmock.Sqlmock, _ *models.Event) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: storage.ErrSlugExists,
		},
		{
			name: "infrastructure failure",
			mock: func(mock sqlmock.Sqlmock, _ *models.Event) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			e := testEvent()
			tc.mock(mock, e)

			s := NewWithDB(db)

			id, err := s.CreateEvent(context.Background(), e)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantID, id)
			assert.Equal(t, tc.wantID, e.ID)
			assert.Equal(t, now, e.CreatedAt)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpdateEvent(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events`).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: storage.ErrEventNotFound,
		},
		{
			name: "duplicate slug",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: storage.ErrSlugExists,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tc.mock(mock)

			e := testEvent()
			e.ID = 7

			s := NewWithDB(db)

			err = s.UpdateEvent(context.Background(), e)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetEventBySlug(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		want := testEvent()
		mock.ExpectQuery(`SELECT (.+) FROM events WHERE slug`).
			WithArgs("gophercon-2025").
			WillReturnRows(eventRow(want, 7, now))

		s := NewWithDB(db)

		got, err := s.GetEventBySlug(context.Background(), "gophercon-2025")
		require.NoError(t, err)

		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, want.Title, got.Title)
		assert.Equal(t, []string{"Registration", "Keynote"}, got.Agenda)
		assert.Equal(t, []string{"go", "conference"}, got.Tags)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM events WHERE slug`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		s := NewWithDB(db)

		_, err = s.GetEventBySlug(context.Background(), "missing")
		require.ErrorIs(t, err, storage.ErrEventNotFound)
	})
}

func TestGetAllEvents(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := testEvent()

	mock.ExpectQuery(`SELECT (.+) FROM events ORDER BY date, time`).
		WillReturnRows(eventRow(e, 1, now))

	s := NewWithDB(db)

	events, err := s.GetAllEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, e.Slug, events[0].Slug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventExists(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		exists bool
	}{
		{name: "exists", exists: true},
		{name: "missing", exists: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs(int64(42)).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tc.exists))

			s := NewWithDB(db)

			got, err := s.EventExists(context.Background(), 42)
			require.NoError(t, err)
			assert.Equal(t, tc.exists, got)
		})
	}
}
