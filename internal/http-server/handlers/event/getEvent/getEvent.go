package getEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"devevents/internal/lib/api/response"
	"devevents/internal/lib/logger/sl"
	"devevents/internal/models"
	"devevents/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type EventInfoResponse struct {
	response.Response
	Event    *models.Event    `json:"event"`
	Bookings []models.Booking `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventProvider
type EventProvider interface {
	GetEventWithBookings(ctx context.Context, slug string) (*models.Event, []models.Booking, error)
}

func New(log *slog.Logger, provider EventProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEvent.New"

		log := log.With(slog.String("op", op))

		slug := chi.URLParam(r, "slug")
		if slug == "" {
			log.Error("event slug is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event slug is required"))

			return
		}

		log = log.With(slog.String("slug", slug))

		event, bookings, err := provider.GetEventWithBookings(r.Context(), slug)
		if err != nil {
			if errors.Is(err, storage.ErrEventNotFound) {
				log.Info("event not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))

				return
			}

			log.Error("failed to get event information", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get event information"))

			return
		}

		log.Info("event info retrieved", slog.Int("bookings", len(bookings)))

		responseOK(w, r, event, bookings)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, event *models.Event, bookings []models.Booking) {
	render.JSON(w, r, EventInfoResponse{
		Response: response.OK(),
		Event:    event,
		Bookings: bookings,
	})
}
