package createBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"devevents/internal/lib/api/response"
	"devevents/internal/lib/logger/sl"
	"devevents/internal/models"
	"devevents/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type BookingRequest struct {
	Email string `json:"email"`
}

type BookingResponse struct {
	response.Response
	BookingID int64 `json:"booking_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingSaver
type BookingSaver interface {
	EventExists(ctx context.Context, eventID int64) (bool, error)
	CreateBooking(ctx context.Context, b *models.Booking) (int64, error)
}

func New(log *slog.Logger, saver BookingSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createBooking.New"

		log := log.With(slog.String("op", op))

		eventID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			log.Error("invalid event id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id format"))

			return
		}

		log = log.With(slog.Int64("event_id", eventID))

		var req BookingRequest

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		booking := &models.Booking{
			EventID: eventID,
			Email:   req.Email,
		}

		// email shape first, then the referenced event; a failed lookup is
		// an infrastructure error, not a rejected write
		if err = validation.PrepareBooking(r.Context(), booking, saver); err != nil {
			var fieldErr *validation.FieldError

			switch {
			case errors.As(err, &fieldErr):
				log.Error("booking validation failed", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(err.Error()))
			case errors.Is(err, validation.ErrEventMissing):
				log.Info("referenced event does not exist")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error(validation.ErrEventMissing.Error()))
			default:
				log.Error("failed to check referenced event", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to create booking"))
			}

			return
		}

		bookingID, err := saver.CreateBooking(r.Context(), booking)
		if err != nil {
			log.Error("failed to create booking", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create booking"))

			return
		}

		log.Info("booking created", slog.Int64("id", bookingID))

		responseOK(w, r, bookingID)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, bookingID int64) {
	render.JSON(w, r, BookingResponse{
		Response:  response.OK(),
		BookingID: bookingID,
	})
}
