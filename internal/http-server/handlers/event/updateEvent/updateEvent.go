package updateEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"devevents/internal/lib/api/response"
	"devevents/internal/lib/logger/sl"
	"devevents/internal/models"
	"devevents/internal/storage"
	"devevents/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type EventRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Overview    string   `json:"overview" validate:"required"`
	Image       string   `json:"image" validate:"required"`
	Venue       string   `json:"venue" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	Time        string   `json:"time" validate:"required"`
	Mode        string   `json:"mode" validate:"required"`
	Audience    string   `json:"audience" validate:"required"`
	Agenda      []string `json:"agenda" validate:"required,min=1"`
	Organizer   string   `json:"organizer" validate:"required"`
	Tags        []string `json:"tags" validate:"required,min=1"`
}

type EventResponse struct {
	response.Response
	Slug string `json:"slug"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventUpdater
type EventUpdater interface {
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	UpdateEvent(ctx context.Context, e *models.Event) error
}

func New(log *slog.Logger, updater EventUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.updateEvent.New"

		log := log.With(slog.String("op", op))

		eventID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			log.Error("invalid event id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id format"))

			return
		}

		log = log.With(slog.Int64("event_id", eventID))

		var req EventRequest

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		event, err := updater.GetEvent(r.Context(), eventID)
		if err != nil {
			if errors.Is(err, storage.ErrEventNotFound) {
				log.Info("event not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))

				return
			}

			log.Error("failed to get event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update event"))

			return
		}

		// the slug is re-derived only when this write changes the title
		titleChanged := req.Title != event.Title

		event.Title = req.Title
		event.Description = req.Description
		event.Overview = req.Overview
		event.Image = req.Image
		event.Venue = req.Venue
		event.Location = req.Location
		event.Date = req.Date
		event.Time = req.Time
		event.Mode = req.Mode
		event.Audience = req.Audience
		event.Agenda = req.Agenda
		event.Organizer = req.Organizer
		event.Tags = req.Tags

		if err = validation.PrepareEvent(event, titleChanged); err != nil {
			log.Error("event validation failed", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))

			return
		}

		if err = updater.UpdateEvent(r.Context(), event); err != nil {
			switch {
			case errors.Is(err, storage.ErrSlugExists):
				log.Info("slug already taken", slog.String("slug", event.Slug))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("event with the same slug already exists"))
			case errors.Is(err, storage.ErrEventNotFound):
				log.Info("event not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			default:
				log.Error("failed to update event", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to update event"))
			}

			return
		}

		log.Info("event updated", slog.String("slug", event.Slug))

		responseOK(w, r, event.Slug)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, slug string) {
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		Slug:     slug,
	})
}
