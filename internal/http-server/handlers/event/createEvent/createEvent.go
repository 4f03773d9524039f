package createEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"devevents/internal/lib/api/response"
	"devevents/internal/lib/logger/sl"
	"devevents/internal/models"
	"devevents/internal/storage"
	"devevents/internal/validation"

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
	EventID int64  `json:"event_id"`
	Slug    string `json:"slug"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventSaver
type EventSaver interface {
	CreateEvent(ctx context.Context, e *models.Event) (int64, error)
}

func New(log *slog.Logger, saver EventSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log := log.With(slog.String("op", op))

		var req EventRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		log.Info("request body decoded", slog.String("title", req.Title))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		event := &models.Event{
			Title:       req.Title,
			Description: req.Description,
			Overview:    req.Overview,
			Image:       req.Image,
			Venue:       req.Venue,
			Location:    req.Location,
			Date:        req.Date,
			Time:        req.Time,
			Mode:        req.Mode,
			Audience:    req.Audience,
			Agenda:      req.Agenda,
			Organizer:   req.Organizer,
			Tags:        req.Tags,
		}

		if err = validation.PrepareEvent(event, true); err != nil {
			log.Error("event validation failed", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))

			return
		}

		eventID, err := saver.CreateEvent(r.Context(), event)
		if err != nil {
			if errors.Is(err, storage.ErrSlugExists) {
				log.Info("slug already taken", slog.String("slug", event.Slug))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("event with the same slug already exists"))

				return
			}

			log.Error("failed to add event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add event"))

			return
		}

		log.Info("event added", slog.Int64("id", eventID), slog.String("slug", event.Slug))

		responseOK(w, r, eventID, event.Slug)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, eventID int64, slug string) {
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		EventID:  eventID,
		Slug:     slug,
	})
}
