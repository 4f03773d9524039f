package home

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"devevents/internal/lib/logger/sl"
	"devevents/internal/models"
)

//go:embed index.gohtml
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "index.gohtml"))

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsGetter
type EventsGetter interface {
	GetAllEvents(ctx context.Context) ([]models.Event, error)
}

// New renders the landing page with the current event list.
func New(log *slog.Logger, eventsGetter EventsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.home.New"

		log := log.With(slog.String("op", op))

		events, err := eventsGetter.GetAllEvents(r.Context())
		if err != nil {
			log.Error("failed to get events", sl.Err(err))
			http.Error(w, "failed to load events", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		if err = indexTmpl.Execute(w, map[string]any{"Events": events}); err != nil {
			log.Error("failed to render landing page", sl.Err(err))
		}
	}
}
