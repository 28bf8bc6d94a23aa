package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lawndlwd/ai-code-reviewer/internal/review"
	"github.com/lawndlwd/ai-code-reviewer/internal/server/handler"
	"github.com/lawndlwd/ai-code-reviewer/internal/stats"
)

// NewRouter configures the HTTP routes and middleware stack.
func NewRouter(analyzer *stats.Analyzer, reviewer *review.Reviewer, logger *slog.Logger) (*chi.Mux, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	page, err := handler.NewPageHandler(analyzer, reviewer, logger)
	if err != nil {
		return nil, err
	}
	r.Get("/", page.Show)
	r.Post("/review", page.Submit)

	r.Route("/api/v1", func(r chi.Router) {
		api := handler.NewAPIHandler(analyzer, reviewer, logger)
		r.Post("/stats", api.Stats)
		r.Post("/review", api.Review)
	})

	return r, nil
}
