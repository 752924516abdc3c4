package httpapi

import (
	"time"

	"github.com/dmitrijs2005/vendorrisk/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the review API. A positive timeout bounds every request.
func NewRouter(h *Handler, logger logging.Logger, timeout time.Duration) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(Recovery(logger))
	if timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/assessments", h.Submit)
		r.Get("/assessments", h.List)
		r.Get("/assessments/{id}", h.Get)
		r.Put("/assessments/{id}/status", h.UpdateStatus)
		r.Get("/assessments/{id}/documents/{name}", h.Document)
	})

	return r
}
