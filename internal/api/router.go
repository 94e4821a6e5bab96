// Package api serves milestone views over HTTP: JSON state and frames, and
// rendered SVG and PNG images.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/clive/milestones/internal/view"
)

// Options holds the router settings that are not per-view.
type Options struct {
	APIKey     string
	CORSOrigin string
	Frames     Frames
}

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(reg *view.Registry, opts Options, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on ALL routes including /health)
	r.Use(CORS(opts.CORSOrigin))
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(reg)
	viewH := NewViewHandler(reg, opts.Frames)

	// Unauthenticated routes
	r.Get("/health", healthH.Health)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(opts.APIKey))

		r.Route("/views", func(r chi.Router) {
			r.Get("/", viewH.List)
			r.Post("/", viewH.Create)
			r.Get("/{id}", viewH.Get)
			r.Delete("/{id}", viewH.Delete)
			r.Put("/{id}/milestones", viewH.SetMilestones)
			r.Put("/{id}/progress", viewH.SetProgress)
			r.Post("/{id}/animate", viewH.Animate)
			r.Get("/{id}/frame.svg", viewH.SVG)
			r.Get("/{id}/frame.png", viewH.PNG)
		})
	})

	return r
}
