package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the API under /api, the callback page and the health check.
func NewRouter(h *Handler, callback http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if callback != nil {
		r.Method(http.MethodGet, "/callback", callback)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/templates", func(r chi.Router) {
			r.Get("/list", h.ListTemplates)
			r.Get("/get", h.GetTemplate)
		})
		r.Route("/updates", func(r chi.Router) {
			r.Get("/version", h.GetVersion)
			r.Get("/check", h.CheckUpdates)
		})
		r.Route("/settings", func(r chi.Router) {
			r.Get("/system", h.GetSystemSettings)
			r.Put("/system", h.UpdateSystemSettings)
		})
	})

	return r
}
