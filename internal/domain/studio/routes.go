package studio

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns studio router. The dashboard endpoint is injected so
// the stats domain owns its aggregates.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler, dashboard http.HandlerFunc) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Get("/{id}/dashboard", dashboard)

	return r
}
