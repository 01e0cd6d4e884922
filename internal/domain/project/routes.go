package project

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns project router. Nested resource routers (categories,
// images) and the stats endpoint are mounted under /{projectID}.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler, categories, images chi.Router, stats http.HandlerFunc) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Post("/", h.Create)

	r.Route("/{projectID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Patch("/", h.Update)
		r.Delete("/", h.Delete)
		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.UpdateSettings)
		r.Get("/stats", stats)
		r.Mount("/categories", categories)
		r.Mount("/images", images)
	})

	return r
}
