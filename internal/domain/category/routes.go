package category

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns category router, mounted under /projects/{projectID}/categories
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}
