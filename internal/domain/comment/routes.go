package comment

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns comment router, mounted under /images/{imageID}/comments
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Patch("/{id}/resolve", h.Resolve)
	r.Delete("/{id}", h.Delete)

	return r
}
