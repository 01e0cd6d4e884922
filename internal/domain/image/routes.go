package image

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns image router, mounted under /projects/{projectID}/images
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}
