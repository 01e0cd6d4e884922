package upload

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns upload router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/initiate", h.Initiate)
	r.Put("/stream/{projectID}/{categoryID}/{fileName}", h.Stream)
	r.Put("/complete", h.Complete)

	return r
}
