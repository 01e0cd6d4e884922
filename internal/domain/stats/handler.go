package stats

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/photoproof/photoproof-api/internal/middleware"
	"github.com/photoproof/photoproof-api/internal/pkg/response"
)

// Handler handles stats HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates stats handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ProjectStats handles GET /projects/{projectID}/stats
func (h *Handler) ProjectStats(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	projectID := chi.URLParam(r, "projectID")

	stats, err := h.repo.ProjectStats(r.Context(), studioID, projectID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Project not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, stats)
}

// Dashboard handles GET /studios/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())

	d, err := h.repo.Dashboard(r.Context(), studioID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, d)
}
