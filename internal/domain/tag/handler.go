package tag

import (
	"net/http"

	"github.com/photoproof/photoproof-api/internal/middleware"
	"github.com/photoproof/photoproof-api/internal/pkg/response"
)

// Handler handles tag HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates tag handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /tags
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())

	tags, err := h.repo.ListByStudio(r.Context(), studioID)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, tags)
}
