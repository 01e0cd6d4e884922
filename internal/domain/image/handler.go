package image

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/photoproof/photoproof-api/internal/middleware"
	"github.com/photoproof/photoproof-api/internal/pkg/response"
	"github.com/photoproof/photoproof-api/internal/pkg/validator"
)

// Handler handles image HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates image handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /projects/{projectID}/images
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	projectID := chi.URLParam(r, "projectID")

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	filter := ListFilter{
		Category: r.URL.Query().Get("category"),
		Offset:   offset,
		Limit:    limit,
	}

	images, total, err := h.service.List(r.Context(), studioID, projectID, filter)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.WithMeta(w, images, response.Meta{Total: total, Offset: filter.Offset, Limit: filter.Limit})
}

// Get handles GET /projects/{projectID}/images/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	projectID := chi.URLParam(r, "projectID")
	id := chi.URLParam(r, "id")

	img, err := h.service.Get(r.Context(), studioID, projectID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, img)
}

// Update handles PATCH /projects/{projectID}/images/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	projectID := chi.URLParam(r, "projectID")
	id := chi.URLParam(r, "id")

	var req UpdateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	img, err := h.service.Update(r.Context(), studioID, projectID, id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, img)
}

// Delete handles DELETE /projects/{projectID}/images/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	projectID := chi.URLParam(r, "projectID")
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), studioID, projectID, id); err != nil {
		h.writeError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch err {
	case ErrProjectNotFound:
		response.NotFound(w, "Project not found")
	case ErrImageNotFound:
		response.NotFound(w, "Image not found")
	case ErrInvalidCategory:
		response.Error(w, http.StatusBadRequest, response.CodeInvalidCategory, "Category does not belong to the image's project")
	case ErrInvalidRating:
		response.BadRequest(w, "Rating must be between 0 and 5")
	default:
		response.InternalError(w)
	}
}
