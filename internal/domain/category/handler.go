package category

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/photoproof/photoproof-api/internal/middleware"
	"github.com/photoproof/photoproof-api/internal/pkg/response"
	"github.com/photoproof/photoproof-api/internal/pkg/validator"
)

// Handler handles category HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates category handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /projects/{projectID}/categories
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	projectID := chi.URLParam(r, "projectID")

	categories, err := h.service.List(r.Context(), studioID, projectID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, categories)
}

// Create handles POST /projects/{projectID}/categories
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	projectID := chi.URLParam(r, "projectID")

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c, err := h.service.Create(r.Context(), studioID, projectID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, c)
}

// Update handles PATCH /projects/{projectID}/categories/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	projectID := chi.URLParam(r, "projectID")
	id := chi.URLParam(r, "id")

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c, err := h.service.Update(r.Context(), studioID, projectID, id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, c)
}

// Delete handles DELETE /projects/{projectID}/categories/{id}
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
	case ErrCategoryNotFound:
		response.NotFound(w, "Category not found")
	case ErrNotInProject:
		response.Error(w, http.StatusBadRequest, response.CodeInvalidCategory, "Category does not belong to the project")
	case ErrDuplicateName:
		response.BadRequest(w, "Category with this name already exists in the project")
	default:
		response.InternalError(w)
	}
}
