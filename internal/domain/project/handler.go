package project

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/photoproof/photoproof-api/internal/middleware"
	"github.com/photoproof/photoproof-api/internal/pkg/response"
	"github.com/photoproof/photoproof-api/internal/pkg/validator"
)

// Handler handles project HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates project handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /projects
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	filter := ListFilter{
		Status: r.URL.Query().Get("status"),
		Offset: offset,
		Limit:  limit,
	}

	projects, total, err := h.service.List(r.Context(), studioID, filter)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, projects, response.Meta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /projects/{projectID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	id := chi.URLParam(r, "projectID")

	detail, err := h.service.Get(r.Context(), studioID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, detail)
}

// GetByAccessURL handles GET /gallery/{accessURL} for client access links
func (h *Handler) GetByAccessURL(w http.ResponseWriter, r *http.Request) {
	accessURL := chi.URLParam(r, "accessURL")

	detail, err := h.service.GetByAccessURL(r.Context(), accessURL)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, detail)
}

// Create handles POST /projects
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := h.service.Create(r.Context(), studioID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, p)
}

// Update handles PATCH /projects/{projectID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	id := chi.URLParam(r, "projectID")

	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := h.service.Update(r.Context(), studioID, id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, p)
}

// Delete handles DELETE /projects/{projectID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	id := chi.URLParam(r, "projectID")

	if err := h.service.Delete(r.Context(), studioID, id); err != nil {
		h.writeError(w, err)
		return
	}

	response.NoContent(w)
}

// GetSettings handles GET /projects/{projectID}/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	id := chi.URLParam(r, "projectID")

	settings, err := h.service.GetSettings(r.Context(), studioID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, settings)
}

// UpdateSettings handles PUT /projects/{projectID}/settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	id := chi.URLParam(r, "projectID")

	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	settings, err := h.service.UpdateSettings(r.Context(), studioID, id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, settings)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch err {
	case ErrProjectNotFound:
		response.NotFound(w, "Project not found")
	case ErrClientNotFound:
		response.NotFound(w, "Client not found")
	case ErrGalleryExpired:
		response.Error(w, http.StatusGone, response.CodeNotFound, "Gallery link has expired")
	default:
		response.InternalError(w)
	}
}
