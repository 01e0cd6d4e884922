package comment

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/photoproof/photoproof-api/internal/middleware"
	"github.com/photoproof/photoproof-api/internal/pkg/response"
	"github.com/photoproof/photoproof-api/internal/pkg/validator"
)

// Handler handles comment HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates comment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /images/{imageID}/comments
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	imageID := chi.URLParam(r, "imageID")

	threads, err := h.service.List(r.Context(), studioID, imageID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, threads)
}

// Create handles POST /images/{imageID}/comments
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	imageID := chi.URLParam(r, "imageID")

	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	authorType := AuthorStudio
	if middleware.GetRole(r.Context()) == middleware.RoleClient {
		authorType = AuthorClient
	}

	c, err := h.service.Create(r.Context(), studioID, imageID, authorType, "", &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, c)
}

type resolveRequest struct {
	Resolved bool `json:"resolved"`
}

// Resolve handles PATCH /images/{imageID}/comments/{id}/resolve
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	imageID := chi.URLParam(r, "imageID")
	id := chi.URLParam(r, "id")

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	c, err := h.service.Resolve(r.Context(), studioID, imageID, id, req.Resolved)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, c)
}

// Delete handles DELETE /images/{imageID}/comments/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	imageID := chi.URLParam(r, "imageID")
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), studioID, imageID, id); err != nil {
		h.writeError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch err {
	case ErrImageNotFound:
		response.NotFound(w, "Image not found")
	case ErrCommentNotFound:
		response.NotFound(w, "Comment not found")
	case ErrEmptyBody:
		response.BadRequest(w, "Comment text cannot be empty")
	default:
		response.InternalError(w)
	}
}
