package studio

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/photoproof/photoproof-api/internal/pkg/response"
	"github.com/photoproof/photoproof-api/internal/pkg/validator"
)

// Handler handles studio HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates studio handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /studios
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	studios, total, err := h.service.List(r.Context(), offset, limit)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, studios, response.Meta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /studios/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	studio, err := h.service.Get(r.Context(), id)
	if err != nil {
		switch err {
		case ErrStudioNotFound:
			response.NotFound(w, "Studio not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, studio)
}

// Create handles POST /studios
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateStudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	studio, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrEmailTaken:
			response.Conflict(w, "Studio email already registered")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, studio)
}

// Update handles PATCH /studios/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateStudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	studio, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case ErrStudioNotFound:
			response.NotFound(w, "Studio not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, studio)
}
