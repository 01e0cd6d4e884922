package client

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/photoproof/photoproof-api/internal/middleware"
	"github.com/photoproof/photoproof-api/internal/pkg/response"
	"github.com/photoproof/photoproof-api/internal/pkg/validator"
)

// Handler handles client HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates client handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /clients
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	filter := ListFilter{
		Search: r.URL.Query().Get("search"),
		Offset: offset,
		Limit:  limit,
	}

	clients, total, err := h.service.List(r.Context(), studioID, filter)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.WithMeta(w, clients, response.Meta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /clients/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	id := chi.URLParam(r, "id")

	c, err := h.service.Get(r.Context(), studioID, id)
	if err != nil {
		switch err {
		case ErrClientNotFound:
			response.NotFound(w, "Client not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, c)
}

// Create handles POST /clients
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())

	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c, err := h.service.Create(r.Context(), studioID, &req)
	if err != nil {
		switch err {
		case ErrClientExists:
			response.Conflict(w, "Client with this email already exists")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, c)
}

// Update handles PATCH /clients/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	id := chi.URLParam(r, "id")

	var req UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c, err := h.service.Update(r.Context(), studioID, id, &req)
	if err != nil {
		switch err {
		case ErrClientNotFound:
			response.NotFound(w, "Client not found")
		case ErrClientExists:
			response.Conflict(w, "Client with this email already exists")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, c)
}

// Delete handles DELETE /clients/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), studioID, id); err != nil {
		switch err {
		case ErrClientNotFound:
			response.NotFound(w, "Client not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}
