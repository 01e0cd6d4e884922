package batch

import (
	"encoding/json"
	"net/http"

	"github.com/photoproof/photoproof-api/internal/middleware"
	"github.com/photoproof/photoproof-api/internal/pkg/response"
	"github.com/photoproof/photoproof-api/internal/pkg/validator"
)

// Handler handles batch HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates batch handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Process handles POST /actions/batch. Always answers 200; per-action
// failures are reported in the body.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result := h.service.Process(r.Context(), studioID, &req)
	response.OK(w, result)
}
