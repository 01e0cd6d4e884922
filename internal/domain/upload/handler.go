package upload

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/photoproof/photoproof-api/internal/middleware"
	"github.com/photoproof/photoproof-api/internal/pkg/response"
	"github.com/photoproof/photoproof-api/internal/pkg/validator"
)

// Handler handles upload HTTP requests
type Handler struct {
	service        *Service
	maxUploadBytes int64
}

// NewHandler creates upload handler
func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}
}

// Initiate handles POST /uploads/initiate
func (h *Handler) Initiate(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())

	var req InitiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Initiate(r.Context(), studioID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, result)
}

// Stream handles PUT /uploads/stream/{projectID}/{categoryID}/{fileName}
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())
	projectID := chi.URLParam(r, "projectID")
	categoryID := chi.URLParam(r, "categoryID")
	fileName := chi.URLParam(r, "fileName")

	body := r.Body
	if h.maxUploadBytes > 0 {
		if r.ContentLength > h.maxUploadBytes {
			response.Error(w, http.StatusRequestEntityTooLarge, response.CodeFileTooLarge, "File exceeds the upload size limit")
			return
		}
		body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	err := h.service.Stream(r.Context(), studioID, projectID, categoryID, fileName, body)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.NoContent(w)
}

// Complete handles PUT /uploads/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	studioID := middleware.GetStudioID(r.Context())

	var req CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Complete(r.Context(), studioID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, result)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrProjectNotFound):
		response.NotFound(w, "Project not found")
	case errors.Is(err, ErrInvalidCategory):
		response.Error(w, http.StatusBadRequest, response.CodeInvalidCategory, "Category does not belong to the project")
	case errors.Is(err, ErrFileNotStreamed):
		response.NotFound(w, "File has not been uploaded")
	case errors.Is(err, ErrCorruptImage):
		response.Error(w, http.StatusUnprocessableEntity, response.CodeCorruptImage, err.Error())
	case errors.Is(err, ErrEmptyUpload):
		response.Error(w, http.StatusBadRequest, response.CodeEmptyUpload, "Uploaded file is empty")
	case errors.Is(err, ErrWriteFailed):
		response.Error(w, http.StatusInternalServerError, response.CodeWriteError, "Failed to write uploaded file")
	default:
		response.InternalError(w)
	}
}
