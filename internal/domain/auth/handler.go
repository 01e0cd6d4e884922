package auth

import (
	"encoding/json"
	"net/http"

	"github.com/photoproof/photoproof-api/internal/domain/user"
	"github.com/photoproof/photoproof-api/internal/middleware"
	"github.com/photoproof/photoproof-api/internal/pkg/response"
	"github.com/photoproof/photoproof-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrEmailTaken:
			response.Conflict(w, "Email already registered")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, result)
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid email or password")
		case ErrUserInactive:
			response.Forbidden(w, "Account is deactivated")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Refresh handles POST /auth/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Refresh(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrInvalidRefresh:
			response.Unauthorized(w, "Invalid or revoked refresh token")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, result)
}

// Logout handles POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	u, err := h.service.Me(r.Context(), userID)
	if err != nil {
		switch err {
		case user.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, u)
}
