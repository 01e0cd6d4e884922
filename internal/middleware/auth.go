package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/photoproof/photoproof-api/internal/pkg/jwt"
	"github.com/photoproof/photoproof-api/internal/pkg/response"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	StudioIDKey contextKey = "studio_id"
	RoleKey     contextKey = "role"
)

// Studio-side roles that may mutate studio data. The client role is
// read/react-only.
const (
	RoleStudioOwner        = "studio_owner"
	RoleStudioAdmin        = "studio_admin"
	RoleStudioPhotographer = "studio_photographer"
	RoleClient             = "client"
)

// Auth returns middleware that validates JWT and injects the
// authenticated identity into the request context.
func Auth(jwtService *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateAccessToken(parts[1])
			if err != nil {
				if err == jwt.ErrExpiredToken {
					response.Unauthorized(w, "Token expired")
				} else {
					response.Unauthorized(w, "Invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, StudioIDKey, claims.StudioID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetStudioID extracts studio ID from context
func GetStudioID(ctx context.Context) string {
	if id, ok := ctx.Value(StudioIDKey).(string); ok {
		return id
	}
	return ""
}

// GetRole extracts role from context
func GetRole(ctx context.Context) string {
	if role, ok := ctx.Value(RoleKey).(string); ok {
		return role
	}
	return ""
}

// IsStudioRole reports whether the role is a studio-side role
func IsStudioRole(role string) bool {
	switch role {
	case RoleStudioOwner, RoleStudioAdmin, RoleStudioPhotographer:
		return true
	}
	return false
}

// RequireRole returns middleware that checks user role
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole := GetRole(r.Context())

			for _, role := range roles {
				if userRole == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "Insufficient permissions")
		})
	}
}

// RequireStudio returns middleware that requires any studio-side role
func RequireStudio() func(http.Handler) http.Handler {
	return RequireRole(RoleStudioOwner, RoleStudioAdmin, RoleStudioPhotographer)
}
