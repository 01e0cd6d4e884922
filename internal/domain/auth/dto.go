package auth

import "github.com/photoproof/photoproof-api/internal/domain/user"

// RegisterRequest creates a studio with its owner account
type RegisterRequest struct {
	StudioName string `json:"studioName" validate:"required,min=2,max=200"`
	FullName   string `json:"fullName" validate:"required,min=2,max=200"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest authenticates a studio user
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest exchanges a refresh token for a new token pair
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// TokenPair is an issued access/refresh token pair
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User   *user.User `json:"user"`
	Tokens TokenPair  `json:"tokens"`
}
