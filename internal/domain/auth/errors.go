package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserInactive       = errors.New("account is deactivated")
	ErrInvalidRefresh     = errors.New("invalid or revoked refresh token")
)
