package studio

import "errors"

var (
	ErrStudioNotFound = errors.New("studio not found")
	ErrEmailTaken     = errors.New("studio email already registered")
)
