package project

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrClientNotFound  = errors.New("client not found")
	ErrGalleryExpired  = errors.New("gallery link has expired")
)
