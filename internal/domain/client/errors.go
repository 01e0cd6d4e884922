package client

import "errors"

var (
	ErrClientNotFound = errors.New("client not found")
	ErrClientExists   = errors.New("client with this email already exists")
)
