package comment

import "errors"

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrImageNotFound   = errors.New("image not found")
	ErrEmptyBody       = errors.New("comment text cannot be empty")
)
