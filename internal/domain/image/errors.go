package image

import "errors"

var (
	ErrImageNotFound   = errors.New("image not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidCategory = errors.New("category does not belong to the image's project")
	ErrInvalidRating   = errors.New("rating must be between 0 and 5")
)
