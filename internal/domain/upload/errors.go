package upload

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidCategory = errors.New("category does not belong to the project")
	ErrFileNotStreamed = errors.New("file has not been uploaded")
	ErrCorruptImage    = errors.New("file is not valid image data")
	ErrEmptyUpload     = errors.New("uploaded file is empty")
	ErrWriteFailed     = errors.New("failed to write uploaded file")
)
