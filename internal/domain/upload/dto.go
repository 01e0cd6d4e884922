package upload

import "github.com/photoproof/photoproof-api/internal/domain/image"

// InitiateFile describes one file the client intends to upload
type InitiateFile struct {
	FileName    string  `json:"fileName" validate:"required,max=255"`
	FileSize    int64   `json:"fileSize" validate:"min=0"`
	ContentType *string `json:"contentType" validate:"omitempty,max=100"`
	CategoryID  *string `json:"categoryId" validate:"omitempty,uuid"`
}

// InitiateRequest is the payload for POST /uploads/initiate
type InitiateRequest struct {
	ProjectID string         `json:"projectId" validate:"required,uuid"`
	Files     []InitiateFile `json:"files" validate:"required,min=1,dive"`
}

// UploadTarget tells the client where to stream one file
type UploadTarget struct {
	FileName   string  `json:"fileName"`
	TargetURL  string  `json:"targetUrl"`
	UploadID   string  `json:"uploadId"`
	CategoryID *string `json:"categoryId,omitempty"`
}

// InitiateResponse is returned by POST /uploads/initiate
type InitiateResponse struct {
	UploadURLs []UploadTarget `json:"uploadUrls"`
}

// CompleteRequest is the payload for PUT /uploads/complete
type CompleteRequest struct {
	ProjectID        string  `json:"projectId" validate:"required,uuid"`
	CategoryID       *string `json:"categoryId" validate:"omitempty,uuid"`
	FileName         string  `json:"fileName" validate:"required,max=255"`
	OriginalFileName string  `json:"originalFileName" validate:"required,max=255"`
	FileSize         int64   `json:"fileSize" validate:"min=0"`
	ContentType      *string `json:"contentType" validate:"omitempty,max=100"`
	UploadURL        *string `json:"uploadUrl"`
}

// CompleteResponse is returned by PUT /uploads/complete
type CompleteResponse struct {
	Image         *image.Detail `json:"image"`
	AlreadyExists bool          `json:"alreadyExists"`
}
