package project

import (
	"time"

	"github.com/photoproof/photoproof-api/internal/domain/category"
	"github.com/photoproof/photoproof-api/internal/domain/client"
	"github.com/photoproof/photoproof-api/internal/domain/image"
)

// CreateProjectRequest is the payload for creating a project
type CreateProjectRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=200"`
	ClientID    string     `json:"clientId" validate:"required,uuid"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

// UpdateProjectRequest is the payload for partial project updates
type UpdateProjectRequest struct {
	Name         *string    `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string    `json:"description" validate:"omitempty,max=5000"`
	Status       *string    `json:"status" validate:"omitempty,project_status"`
	ExpiresAt    *time.Time `json:"expiresAt"`
	CoverImageID *string    `json:"coverImageId" validate:"omitempty,uuid"`
}

// UpdateSettingsRequest is the payload for gallery settings updates
type UpdateSettingsRequest struct {
	AllowDownloads   *bool `json:"allowDownloads"`
	AllowComments    *bool `json:"allowComments"`
	AllowFavorites   *bool `json:"allowFavorites"`
	MaxSelections    *int  `json:"maxSelections" validate:"omitempty,min=0"`
	WatermarkEnabled *bool `json:"watermarkEnabled"`
}

// ListFilter narrows project listings
type ListFilter struct {
	Status string
	Offset int
	Limit  int
}

// DetailResponse is the full project view: settings, client, sorted
// categories and images with versions and tags flattened
type DetailResponse struct {
	Project
	Settings   *Settings            `json:"settings"`
	Client     *client.Client       `json:"client,omitempty"`
	Categories []*category.Category `json:"categories"`
	Images     []*image.Detail      `json:"images"`
}
