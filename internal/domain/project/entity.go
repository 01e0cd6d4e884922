package project

import "time"

// Project statuses
const (
	StatusDraft      = "draft"
	StatusUploading  = "uploading"
	StatusProcessing = "processing"
	StatusReview     = "review"
	StatusDelivered  = "delivered"
	StatusArchived   = "archived"
)

// Project is a photo delivery for one client, the unit clients review
type Project struct {
	ID               string     `db:"id" json:"id"`
	StudioID         string     `db:"studio_id" json:"studioId"`
	ClientID         string     `db:"client_id" json:"clientId"`
	Name             string     `db:"name" json:"name"`
	Description      *string    `db:"description" json:"description,omitempty"`
	Status           string     `db:"status" json:"status"`
	AccessURL        string     `db:"access_url" json:"accessUrl"`
	PasswordHash     *string    `db:"password_hash" json:"-"`
	ExpiresAt        *time.Time `db:"expires_at" json:"expiresAt,omitempty"`
	TotalImages      int        `db:"total_images" json:"totalImages"`
	SelectedImages   int        `db:"selected_images" json:"selectedImages"`
	TotalComments    int        `db:"total_comments" json:"totalComments"`
	StorageUsedBytes int64      `db:"storage_used_bytes" json:"storageUsedBytes"`
	CoverImageID     *string    `db:"cover_image_id" json:"coverImageId,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}

// Settings controls what clients can do in a project's gallery
type Settings struct {
	ProjectID        string `db:"project_id" json:"projectId"`
	AllowDownloads   bool   `db:"allow_downloads" json:"allowDownloads"`
	AllowComments    bool   `db:"allow_comments" json:"allowComments"`
	AllowFavorites   bool   `db:"allow_favorites" json:"allowFavorites"`
	MaxSelections    *int   `db:"max_selections" json:"maxSelections,omitempty"`
	WatermarkEnabled bool   `db:"watermark_enabled" json:"watermarkEnabled"`
}
