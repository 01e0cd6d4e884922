package image

import "time"

// Image is an uploaded photo committed to a project
type Image struct {
	ID                  string    `db:"id" json:"id"`
	ProjectID           string    `db:"project_id" json:"projectId"`
	CategoryID          *string   `db:"category_id" json:"categoryId,omitempty"`
	OriginalFileName    string    `db:"original_file_name" json:"originalFileName"`
	StorageKeyOriginal  string    `db:"storage_key_original" json:"-"`
	StorageKeyThumbnail *string   `db:"storage_key_thumbnail" json:"-"`
	ContentType         string    `db:"content_type" json:"contentType"`
	FileSizeBytes       int64     `db:"file_size_bytes" json:"fileSizeBytes"`
	Width               *int      `db:"width" json:"width,omitempty"`
	Height              *int      `db:"height" json:"height,omitempty"`
	Rating              int       `db:"rating" json:"rating"`
	IsSelected          bool      `db:"is_selected" json:"isSelected"`
	IsFavorite          bool      `db:"is_favorite" json:"isFavorite"`
	CommentCount        int       `db:"comment_count" json:"commentCount"`
	UploadedAt          time.Time `db:"uploaded_at" json:"uploadedAt"`
	UpdatedAt           time.Time `db:"updated_at" json:"updatedAt"`
}

// Version is a stored rendition of an image ("original", "thumbnail", ...)
type Version struct {
	ID            string    `db:"id" json:"id"`
	ImageID       string    `db:"image_id" json:"imageId"`
	VersionName   string    `db:"version_name" json:"versionName"`
	StorageKey    string    `db:"storage_key" json:"-"`
	FileSizeBytes int64     `db:"file_size_bytes" json:"fileSizeBytes"`
	Width         *int      `db:"width" json:"width,omitempty"`
	Height        *int      `db:"height" json:"height,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// VersionOriginal is the version name recorded for the uploaded file
const VersionOriginal = "original"

// VersionThumbnail is the version name for the generated thumbnail
const VersionThumbnail = "thumbnail"
