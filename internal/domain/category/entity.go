package category

import "time"

// Category groups images within a project
type Category struct {
	ID          string    `db:"id" json:"id"`
	ProjectID   string    `db:"project_id" json:"projectId"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	SortOrder   int       `db:"sort_order" json:"sortOrder"`
	ImageCount  int       `db:"image_count" json:"imageCount"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// DefaultCategoryName is where uploads land when no category is chosen
const DefaultCategoryName = "All Photos"
