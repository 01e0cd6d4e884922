package tag

import "time"

// Tag is a studio-scoped label attachable to images
type Tag struct {
	ID        string    `db:"id" json:"id"`
	StudioID  string    `db:"studio_id" json:"studioId"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// ApprovedTagName is the sentinel tag that marks client-approved images
const ApprovedTagName = "approved"
