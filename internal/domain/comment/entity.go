package comment

import "time"

// Author types for comments
const (
	AuthorStudio = "studio"
	AuthorClient = "client"
)

// Comment is feedback left on an image, optionally replying to another
// comment
type Comment struct {
	ID         string    `db:"id" json:"id"`
	ImageID    string    `db:"image_id" json:"imageId"`
	ParentID   *string   `db:"parent_id" json:"parentId,omitempty"`
	AuthorType string    `db:"author_type" json:"authorType"`
	AuthorName string    `db:"author_name" json:"authorName"`
	Body       string    `db:"body" json:"body"`
	IsResolved bool      `db:"is_resolved" json:"isResolved"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
