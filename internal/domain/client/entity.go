package client

import "time"

// Client is a studio customer whose projects get delivered for proofing
type Client struct {
	ID              string     `db:"id" json:"id"`
	StudioID        string     `db:"studio_id" json:"studioId"`
	FullName        string     `db:"full_name" json:"fullName"`
	Email           string     `db:"email" json:"email"`
	Phone           *string    `db:"phone" json:"phone,omitempty"`
	Notes           *string    `db:"notes" json:"notes,omitempty"`
	TotalProjects   int        `db:"total_projects" json:"totalProjects"`
	LastProjectDate *time.Time `db:"last_project_date" json:"lastProjectDate,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updatedAt"`
}
