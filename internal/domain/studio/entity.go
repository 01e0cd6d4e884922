package studio

import "time"

// Studio is a photography business account that owns clients and projects
type Studio struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	LogoURL   *string   `db:"logo_url" json:"logoUrl,omitempty"`
	Website   *string   `db:"website" json:"website,omitempty"`
	Timezone  string    `db:"timezone" json:"timezone"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
