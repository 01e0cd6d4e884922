package user

import "time"

// User is a studio staff account used for authentication
type User struct {
	ID           string    `db:"id" json:"id"`
	StudioID     string    `db:"studio_id" json:"studioId"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"fullName"`
	Role         string    `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"isActive"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
