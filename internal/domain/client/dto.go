package client

// CreateClientRequest is the payload for creating a client
type CreateClientRequest struct {
	FullName string  `json:"fullName" validate:"required,min=2,max=200"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
	Notes    *string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateClientRequest is the payload for partial client updates
type UpdateClientRequest struct {
	FullName *string `json:"fullName" validate:"omitempty,min=2,max=200"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
	Notes    *string `json:"notes" validate:"omitempty,max=2000"`
}

// ListFilter narrows client listings
type ListFilter struct {
	Search string
	Offset int
	Limit  int
}
