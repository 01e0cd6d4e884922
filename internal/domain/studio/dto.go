package studio

// CreateStudioRequest is the payload for creating a studio
type CreateStudioRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=200"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
	Website  *string `json:"website" validate:"omitempty,url"`
	Timezone *string `json:"timezone" validate:"omitempty,max=64"`
}

// UpdateStudioRequest is the payload for updating studio profile fields
type UpdateStudioRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=200"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
	LogoURL  *string `json:"logoUrl" validate:"omitempty,url"`
	Website  *string `json:"website" validate:"omitempty,url"`
	Timezone *string `json:"timezone" validate:"omitempty,max=64"`
}
