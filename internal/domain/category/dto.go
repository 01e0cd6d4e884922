package category

// CreateCategoryRequest is the payload for creating a category
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	SortOrder   *int    `json:"sortOrder" validate:"omitempty,min=0"`
}

// UpdateCategoryRequest is the payload for partial category updates
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	SortOrder   *int    `json:"sortOrder" validate:"omitempty,min=0"`
}
