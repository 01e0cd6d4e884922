package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrDuplicateName    = errors.New("category with this name already exists in the project")
	ErrNotInProject     = errors.New("category does not belong to the project")
)
