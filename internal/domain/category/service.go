package category

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service contains category business logic
type Service struct {
	repo Repository
}

// NewService creates category service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns a project's categories in display order
func (s *Service) List(ctx context.Context, studioID, projectID string) ([]*Category, error) {
	if err := s.checkProject(ctx, studioID, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID)
}

// Create adds a category to a project. Names are unique per project.
func (s *Service) Create(ctx context.Context, studioID, projectID string, req *CreateCategoryRequest) (*Category, error) {
	if err := s.checkProject(ctx, studioID, projectID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(ctx, projectID, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateName
	}

	sortOrder := 0
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	c := &Category{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   sortOrder,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update applies partial updates to a category
func (s *Service) Update(ctx context.Context, studioID, projectID, id string, req *UpdateCategoryRequest) (*Category, error) {
	c, err := s.get(ctx, studioID, projectID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != c.Name {
		dup, err := s.repo.GetByName(ctx, projectID, *req.Name)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != c.ID {
			return nil, ErrDuplicateName
		}
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.SortOrder != nil {
		c.SortOrder = *req.SortOrder
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a category, moving its images to the project fallback
func (s *Service) Delete(ctx context.Context, studioID, projectID, id string) error {
	if _, err := s.get(ctx, studioID, projectID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) get(ctx context.Context, studioID, projectID, id string) (*Category, error) {
	if err := s.checkProject(ctx, studioID, projectID); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	if c.ProjectID != projectID {
		return nil, ErrNotInProject
	}
	return c, nil
}

func (s *Service) checkProject(ctx context.Context, studioID, projectID string) error {
	owner, err := s.repo.ProjectStudioID(ctx, projectID)
	if err != nil {
		return err
	}
	if owner == "" || owner != studioID {
		return ErrProjectNotFound
	}
	return nil
}
