package client

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service contains client business logic
type Service struct {
	repo Repository
}

// NewService creates client service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds a client to the studio's roster
func (s *Service) Create(ctx context.Context, studioID string, req *CreateClientRequest) (*Client, error) {
	existing, err := s.repo.GetByStudioAndEmail(ctx, studioID, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrClientExists
	}

	now := time.Now().UTC()
	c := &Client{
		ID:        uuid.NewString(),
		StudioID:  studioID,
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns a client scoped to the studio
func (s *Service) Get(ctx context.Context, studioID, id string) (*Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.StudioID != studioID {
		return nil, ErrClientNotFound
	}
	return c, nil
}

// List returns the studio's clients, optionally filtered by search text
func (s *Service) List(ctx context.Context, studioID string, filter ListFilter) ([]*Client, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, studioID, filter)
}

// Update applies partial updates to a client
func (s *Service) Update(ctx context.Context, studioID, id string, req *UpdateClientRequest) (*Client, error) {
	c, err := s.Get(ctx, studioID, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != c.Email {
		dup, err := s.repo.GetByStudioAndEmail(ctx, studioID, *req.Email)
		if err != nil {
			return nil, err
		}
		if dup != nil && dup.ID != c.ID {
			return nil, ErrClientExists
		}
		c.Email = *req.Email
	}
	if req.FullName != nil {
		c.FullName = *req.FullName
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Notes != nil {
		c.Notes = req.Notes
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a client
func (s *Service) Delete(ctx context.Context, studioID, id string) error {
	if _, err := s.Get(ctx, studioID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
