package studio

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service contains studio business logic
type Service struct {
	repo Repository
}

// NewService creates studio service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new studio account
func (s *Service) Create(ctx context.Context, req *CreateStudioRequest) (*Studio, error) {
	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	timezone := "UTC"
	if req.Timezone != nil && *req.Timezone != "" {
		timezone = *req.Timezone
	}

	now := time.Now().UTC()
	studio := &Studio{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Website:   req.Website,
		Timezone:  timezone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, studio); err != nil {
		return nil, err
	}
	return studio, nil
}

// Get returns a studio by id
func (s *Service) Get(ctx context.Context, id string) (*Studio, error) {
	studio, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if studio == nil {
		return nil, ErrStudioNotFound
	}
	return studio, nil
}

// List returns studios with pagination
func (s *Service) List(ctx context.Context, offset, limit int) ([]*Studio, int, error) {
	return s.repo.List(ctx, offset, limit)
}

// Update applies partial updates to a studio profile
func (s *Service) Update(ctx context.Context, id string, req *UpdateStudioRequest) (*Studio, error) {
	studio, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		studio.Name = *req.Name
	}
	if req.Phone != nil {
		studio.Phone = req.Phone
	}
	if req.LogoURL != nil {
		studio.LogoURL = req.LogoURL
	}
	if req.Website != nil {
		studio.Website = req.Website
	}
	if req.Timezone != nil {
		studio.Timezone = *req.Timezone
	}
	studio.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, studio); err != nil {
		return nil, err
	}
	return studio, nil
}
