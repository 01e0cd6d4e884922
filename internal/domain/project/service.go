package project

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/photoproof/photoproof-api/internal/domain/category"
	"github.com/photoproof/photoproof-api/internal/domain/client"
	"github.com/photoproof/photoproof-api/internal/domain/image"
)

// defaultCategories are created with every new project so uploads have
// somewhere to land.
var defaultCategories = []string{category.DefaultCategoryName}

// Service contains project business logic
type Service struct {
	repo       Repository
	clients    client.Repository
	categories category.Repository
	images     *image.Service
}

// NewService creates project service
func NewService(repo Repository, clients client.Repository, categories category.Repository, images *image.Service) *Service {
	return &Service{repo: repo, clients: clients, categories: categories, images: images}
}

// Create sets up a project with its settings row and starter categories
func (s *Service) Create(ctx context.Context, studioID string, req *CreateProjectRequest) (*Project, error) {
	c, err := s.clients.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.StudioID != studioID {
		return nil, ErrClientNotFound
	}

	now := time.Now().UTC()
	p := &Project{
		ID:          uuid.NewString(),
		StudioID:    studioID,
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Status:      StatusDraft,
		AccessURL:   newAccessURL(),
		ExpiresAt:   req.ExpiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	settings := &Settings{
		ProjectID:      p.ID,
		AllowDownloads: true,
		AllowComments:  true,
		AllowFavorites: true,
	}

	if err := s.repo.Create(ctx, p, settings, defaultCategories); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the full project view for the owning studio
func (s *Service) Get(ctx context.Context, studioID, id string) (*DetailResponse, error) {
	p, err := s.getOwned(ctx, studioID, id)
	if err != nil {
		return nil, err
	}
	return s.materialize(ctx, p)
}

// GetByAccessURL returns the gallery view for a client access link
func (s *Service) GetByAccessURL(ctx context.Context, accessURL string) (*DetailResponse, error) {
	p, err := s.repo.GetByAccessURL(ctx, accessURL)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProjectNotFound
	}
	if p.ExpiresAt != nil && p.ExpiresAt.Before(time.Now()) {
		return nil, ErrGalleryExpired
	}
	return s.materialize(ctx, p)
}

// List returns the studio's projects, optionally filtered by status
func (s *Service) List(ctx context.Context, studioID string, filter ListFilter) ([]*Project, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, studioID, filter)
}

// Update applies partial updates to a project
func (s *Service) Update(ctx context.Context, studioID, id string, req *UpdateProjectRequest) (*Project, error) {
	p, err := s.getOwned(ctx, studioID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.ExpiresAt != nil {
		p.ExpiresAt = req.ExpiresAt
	}
	if req.CoverImageID != nil {
		p.CoverImageID = req.CoverImageID
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a project and everything under it
func (s *Service) Delete(ctx context.Context, studioID, id string) error {
	p, err := s.getOwned(ctx, studioID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, p)
}

// GetSettings returns the project's gallery settings
func (s *Service) GetSettings(ctx context.Context, studioID, id string) (*Settings, error) {
	if _, err := s.getOwned(ctx, studioID, id); err != nil {
		return nil, err
	}

	settings, err := s.repo.GetSettings(ctx, id)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, ErrProjectNotFound
	}
	return settings, nil
}

// UpdateSettings applies partial updates to gallery settings
func (s *Service) UpdateSettings(ctx context.Context, studioID, id string, req *UpdateSettingsRequest) (*Settings, error) {
	settings, err := s.GetSettings(ctx, studioID, id)
	if err != nil {
		return nil, err
	}

	if req.AllowDownloads != nil {
		settings.AllowDownloads = *req.AllowDownloads
	}
	if req.AllowComments != nil {
		settings.AllowComments = *req.AllowComments
	}
	if req.AllowFavorites != nil {
		settings.AllowFavorites = *req.AllowFavorites
	}
	if req.MaxSelections != nil {
		settings.MaxSelections = req.MaxSelections
	}
	if req.WatermarkEnabled != nil {
		settings.WatermarkEnabled = *req.WatermarkEnabled
	}

	if err := s.repo.UpdateSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *Service) materialize(ctx context.Context, p *Project) (*DetailResponse, error) {
	settings, err := s.repo.GetSettings(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	c, err := s.clients.GetByID(ctx, p.ClientID)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	images, err := s.images.MaterializeAll(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return &DetailResponse{
		Project:    *p,
		Settings:   settings,
		Client:     c,
		Categories: categories,
		Images:     images,
	}, nil
}

func (s *Service) getOwned(ctx context.Context, studioID, id string) (*Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.StudioID != studioID {
		return nil, ErrProjectNotFound
	}
	return p, nil
}

func newAccessURL() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
