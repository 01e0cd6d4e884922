package image

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/photoproof/photoproof-api/internal/domain/tag"
	"github.com/photoproof/photoproof-api/internal/pkg/storage"
)

// Service contains image business logic
type Service struct {
	repo        Repository
	tags        tag.Repository
	store       storage.Storage
	maxPageSize int
}

// NewService creates image service
func NewService(repo Repository, tags tag.Repository, store storage.Storage, maxPageSize int) *Service {
	if maxPageSize <= 0 {
		maxPageSize = 200
	}
	return &Service{repo: repo, tags: tags, store: store, maxPageSize: maxPageSize}
}

// List returns a project's images with category filtering and capped
// pagination.
func (s *Service) List(ctx context.Context, studioID, projectID string, filter ListFilter) ([]*Detail, int, error) {
	if err := s.checkProject(ctx, studioID, projectID); err != nil {
		return nil, 0, err
	}

	if filter.Limit <= 0 || filter.Limit > s.maxPageSize {
		filter.Limit = s.maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	images, total, err := s.repo.List(ctx, projectID, filter)
	if err != nil {
		return nil, 0, err
	}

	details := make([]*Detail, 0, len(images))
	for _, img := range images {
		d, err := s.materialize(ctx, img)
		if err != nil {
			return nil, 0, err
		}
		details = append(details, d)
	}
	return details, total, nil
}

// Get returns an image with versions and tags
func (s *Service) Get(ctx context.Context, studioID, projectID, id string) (*Detail, error) {
	img, err := s.getOwned(ctx, studioID, projectID, id)
	if err != nil {
		return nil, err
	}
	return s.materialize(ctx, img)
}

// Update applies flag, rating, tag and category changes. A category
// move is rejected unless the target belongs to the same project.
func (s *Service) Update(ctx context.Context, studioID, projectID, id string, req *UpdateImageRequest) (*Detail, error) {
	img, err := s.getOwned(ctx, studioID, projectID, id)
	if err != nil {
		return nil, err
	}

	previousCategory := img.CategoryID

	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			img.CategoryID = nil
		} else {
			owner, err := s.repo.CategoryProject(ctx, *req.CategoryID)
			if err != nil {
				return nil, err
			}
			if owner != img.ProjectID {
				return nil, ErrInvalidCategory
			}
			img.CategoryID = req.CategoryID
		}
	}
	if req.Rating != nil {
		if *req.Rating < 0 || *req.Rating > 5 {
			return nil, ErrInvalidRating
		}
		img.Rating = *req.Rating
	}
	if req.IsSelected != nil {
		img.IsSelected = *req.IsSelected
	}
	if req.IsFavorite != nil {
		img.IsFavorite = *req.IsFavorite
	}
	img.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, img, previousCategory); err != nil {
		return nil, err
	}

	if req.Tags != nil {
		if err := s.tags.ReplaceImageTags(ctx, img.ID, studioID, *req.Tags); err != nil {
			return nil, err
		}
	}

	return s.materialize(ctx, img)
}

// Delete removes the image record and its stored files. Storage errors
// after the record is gone are logged, not surfaced.
func (s *Service) Delete(ctx context.Context, studioID, projectID, id string) error {
	img, err := s.getOwned(ctx, studioID, projectID, id)
	if err != nil {
		return err
	}

	versions, err := s.repo.VersionsByImage(ctx, img.ID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, img); err != nil {
		return err
	}

	for _, v := range versions {
		if err := s.store.Delete(ctx, v.StorageKey); err != nil {
			log.Warn().Err(err).Str("key", v.StorageKey).Msg("failed to delete stored rendition")
		}
	}
	if err := s.store.Delete(ctx, img.StorageKeyOriginal); err != nil {
		log.Warn().Err(err).Str("key", img.StorageKeyOriginal).Msg("failed to delete stored original")
	}

	return nil
}

// MaterializeAll builds details for every image of a project, used by
// the project gallery view.
func (s *Service) MaterializeAll(ctx context.Context, projectID string) ([]*Detail, error) {
	images, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	details := make([]*Detail, 0, len(images))
	for _, img := range images {
		d, err := s.materialize(ctx, img)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

// Materialize builds the full view of a single image
func (s *Service) Materialize(ctx context.Context, img *Image) (*Detail, error) {
	return s.materialize(ctx, img)
}

func (s *Service) materialize(ctx context.Context, img *Image) (*Detail, error) {
	versions, err := s.repo.VersionsByImage(ctx, img.ID)
	if err != nil {
		return nil, err
	}
	tags, err := s.tags.NamesByImage(ctx, img.ID)
	if err != nil {
		return nil, err
	}

	d := &Detail{
		Image:    *img,
		URL:      s.store.URL(img.StorageKeyOriginal),
		Versions: versions,
		Tags:     tags,
	}
	if img.StorageKeyThumbnail != nil {
		d.ThumbnailURL = s.store.URL(*img.StorageKeyThumbnail)
	}
	return d, nil
}

func (s *Service) getOwned(ctx context.Context, studioID, projectID, id string) (*Image, error) {
	if err := s.checkProject(ctx, studioID, projectID); err != nil {
		return nil, err
	}

	img, err := s.repo.GetByProjectAndID(ctx, id, projectID)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, ErrImageNotFound
	}
	return img, nil
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
