package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/photoproof/photoproof-api/internal/domain/category"
	"github.com/photoproof/photoproof-api/internal/domain/image"
	"github.com/photoproof/photoproof-api/internal/domain/project"
	"github.com/photoproof/photoproof-api/internal/pkg/imaging"
	"github.com/photoproof/photoproof-api/internal/pkg/storage"
)

// uncategorizedSegment stands in for the category id in stream URLs
// and storage keys when an upload has no category.
const uncategorizedSegment = "uncategorized"

// Service drives the upload pipeline: initiate, stream, validate and
// complete.
type Service struct {
	projects   project.Repository
	categories category.Repository
	images     image.Repository
	imageViews *image.Service
	store      storage.Storage
	processor  *imaging.Processor
}

// NewService creates upload service
func NewService(
	projects project.Repository,
	categories category.Repository,
	images image.Repository,
	imageViews *image.Service,
	store storage.Storage,
	processor *imaging.Processor,
) *Service {
	return &Service{
		projects:   projects,
		categories: categories,
		images:     images,
		imageViews: imageViews,
		store:      store,
		processor:  processor,
	}
}

// Initiate resolves a category and a deterministic upload id for each
// requested file and hands back the stream targets.
func (s *Service) Initiate(ctx context.Context, studioID string, req *InitiateRequest) (*InitiateResponse, error) {
	if err := s.checkProject(ctx, studioID, req.ProjectID); err != nil {
		return nil, err
	}

	targets := make([]UploadTarget, 0, len(req.Files))
	for _, f := range req.Files {
		categoryID, err := s.resolveCategory(ctx, req.ProjectID, f.CategoryID)
		if err != nil {
			return nil, err
		}

		fileName := sanitizeFileName(f.FileName)
		segment := uncategorizedSegment
		if categoryID != nil {
			segment = *categoryID
		}

		targets = append(targets, UploadTarget{
			FileName:   f.FileName,
			TargetURL:  fmt.Sprintf("/api/uploads/stream/%s/%s/%s", req.ProjectID, segment, fileName),
			UploadID:   uploadID(req.ProjectID, segment, fileName),
			CategoryID: categoryID,
		})
	}

	return &InitiateResponse{UploadURLs: targets}, nil
}

// Stream writes the raw request body to the upload's storage key.
// Failed or empty writes leave nothing behind.
func (s *Service) Stream(ctx context.Context, studioID, projectID, categorySegment, fileName string, body io.Reader) error {
	if err := s.checkProject(ctx, studioID, projectID); err != nil {
		return err
	}
	if categorySegment != uncategorizedSegment {
		c, err := s.categories.GetByID(ctx, categorySegment)
		if err != nil {
			return err
		}
		if c == nil || c.ProjectID != projectID {
			return ErrInvalidCategory
		}
	}

	fileName = sanitizeFileName(fileName)
	key := storageKey(projectID, categorySegment, fileName)

	written, err := s.store.Save(ctx, key, body, storage.SniffContentType(fileName))
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("failed to remove partial upload")
		}
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if written == 0 {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("failed to remove empty upload")
		}
		return ErrEmptyUpload
	}

	return nil
}

// Complete validates the streamed file and commits it as an image
// record. Completing the same upload twice returns the existing image
// with alreadyExists set.
func (s *Service) Complete(ctx context.Context, studioID string, req *CompleteRequest) (*CompleteResponse, error) {
	if err := s.checkProject(ctx, studioID, req.ProjectID); err != nil {
		return nil, err
	}

	categoryID, err := s.resolveCategory(ctx, req.ProjectID, req.CategoryID)
	if err != nil {
		return nil, err
	}

	fileName := sanitizeFileName(req.FileName)
	segment := uncategorizedSegment
	if categoryID != nil {
		segment = *categoryID
	}
	key := storageKey(req.ProjectID, segment, fileName)

	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrFileNotStreamed
	}

	reader, err := s.store.Open(ctx, key)
	if err != nil {
		return nil, ErrFileNotStreamed
	}
	data, err := io.ReadAll(reader)
	reader.Close()
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("failed to remove empty upload")
		}
		return nil, ErrEmptyUpload
	}

	if err := storage.ValidateImage(data, fileName); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("failed to remove corrupted upload")
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptImage, err)
	}

	// Idempotent replay of a finished upload
	existing, err := s.images.FindByOriginalName(ctx, req.ProjectID, categoryID, req.OriginalFileName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		detail, err := s.imageViews.Materialize(ctx, existing)
		if err != nil {
			return nil, err
		}
		return &CompleteResponse{Image: detail, AlreadyExists: true}, nil
	}

	contentType := storage.SniffContentType(fileName)
	if req.ContentType != nil && *req.ContentType != "" {
		contentType = *req.ContentType
	}

	var width, height *int
	if s.processor != nil && storage.IsImageExtension(fileName) {
		if w, h, err := s.processor.Dimensions(bytes.NewReader(data)); err == nil {
			width, height = &w, &h
		} else {
			log.Debug().Err(err).Str("file", fileName).Msg("could not extract image dimensions")
		}
	}

	now := time.Now().UTC()
	img := &image.Image{
		ID:                 uuid.NewString(),
		ProjectID:          req.ProjectID,
		CategoryID:         categoryID,
		OriginalFileName:   req.OriginalFileName,
		StorageKeyOriginal: key,
		ContentType:        contentType,
		FileSizeBytes:      int64(len(data)),
		Width:              width,
		Height:             height,
		UploadedAt:         now,
		UpdatedAt:          now,
	}

	versions := []*image.Version{{
		ID:            uuid.NewString(),
		ImageID:       img.ID,
		VersionName:   image.VersionOriginal,
		StorageKey:    key,
		FileSizeBytes: img.FileSizeBytes,
		Width:         width,
		Height:        height,
		CreatedAt:     now,
	}}

	if thumbVersion := s.generateThumbnail(ctx, img, data, segment, fileName, now); thumbVersion != nil {
		versions = append(versions, thumbVersion)
	}

	if err := s.images.CreateWithVersion(ctx, img, versions); err != nil {
		return nil, err
	}

	detail, err := s.imageViews.Materialize(ctx, img)
	if err != nil {
		return nil, err
	}
	return &CompleteResponse{Image: detail, AlreadyExists: false}, nil
}

// generateThumbnail renders and stores a thumbnail. Failures are
// logged and skipped, the original commit must not depend on it.
func (s *Service) generateThumbnail(ctx context.Context, img *image.Image, data []byte, segment, fileName string, now time.Time) *image.Version {
	if s.processor == nil || !storage.IsImageExtension(fileName) {
		return nil
	}

	thumb, err := s.processor.Thumbnail(bytes.NewReader(data))
	if err != nil {
		log.Debug().Err(err).Str("file", fileName).Msg("thumbnail generation skipped")
		return nil
	}

	thumbKey := storageKey(img.ProjectID, segment, "thumbs/"+fileName+".jpg")
	written, err := s.store.Save(ctx, thumbKey, bytes.NewReader(thumb.Data), thumb.ContentType)
	if err != nil {
		log.Warn().Err(err).Str("key", thumbKey).Msg("failed to store thumbnail")
		return nil
	}

	img.StorageKeyThumbnail = &thumbKey
	return &image.Version{
		ID:            uuid.NewString(),
		ImageID:       img.ID,
		VersionName:   image.VersionThumbnail,
		StorageKey:    thumbKey,
		FileSizeBytes: written,
		Width:         &thumb.Width,
		Height:        &thumb.Height,
		CreatedAt:     now,
	}
}

// resolveCategory picks the category an upload lands in: the explicit
// one when given (and owned by the project), otherwise the project's
// default, otherwise none.
func (s *Service) resolveCategory(ctx context.Context, projectID string, explicit *string) (*string, error) {
	if explicit != nil && *explicit != "" {
		c, err := s.categories.GetByID(ctx, *explicit)
		if err != nil {
			return nil, err
		}
		if c == nil || c.ProjectID != projectID {
			return nil, ErrInvalidCategory
		}
		return &c.ID, nil
	}

	def, err := s.categories.DefaultForProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, nil
	}
	return &def.ID, nil
}

func (s *Service) checkProject(ctx context.Context, studioID, projectID string) error {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if p == nil || p.StudioID != studioID {
		return ErrProjectNotFound
	}
	return nil
}

func storageKey(projectID, categorySegment, fileName string) string {
	return fmt.Sprintf("projects/%s/%s/%s", projectID, categorySegment, fileName)
}

// uploadID is deterministic over the upload's identity so repeated
// initiates hand out the same id.
func uploadID(projectID, categorySegment, fileName string) string {
	name := projectID + "/" + categorySegment + "/" + fileName
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

// sanitizeFileName collapses any client-supplied path to a single safe
// segment.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == 0 {
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "upload"
	}
	return name
}
