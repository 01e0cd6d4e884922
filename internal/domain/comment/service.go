package comment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains comment business logic
type Service struct {
	repo Repository
}

// NewService creates comment service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns an image's comments as reply threads, roots ordered by
// creation time.
func (s *Service) List(ctx context.Context, studioID, imageID string) ([]*Thread, error) {
	if err := s.checkImage(ctx, studioID, imageID); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListByImage(ctx, imageID)
	if err != nil {
		return nil, err
	}
	return buildThreads(comments), nil
}

// Create adds a comment or a reply to an image
func (s *Service) Create(ctx context.Context, studioID, imageID, authorType, authorName string, req *CreateCommentRequest) (*Comment, error) {
	if err := s.checkImage(ctx, studioID, imageID); err != nil {
		return nil, err
	}

	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, ErrEmptyBody
	}

	if req.AuthorName != nil && *req.AuthorName != "" {
		authorName = *req.AuthorName
	}

	c := &Comment{
		ID:         uuid.NewString(),
		ImageID:    imageID,
		ParentID:   req.ParentID,
		AuthorType: authorType,
		AuthorName: authorName,
		Body:       body,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Resolve toggles a comment's resolved flag
func (s *Service) Resolve(ctx context.Context, studioID, imageID, id string, resolved bool) (*Comment, error) {
	if err := s.checkImage(ctx, studioID, imageID); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.ImageID != imageID {
		return nil, ErrCommentNotFound
	}

	if err := s.repo.SetResolved(ctx, id, resolved); err != nil {
		return nil, err
	}
	c.IsResolved = resolved
	return c, nil
}

// Delete removes a comment and its replies
func (s *Service) Delete(ctx context.Context, studioID, imageID, id string) error {
	if err := s.checkImage(ctx, studioID, imageID); err != nil {
		return err
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil || c.ImageID != imageID {
		return ErrCommentNotFound
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) checkImage(ctx context.Context, studioID, imageID string) error {
	_, owner, err := s.repo.ImageOwnership(ctx, imageID)
	if err != nil {
		return err
	}
	if owner == "" || owner != studioID {
		return ErrImageNotFound
	}
	return nil
}

// buildThreads groups a flat, time-ordered comment list into reply
// trees keyed by parent_id. Replies to missing parents surface as
// roots rather than disappearing.
func buildThreads(comments []*Comment) []*Thread {
	byID := make(map[string]*Thread, len(comments))
	for _, c := range comments {
		byID[c.ID] = &Thread{Comment: *c, Replies: []*Thread{}}
	}

	roots := []*Thread{}
	for _, c := range comments {
		t := byID[c.ID]
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, t)
				continue
			}
		}
		roots = append(roots, t)
	}
	return roots
}
