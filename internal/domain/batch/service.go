package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/photoproof/photoproof-api/internal/domain/comment"
	"github.com/photoproof/photoproof-api/internal/domain/image"
	"github.com/photoproof/photoproof-api/internal/domain/project"
	"github.com/photoproof/photoproof-api/internal/domain/tag"
)

// Service replays queued client actions. Each action commits or fails
// on its own; one bad action never poisons the rest of the batch.
type Service struct {
	images   image.Repository
	comments comment.Repository
	tags     tag.Repository
	projects project.Repository
}

// NewService creates batch service
func NewService(images image.Repository, comments comment.Repository, tags tag.Repository, projects project.Repository) *Service {
	return &Service{images: images, comments: comments, tags: tags, projects: projects}
}

// Process runs the actions in order. Duplicate clientActionIds within
// the batch fail; cross-request replays are not tracked.
func (s *Service) Process(ctx context.Context, studioID string, req *Request) *Response {
	resp := &Response{
		Accepted: []string{},
		Failed:   []Failure{},
		Metadata: Metadata{TotalCount: len(req.Actions)},
	}

	seen := make(map[string]bool, len(req.Actions))
	for _, action := range req.Actions {
		if seen[action.ClientActionID] {
			resp.Failed = append(resp.Failed, Failure{
				ClientActionID: action.ClientActionID,
				Reason:         "duplicate client_action_id in batch",
			})
			continue
		}
		seen[action.ClientActionID] = true

		if err := s.dispatch(ctx, studioID, action); err != nil {
			resp.Failed = append(resp.Failed, Failure{
				ClientActionID: action.ClientActionID,
				Reason:         err.Error(),
			})
			continue
		}
		resp.Accepted = append(resp.Accepted, action.ClientActionID)
	}

	resp.Metadata.ProcessedCount = len(resp.Accepted)
	return resp
}

func (s *Service) dispatch(ctx context.Context, studioID string, action Action) error {
	switch action.ActionType {
	case ActionSelect:
		return s.applySelect(ctx, studioID, action)
	case ActionFavorite:
		return s.applyFavorite(ctx, studioID, action)
	case ActionComment:
		return s.applyComment(ctx, studioID, action)
	case ActionApprove:
		return s.applyApprove(ctx, studioID, action)
	case ActionDownload:
		// Nothing to mutate; recorded for the log only
		log.Info().
			Str("client_action_id", action.ClientActionID).
			Str("photo_id", stringOrEmpty(action.PhotoID)).
			Msg("download recorded")
		return nil
	default:
		return fmt.Errorf("unknown action type: %s", action.ActionType)
	}
}

func (s *Service) applySelect(ctx context.Context, studioID string, action Action) error {
	img, err := s.lookupImage(ctx, studioID, action)
	if err != nil {
		return err
	}
	return s.images.SetSelected(ctx, img.ID, boolPayload(action.Payload, "selected"))
}

func (s *Service) applyFavorite(ctx context.Context, studioID string, action Action) error {
	img, err := s.lookupImage(ctx, studioID, action)
	if err != nil {
		return err
	}
	return s.images.SetFavorite(ctx, img.ID, boolPayload(action.Payload, "favorite"))
}

func (s *Service) applyComment(ctx context.Context, studioID string, action Action) error {
	img, err := s.lookupImage(ctx, studioID, action)
	if err != nil {
		return err
	}

	text, _ := action.Payload["commentText"].(string)
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("comment text is required")
	}

	authorName, _ := action.Payload["authorName"].(string)
	if authorName == "" {
		authorName = "Client"
	}

	var parentID *string
	if p, ok := action.Payload["parentId"].(string); ok && p != "" {
		parentID = &p
	}

	createdAt := time.Now().UTC()
	if action.Timestamp != nil {
		createdAt = action.Timestamp.UTC()
	}

	return s.comments.Create(ctx, &comment.Comment{
		ID:         uuid.NewString(),
		ImageID:    img.ID,
		ParentID:   parentID,
		AuthorType: comment.AuthorClient,
		AuthorName: authorName,
		Body:       text,
		CreatedAt:  createdAt,
	})
}

// applyApprove toggles the sentinel "approved" tag on the image,
// creating it in the studio's scope when missing.
func (s *Service) applyApprove(ctx context.Context, studioID string, action Action) error {
	img, err := s.lookupImage(ctx, studioID, action)
	if err != nil {
		return err
	}

	t, err := s.tags.GetOrCreate(ctx, studioID, tag.ApprovedTagName)
	if err != nil {
		return err
	}

	if boolPayload(action.Payload, "approved") {
		return s.tags.Attach(ctx, img.ID, t.ID)
	}
	return s.tags.Detach(ctx, img.ID, t.ID)
}

func (s *Service) lookupImage(ctx context.Context, studioID string, action Action) (*image.Image, error) {
	if action.PhotoID == nil || action.ProjectID == nil {
		return nil, fmt.Errorf("photoId and projectId are required")
	}

	p, err := s.projects.GetByID(ctx, *action.ProjectID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.StudioID != studioID {
		return nil, fmt.Errorf("project not found: %s", *action.ProjectID)
	}

	img, err := s.images.GetByProjectAndID(ctx, *action.PhotoID, *action.ProjectID)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("image not found: %s", *action.PhotoID)
	}
	return img, nil
}

// boolPayload reads a payload flag; a missing or non-boolean value
// reads as false, so a bare action clears rather than sets.
func boolPayload(payload map[string]interface{}, key string) bool {
	v, _ := payload[key].(bool)
	return v
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
