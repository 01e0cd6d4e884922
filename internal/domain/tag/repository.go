package tag

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines tag data access interface
type Repository interface {
	GetOrCreate(ctx context.Context, studioID, name string) (*Tag, error)
	GetByName(ctx context.Context, studioID, name string) (*Tag, error)
	ListByStudio(ctx context.Context, studioID string) ([]*Tag, error)
	NamesByImage(ctx context.Context, imageID string) ([]string, error)
	Attach(ctx context.Context, imageID, tagID string) error
	Detach(ctx context.Context, imageID, tagID string) error
	IsAttached(ctx context.Context, imageID, tagID string) (bool, error)
	ReplaceImageTags(ctx context.Context, imageID, studioID string, names []string) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new tag repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// GetByName matches case-insensitively so "Approved" and "approved"
// resolve to the same tag.
func (r *repository) GetByName(ctx context.Context, studioID, name string) (*Tag, error) {
	var t Tag
	query := `SELECT * FROM tags WHERE studio_id = $1 AND LOWER(name) = LOWER($2)`
	err := r.db.GetContext(ctx, &t, query, studioID, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) GetOrCreate(ctx context.Context, studioID, name string) (*Tag, error) {
	existing, err := r.GetByName(ctx, studioID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	t := &Tag{
		ID:        uuid.NewString(),
		StudioID:  studioID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	query := `INSERT INTO tags (id, studio_id, name, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, t.ID, t.StudioID, t.Name, t.CreatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repository) ListByStudio(ctx context.Context, studioID string) ([]*Tag, error) {
	tags := []*Tag{}
	query := `SELECT * FROM tags WHERE studio_id = $1 ORDER BY name ASC`
	if err := r.db.SelectContext(ctx, &tags, query, studioID); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *repository) NamesByImage(ctx context.Context, imageID string) ([]string, error) {
	names := []string{}
	query := `
		SELECT t.name FROM tags t
		JOIN image_tags it ON it.tag_id = t.id
		WHERE it.image_id = $1
		ORDER BY t.name ASC
	`
	if err := r.db.SelectContext(ctx, &names, query, imageID); err != nil {
		return nil, err
	}
	return names, nil
}

func (r *repository) Attach(ctx context.Context, imageID, tagID string) error {
	query := `INSERT INTO image_tags (image_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, imageID, tagID)
	return err
}

func (r *repository) Detach(ctx context.Context, imageID, tagID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM image_tags WHERE image_id = $1 AND tag_id = $2`, imageID, tagID)
	return err
}

func (r *repository) IsAttached(ctx context.Context, imageID, tagID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM image_tags WHERE image_id = $1 AND tag_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, imageID, tagID); err != nil {
		return false, err
	}
	return exists, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ReplaceImageTags swaps an image's tag set for the given names,
// creating missing tags in the studio's scope.
func (r *repository) ReplaceImageTags(ctx context.Context, imageID, studioID string, names []string) error {
	tagIDs := make([]string, 0, len(names))
	seen := map[string]bool{}
	for _, name := range names {
		key := normalize(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		t, err := r.GetOrCreate(ctx, studioID, name)
		if err != nil {
			return err
		}
		tagIDs = append(tagIDs, t.ID)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM image_tags WHERE image_id = $1`, imageID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO image_tags (image_id, tag_id) VALUES ($1, $2)`, imageID, tagID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
