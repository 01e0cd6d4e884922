package comment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Repository defines comment data access interface
type Repository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	ListByImage(ctx context.Context, imageID string) ([]*Comment, error)
	SetResolved(ctx context.Context, id string, resolved bool) error
	Delete(ctx context.Context, id string) error
	ImageOwnership(ctx context.Context, imageID string) (projectID, studioID string, err error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new comment repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const recountSQL = `
	UPDATE images SET comment_count = (SELECT COUNT(*) FROM comments WHERE image_id = $1)
	WHERE id = $1
`

const recountProjectSQL = `
	UPDATE projects SET
		total_comments = (
			SELECT COUNT(*) FROM comments c
			JOIN images i ON i.id = c.image_id
			WHERE i.project_id = projects.id
		),
		updated_at = NOW()
	WHERE id = (SELECT project_id FROM images WHERE id = $1)
`

// Create inserts the comment and recomputes the image and project
// comment counters in the same transaction.
func (r *repository) Create(ctx context.Context, comment *Comment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO comments (id, image_id, parent_id, author_type, author_name, body, is_resolved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.ExecContext(ctx, query,
		comment.ID,
		comment.ImageID,
		comment.ParentID,
		comment.AuthorType,
		comment.AuthorName,
		comment.Body,
		comment.IsResolved,
		comment.CreatedAt,
	)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, recountSQL, comment.ImageID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, recountProjectSQL, comment.ImageID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Comment, error) {
	var c Comment
	err := r.db.GetContext(ctx, &c, `SELECT * FROM comments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListByImage(ctx context.Context, imageID string) ([]*Comment, error) {
	comments := []*Comment{}
	query := `SELECT * FROM comments WHERE image_id = $1 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &comments, query, imageID); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *repository) SetResolved(ctx context.Context, id string, resolved bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE comments SET is_resolved = $2 WHERE id = $1`, id, resolved)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// Delete removes the comment (replies cascade) and recounts.
func (r *repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var imageID string
	query := `DELETE FROM comments WHERE id = $1 RETURNING image_id`
	if err := tx.GetContext(ctx, &imageID, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCommentNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, recountSQL, imageID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, recountProjectSQL, imageID); err != nil {
		return err
	}

	return tx.Commit()
}

// ImageOwnership resolves the project and studio an image belongs to,
// for access checks. Both empty when the image does not exist.
func (r *repository) ImageOwnership(ctx context.Context, imageID string) (string, string, error) {
	var row struct {
		ProjectID string `db:"project_id"`
		StudioID  string `db:"studio_id"`
	}
	query := `
		SELECT i.project_id, p.studio_id FROM images i
		JOIN projects p ON p.id = i.project_id
		WHERE i.id = $1
	`
	err := r.db.GetContext(ctx, &row, query, imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", nil
		}
		return "", "", err
	}
	return row.ProjectID, row.StudioID, nil
}
