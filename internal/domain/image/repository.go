package image

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines image data access interface
type Repository interface {
	CreateWithVersion(ctx context.Context, img *Image, versions []*Version) error
	GetByID(ctx context.Context, id string) (*Image, error)
	GetByProjectAndID(ctx context.Context, id, projectID string) (*Image, error)
	FindByOriginalName(ctx context.Context, projectID string, categoryID *string, originalFileName string) (*Image, error)
	List(ctx context.Context, projectID string, filter ListFilter) ([]*Image, int, error)
	ListByProject(ctx context.Context, projectID string) ([]*Image, error)
	VersionsByImage(ctx context.Context, imageID string) ([]*Version, error)
	SetSelected(ctx context.Context, id string, selected bool) error
	SetFavorite(ctx context.Context, id string, favorite bool) error
	Update(ctx context.Context, img *Image, previousCategoryID *string) error
	Delete(ctx context.Context, img *Image) error
	CategoryProject(ctx context.Context, categoryID string) (string, error)
	ProjectStudioID(ctx context.Context, projectID string) (string, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new image repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const recountProjectSQL = `
	UPDATE projects SET
		total_images = (SELECT COUNT(*) FROM images WHERE project_id = $1),
		selected_images = (SELECT COUNT(*) FROM images WHERE project_id = $1 AND is_selected),
		storage_used_bytes = (SELECT COALESCE(SUM(file_size_bytes), 0) FROM images WHERE project_id = $1),
		total_comments = (
			SELECT COUNT(*) FROM comments c
			JOIN images i ON i.id = c.image_id
			WHERE i.project_id = $1
		),
		updated_at = NOW()
	WHERE id = $1
`

const recountCategorySQL = `
	UPDATE categories SET image_count = (SELECT COUNT(*) FROM images WHERE category_id = $1)
	WHERE id = $1
`

// CreateWithVersion inserts the image row and its versions, then
// recomputes the project and category counters in the same transaction.
func (r *repository) CreateWithVersion(ctx context.Context, img *Image, versions []*Version) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertImage := `
		INSERT INTO images (
			id, project_id, category_id, original_file_name,
			storage_key_original, storage_key_thumbnail, content_type, file_size_bytes,
			width, height, rating, is_selected, is_favorite, comment_count,
			uploaded_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err = tx.ExecContext(ctx, insertImage,
		img.ID, img.ProjectID, img.CategoryID, img.OriginalFileName,
		img.StorageKeyOriginal, img.StorageKeyThumbnail, img.ContentType, img.FileSizeBytes,
		img.Width, img.Height, img.Rating, img.IsSelected, img.IsFavorite, img.CommentCount,
		img.UploadedAt, img.UpdatedAt,
	)
	if err != nil {
		return err
	}

	insertVersion := `
		INSERT INTO image_versions (id, image_id, version_name, storage_key, file_size_bytes, width, height, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, v := range versions {
		if _, err := tx.ExecContext(ctx, insertVersion,
			v.ID, v.ImageID, v.VersionName, v.StorageKey, v.FileSizeBytes, v.Width, v.Height, v.CreatedAt,
		); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, recountProjectSQL, img.ProjectID); err != nil {
		return err
	}
	if img.CategoryID != nil {
		if _, err := tx.ExecContext(ctx, recountCategorySQL, *img.CategoryID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Image, error) {
	var img Image
	err := r.db.GetContext(ctx, &img, `SELECT * FROM images WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

func (r *repository) GetByProjectAndID(ctx context.Context, id, projectID string) (*Image, error) {
	var img Image
	query := `SELECT * FROM images WHERE id = $1 AND project_id = $2`
	err := r.db.GetContext(ctx, &img, query, id, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

// FindByOriginalName locates a committed image by its upload identity,
// used for idempotent completes.
func (r *repository) FindByOriginalName(ctx context.Context, projectID string, categoryID *string, originalFileName string) (*Image, error) {
	var img Image
	var err error
	if categoryID != nil {
		query := `SELECT * FROM images WHERE project_id = $1 AND category_id = $2 AND original_file_name = $3`
		err = r.db.GetContext(ctx, &img, query, projectID, *categoryID, originalFileName)
	} else {
		query := `SELECT * FROM images WHERE project_id = $1 AND category_id IS NULL AND original_file_name = $2`
		err = r.db.GetContext(ctx, &img, query, projectID, originalFileName)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

func (r *repository) List(ctx context.Context, projectID string, filter ListFilter) ([]*Image, int, error) {
	where := `WHERE project_id = $1`
	args := []interface{}{projectID}

	switch filter.Category {
	case "", "all":
	case "uncategorized":
		where += ` AND category_id IS NULL`
	default:
		where += ` AND category_id = $2`
		args = append(args, filter.Category)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM images `+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT * FROM images %s ORDER BY uploaded_at DESC OFFSET $%d LIMIT $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, filter.Offset, filter.Limit)

	images := []*Image{}
	if err := r.db.SelectContext(ctx, &images, query, args...); err != nil {
		return nil, 0, err
	}
	return images, total, nil
}

func (r *repository) ListByProject(ctx context.Context, projectID string) ([]*Image, error) {
	images := []*Image{}
	query := `SELECT * FROM images WHERE project_id = $1 ORDER BY uploaded_at DESC`
	if err := r.db.SelectContext(ctx, &images, query, projectID); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *repository) VersionsByImage(ctx context.Context, imageID string) ([]*Version, error) {
	versions := []*Version{}
	query := `SELECT * FROM image_versions WHERE image_id = $1 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &versions, query, imageID); err != nil {
		return nil, err
	}
	return versions, nil
}

// SetSelected flips the selection flag and recomputes the project's
// selected_images counter in the same transaction.
func (r *repository) SetSelected(ctx context.Context, id string, selected bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var projectID string
	query := `UPDATE images SET is_selected = $2, updated_at = NOW() WHERE id = $1 RETURNING project_id`
	if err := tx.GetContext(ctx, &projectID, query, id, selected); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrImageNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE projects SET
			selected_images = (SELECT COUNT(*) FROM images WHERE project_id = $1 AND is_selected),
			updated_at = NOW()
		WHERE id = $1
	`, projectID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE images SET is_favorite = $2, updated_at = NOW() WHERE id = $1`, id, favorite)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrImageNotFound
	}
	return nil
}

// Update persists flag, rating and category changes and recounts every
// counter the change can shift.
func (r *repository) Update(ctx context.Context, img *Image, previousCategoryID *string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE images SET
			category_id = $2, rating = $3, is_selected = $4, is_favorite = $5, updated_at = $6
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, query,
		img.ID, img.CategoryID, img.Rating, img.IsSelected, img.IsFavorite, img.UpdatedAt,
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, recountProjectSQL, img.ProjectID); err != nil {
		return err
	}
	if previousCategoryID != nil {
		if _, err := tx.ExecContext(ctx, recountCategorySQL, *previousCategoryID); err != nil {
			return err
		}
	}
	if img.CategoryID != nil {
		if _, err := tx.ExecContext(ctx, recountCategorySQL, *img.CategoryID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes the image row (versions and comments cascade) and
// recounts project and category counters.
func (r *repository) Delete(ctx context.Context, img *Image) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, img.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, recountProjectSQL, img.ProjectID); err != nil {
		return err
	}
	if img.CategoryID != nil {
		if _, err := tx.ExecContext(ctx, recountCategorySQL, *img.CategoryID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// CategoryProject returns the project a category belongs to, or ""
// when the category does not exist.
func (r *repository) CategoryProject(ctx context.Context, categoryID string) (string, error) {
	var projectID string
	err := r.db.GetContext(ctx, &projectID, `SELECT project_id FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return projectID, nil
}

// ProjectStudioID returns the owning studio of a project, or "" when
// the project does not exist.
func (r *repository) ProjectStudioID(ctx context.Context, projectID string) (string, error) {
	var studioID string
	err := r.db.GetContext(ctx, &studioID, `SELECT studio_id FROM projects WHERE id = $1`, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return studioID, nil
}
