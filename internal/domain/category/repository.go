package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Repository defines category data access interface
type Repository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	GetByName(ctx context.Context, projectID, name string) (*Category, error)
	ListByProject(ctx context.Context, projectID string) ([]*Category, error)
	DefaultForProject(ctx context.Context, projectID string) (*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
	ProjectStudioID(ctx context.Context, projectID string) (string, error)
	Recount(ctx context.Context, categoryID string) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new category repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, category *Category) error {
	query := `
		INSERT INTO categories (id, project_id, name, description, sort_order, image_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.ProjectID,
		category.Name,
		category.Description,
		category.SortOrder,
		category.ImageCount,
		category.CreatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id string) (*Category, error) {
	var c Category
	err := r.db.GetContext(ctx, &c, `SELECT * FROM categories WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetByName(ctx context.Context, projectID, name string) (*Category, error) {
	var c Category
	query := `SELECT * FROM categories WHERE project_id = $1 AND LOWER(name) = LOWER($2)`
	err := r.db.GetContext(ctx, &c, query, projectID, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListByProject(ctx context.Context, projectID string) ([]*Category, error) {
	categories := []*Category{}
	query := `SELECT * FROM categories WHERE project_id = $1 ORDER BY sort_order ASC, created_at ASC`
	if err := r.db.SelectContext(ctx, &categories, query, projectID); err != nil {
		return nil, err
	}
	return categories, nil
}

// DefaultForProject prefers the "All Photos" category, then the first by
// sort order. Returns nil when the project has no categories at all.
func (r *repository) DefaultForProject(ctx context.Context, projectID string) (*Category, error) {
	var c Category
	query := `
		SELECT * FROM categories WHERE project_id = $1
		ORDER BY (LOWER(name) = LOWER($2)) DESC, sort_order ASC, created_at ASC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &c, query, projectID, DefaultCategoryName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, category *Category) error {
	query := `
		UPDATE categories SET name = $2, description = $3, sort_order = $4
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.SortOrder,
	)
	return err
}

// Delete moves the category's images to the project's fallback category
// (or leaves them uncategorized) before removing the row, then recounts
// the affected counters in the same transaction.
func (r *repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var projectID string
	if err := tx.GetContext(ctx, &projectID, `SELECT project_id FROM categories WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return err
	}

	var fallbackID *string
	err = tx.GetContext(ctx, &fallbackID, `
		SELECT id FROM categories
		WHERE project_id = $1 AND id != $2
		ORDER BY (LOWER(name) = LOWER($3)) DESC, sort_order ASC, created_at ASC
		LIMIT 1
	`, projectID, id, DefaultCategoryName)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE images SET category_id = $2 WHERE category_id = $1`, id, fallbackID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return err
	}
	if fallbackID != nil {
		if _, err := tx.ExecContext(ctx, `
			UPDATE categories SET image_count = (SELECT COUNT(*) FROM images WHERE category_id = $1)
			WHERE id = $1
		`, *fallbackID); err != nil {
			return err
		}
	}

	return tx.Commit()
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

// Recount recomputes image_count from the images table.
func (r *repository) Recount(ctx context.Context, categoryID string) error {
	query := `
		UPDATE categories SET image_count = (SELECT COUNT(*) FROM images WHERE category_id = $1)
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, categoryID)
	return err
}
