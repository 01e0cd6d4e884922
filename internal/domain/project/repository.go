package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines project data access interface
type Repository interface {
	Create(ctx context.Context, project *Project, settings *Settings, categoryNames []string) error
	GetByID(ctx context.Context, id string) (*Project, error)
	GetByAccessURL(ctx context.Context, accessURL string) (*Project, error)
	List(ctx context.Context, studioID string, filter ListFilter) ([]*Project, int, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, project *Project) error
	GetSettings(ctx context.Context, projectID string) (*Settings, error)
	UpdateSettings(ctx context.Context, settings *Settings) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new project repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const recountClientSQL = `
	UPDATE clients SET
		total_projects = (SELECT COUNT(*) FROM projects WHERE client_id = $1),
		last_project_date = (SELECT MAX(created_at) FROM projects WHERE client_id = $1)
	WHERE id = $1
`

// Create inserts the project with its settings row and starter
// categories, then recomputes the client's project counters, all in
// one transaction.
func (r *repository) Create(ctx context.Context, project *Project, settings *Settings, categoryNames []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertProject := `
		INSERT INTO projects (
			id, studio_id, client_id, name, description, status, access_url, password_hash,
			expires_at, total_images, selected_images, total_comments, storage_used_bytes,
			cover_image_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err = tx.ExecContext(ctx, insertProject,
		project.ID, project.StudioID, project.ClientID, project.Name, project.Description,
		project.Status, project.AccessURL, project.PasswordHash, project.ExpiresAt,
		project.TotalImages, project.SelectedImages, project.TotalComments, project.StorageUsedBytes,
		project.CoverImageID, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return err
	}

	insertSettings := `
		INSERT INTO project_settings (project_id, allow_downloads, allow_comments, allow_favorites, max_selections, watermark_enabled)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.ExecContext(ctx, insertSettings,
		settings.ProjectID, settings.AllowDownloads, settings.AllowComments,
		settings.AllowFavorites, settings.MaxSelections, settings.WatermarkEnabled,
	)
	if err != nil {
		return err
	}

	insertCategory := `
		INSERT INTO categories (id, project_id, name, sort_order, image_count, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, 0, $4)
	`
	for i, name := range categoryNames {
		if _, err := tx.ExecContext(ctx, insertCategory, project.ID, name, i, project.CreatedAt); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, recountClientSQL, project.ClientID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Project, error) {
	var p Project
	err := r.db.GetContext(ctx, &p, `SELECT * FROM projects WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByAccessURL(ctx context.Context, accessURL string) (*Project, error) {
	var p Project
	err := r.db.GetContext(ctx, &p, `SELECT * FROM projects WHERE access_url = $1`, accessURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, studioID string, filter ListFilter) ([]*Project, int, error) {
	where := `WHERE studio_id = $1`
	args := []interface{}{studioID}

	if filter.Status != "" {
		where += ` AND status = $2`
		args = append(args, filter.Status)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM projects `+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT * FROM projects %s ORDER BY created_at DESC OFFSET $%d LIMIT $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, filter.Offset, filter.Limit)

	projects := []*Project{}
	if err := r.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *repository) Update(ctx context.Context, project *Project) error {
	query := `
		UPDATE projects SET
			name = $2, description = $3, status = $4, expires_at = $5,
			cover_image_id = $6, updated_at = $7
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Description, project.Status,
		project.ExpiresAt, project.CoverImageID, project.UpdatedAt,
	)
	return err
}

// Delete removes the project (settings, categories, images, versions
// and comments cascade) and recomputes the client's counters.
func (r *repository) Delete(ctx context.Context, project *Project) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, project.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, recountClientSQL, project.ClientID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) GetSettings(ctx context.Context, projectID string) (*Settings, error) {
	var s Settings
	err := r.db.GetContext(ctx, &s, `SELECT * FROM project_settings WHERE project_id = $1`, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) UpdateSettings(ctx context.Context, settings *Settings) error {
	query := `
		UPDATE project_settings SET
			allow_downloads = $2, allow_comments = $3, allow_favorites = $4,
			max_selections = $5, watermark_enabled = $6
		WHERE project_id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		settings.ProjectID, settings.AllowDownloads, settings.AllowComments,
		settings.AllowFavorites, settings.MaxSelections, settings.WatermarkEnabled,
	)
	return err
}
