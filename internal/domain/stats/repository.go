package stats

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when the requested scope does not exist
var ErrNotFound = errors.New("not found")

// Repository computes aggregates directly from the source tables, not
// the denormalized counters.
type Repository interface {
	ProjectStats(ctx context.Context, studioID, projectID string) (*ProjectStats, error)
	Dashboard(ctx context.Context, studioID string) (*Dashboard, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new stats repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ProjectStats(ctx context.Context, studioID, projectID string) (*ProjectStats, error) {
	var owner string
	err := r.db.GetContext(ctx, &owner, `SELECT studio_id FROM projects WHERE id = $1`, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if owner != studioID {
		return nil, ErrNotFound
	}

	stats := &ProjectStats{ProjectID: projectID, Categories: []*CategoryStats{}}

	totals := `
		SELECT
			COUNT(*) AS total_images,
			COUNT(*) FILTER (WHERE is_selected) AS selected_images,
			COUNT(*) FILTER (WHERE is_favorite) AS favorite_images,
			COALESCE(SUM(file_size_bytes), 0) AS storage_used_bytes
		FROM images WHERE project_id = $1
	`
	row := struct {
		TotalImages      int   `db:"total_images"`
		SelectedImages   int   `db:"selected_images"`
		FavoriteImages   int   `db:"favorite_images"`
		StorageUsedBytes int64 `db:"storage_used_bytes"`
	}{}
	if err := r.db.GetContext(ctx, &row, totals, projectID); err != nil {
		return nil, err
	}
	stats.TotalImages = row.TotalImages
	stats.SelectedImages = row.SelectedImages
	stats.FavoriteImages = row.FavoriteImages
	stats.StorageUsedBytes = row.StorageUsedBytes

	comments := `
		SELECT COUNT(*) FROM comments c
		JOIN images i ON i.id = c.image_id
		WHERE i.project_id = $1
	`
	if err := r.db.GetContext(ctx, &stats.TotalComments, comments, projectID); err != nil {
		return nil, err
	}

	breakdown := `
		SELECT
			c.id, c.name,
			COUNT(i.id) AS image_count,
			COUNT(i.id) FILTER (WHERE i.is_selected) AS selected_count
		FROM categories c
		LEFT JOIN images i ON i.category_id = c.id
		WHERE c.project_id = $1
		GROUP BY c.id, c.name, c.sort_order
		ORDER BY c.sort_order ASC
	`
	if err := r.db.SelectContext(ctx, &stats.Categories, breakdown, projectID); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *repository) Dashboard(ctx context.Context, studioID string) (*Dashboard, error) {
	d := &Dashboard{RecentProjects: []*RecentProject{}}

	projects := `
		SELECT
			COUNT(*) AS total_projects,
			COUNT(*) FILTER (WHERE status NOT IN ('delivered', 'archived')) AS active_projects
		FROM projects WHERE studio_id = $1
	`
	row := struct {
		TotalProjects  int `db:"total_projects"`
		ActiveProjects int `db:"active_projects"`
	}{}
	if err := r.db.GetContext(ctx, &row, projects, studioID); err != nil {
		return nil, err
	}
	d.TotalProjects = row.TotalProjects
	d.ActiveProjects = row.ActiveProjects

	images := `
		SELECT COUNT(*) AS total_images, COALESCE(SUM(file_size_bytes), 0) AS storage_used_bytes
		FROM images i
		JOIN projects p ON p.id = i.project_id
		WHERE p.studio_id = $1
	`
	imgRow := struct {
		TotalImages      int   `db:"total_images"`
		StorageUsedBytes int64 `db:"storage_used_bytes"`
	}{}
	if err := r.db.GetContext(ctx, &imgRow, images, studioID); err != nil {
		return nil, err
	}
	d.TotalImages = imgRow.TotalImages
	d.StorageUsedBytes = imgRow.StorageUsedBytes

	if err := r.db.GetContext(ctx, &d.TotalClients,
		`SELECT COUNT(*) FROM clients WHERE studio_id = $1`, studioID); err != nil {
		return nil, err
	}

	comments := `
		SELECT COUNT(*) FROM comments c
		JOIN images i ON i.id = c.image_id
		JOIN projects p ON p.id = i.project_id
		WHERE p.studio_id = $1
	`
	if err := r.db.GetContext(ctx, &d.TotalComments, comments, studioID); err != nil {
		return nil, err
	}

	recent := `
		SELECT p.id, p.name, p.status, cl.full_name AS client_name, p.total_images, p.created_at
		FROM projects p
		JOIN clients cl ON cl.id = p.client_id
		WHERE p.studio_id = $1
		ORDER BY p.created_at DESC
		LIMIT 5
	`
	if err := r.db.SelectContext(ctx, &d.RecentProjects, recent, studioID); err != nil {
		return nil, err
	}

	return d, nil
}
