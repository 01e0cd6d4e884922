package studio

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Repository defines studio data access interface
type Repository interface {
	Create(ctx context.Context, studio *Studio) error
	GetByID(ctx context.Context, id string) (*Studio, error)
	GetByEmail(ctx context.Context, email string) (*Studio, error)
	List(ctx context.Context, offset, limit int) ([]*Studio, int, error)
	Update(ctx context.Context, studio *Studio) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new studio repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, studio *Studio) error {
	query := `
		INSERT INTO studios (id, name, email, phone, logo_url, website, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		studio.ID,
		studio.Name,
		studio.Email,
		studio.Phone,
		studio.LogoURL,
		studio.Website,
		studio.Timezone,
		studio.CreatedAt,
		studio.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id string) (*Studio, error) {
	var studio Studio
	err := r.db.GetContext(ctx, &studio, `SELECT * FROM studios WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &studio, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Studio, error) {
	var studio Studio
	err := r.db.GetContext(ctx, &studio, `SELECT * FROM studios WHERE LOWER(email) = LOWER($1)`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &studio, nil
}

func (r *repository) List(ctx context.Context, offset, limit int) ([]*Studio, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM studios`); err != nil {
		return nil, 0, err
	}

	studios := []*Studio{}
	query := `SELECT * FROM studios ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	if err := r.db.SelectContext(ctx, &studios, query, offset, limit); err != nil {
		return nil, 0, err
	}
	return studios, total, nil
}

func (r *repository) Update(ctx context.Context, studio *Studio) error {
	query := `
		UPDATE studios
		SET name = $2, phone = $3, logo_url = $4, website = $5, timezone = $6, updated_at = $7
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		studio.ID,
		studio.Name,
		studio.Phone,
		studio.LogoURL,
		studio.Website,
		studio.Timezone,
		studio.UpdatedAt,
	)
	return err
}
