package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines client data access interface
type Repository interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	GetByStudioAndEmail(ctx context.Context, studioID, email string) (*Client, error)
	List(ctx context.Context, studioID string, filter ListFilter) ([]*Client, int, error)
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id string) error
	RecountProjects(ctx context.Context, clientID string) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new client repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, client *Client) error {
	query := `
		INSERT INTO clients (id, studio_id, full_name, email, phone, notes, total_projects, last_project_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		client.ID,
		client.StudioID,
		client.FullName,
		client.Email,
		client.Phone,
		client.Notes,
		client.TotalProjects,
		client.LastProjectDate,
		client.CreatedAt,
		client.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id string) (*Client, error) {
	var c Client
	err := r.db.GetContext(ctx, &c, `SELECT * FROM clients WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetByStudioAndEmail(ctx context.Context, studioID, email string) (*Client, error) {
	var c Client
	query := `SELECT * FROM clients WHERE studio_id = $1 AND LOWER(email) = LOWER($2)`
	err := r.db.GetContext(ctx, &c, query, studioID, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context, studioID string, filter ListFilter) ([]*Client, int, error) {
	where := `WHERE studio_id = $1`
	args := []interface{}{studioID}

	if filter.Search != "" {
		where += ` AND (full_name ILIKE $2 OR email ILIKE $2 OR phone ILIKE $2)`
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM clients `+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT * FROM clients %s ORDER BY full_name ASC OFFSET $%d LIMIT $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, filter.Offset, filter.Limit)

	clients := []*Client{}
	if err := r.db.SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *repository) Update(ctx context.Context, client *Client) error {
	query := `
		UPDATE clients
		SET full_name = $2, email = $3, phone = $4, notes = $5, updated_at = $6
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		client.ID,
		client.FullName,
		client.Email,
		client.Phone,
		client.Notes,
		client.UpdatedAt,
	)
	return err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	return err
}

// RecountProjects recomputes the denormalized project counters from the
// projects table instead of incrementing blindly.
func (r *repository) RecountProjects(ctx context.Context, clientID string) error {
	query := `
		UPDATE clients SET
			total_projects = (SELECT COUNT(*) FROM projects WHERE client_id = $1),
			last_project_date = (SELECT MAX(created_at) FROM projects WHERE client_id = $1)
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, clientID)
	return err
}
