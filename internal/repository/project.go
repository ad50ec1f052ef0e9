package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pngalemo/portfolio/internal/apperr"
	"github.com/pngalemo/portfolio/internal/models"
)

// PostgresProjectRepository implements project persistence against a PostgreSQL database.
type PostgresProjectRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresProjectRepository creates a PostgresProjectRepository using the provided *sql.DB.
func NewPostgresProjectRepository(db *sql.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{DB: db}
}

const projectColumns = `id, title, description, technologies, image_url, project_url, source_code_url, start_date, end_date, featured, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ListProjects returns every stored project, newest start date first.
func (r *PostgresProjectRepository) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+projectColumns+` FROM projects ORDER BY start_date DESC NULLS LAST, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("ListProjects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListProjects: %w", err)
	}
	return projects, nil
}

// GetProject fetches a single project by id.
func (r *PostgresProjectRepository) GetProject(ctx context.Context, id string) (*models.Project, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Project")
	}
	if err != nil {
		return nil, fmt.Errorf("GetProject: %w", err)
	}
	return p, nil
}

// CreateProject stores p under a new id and returns the stored project.
func (r *PostgresProjectRepository) CreateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	p.ID = uuid.NewString()
	var created, updated time.Time
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO projects (id, title, description, technologies, image_url, project_url, source_code_url, start_date, end_date, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`, p.ID, p.Title, p.Description, pq.Array(nonNil(p.Technologies)), p.ImageURL, p.ProjectURL, p.SourceCodeURL,
		p.StartDate, p.EndDate, p.Featured).Scan(&created, &updated)
	if err != nil {
		return nil, fmt.Errorf("CreateProject: %w", err)
	}
	p.CreatedAt, p.UpdatedAt = &created, &updated
	return &p, nil
}

// UpdateProject overwrites the stored project with id p.ID.
func (r *PostgresProjectRepository) UpdateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	var created, updated time.Time
	err := r.DB.QueryRowContext(ctx, `
		UPDATE projects SET
			title = $2, description = $3, technologies = $4, image_url = $5, project_url = $6,
			source_code_url = $7, start_date = $8, end_date = $9, featured = $10, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, p.ID, p.Title, p.Description, pq.Array(nonNil(p.Technologies)), p.ImageURL, p.ProjectURL, p.SourceCodeURL,
		p.StartDate, p.EndDate, p.Featured).Scan(&created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Project")
	}
	if err != nil {
		return nil, fmt.Errorf("UpdateProject: %w", err)
	}
	p.CreatedAt, p.UpdatedAt = &created, &updated
	return &p, nil
}

// DeleteProject permanently removes the project with the given id.
func (r *PostgresProjectRepository) DeleteProject(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteProject: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteProject: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("Project")
	}
	return nil
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		p                models.Project
		start, end       sql.NullTime
		created, updated time.Time
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, pq.Array(&p.Technologies), &p.ImageURL, &p.ProjectURL,
		&p.SourceCodeURL, &start, &end, &p.Featured, &created, &updated)
	if err != nil {
		return nil, err
	}
	p.StartDate, p.EndDate = timePtr(start), timePtr(end)
	p.CreatedAt, p.UpdatedAt = &created, &updated
	return &p, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
