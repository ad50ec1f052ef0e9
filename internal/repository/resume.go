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

// PostgresResumeRepository implements resume item persistence against a PostgreSQL database.
type PostgresResumeRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresResumeRepository creates a PostgresResumeRepository using the provided *sql.DB.
func NewPostgresResumeRepository(db *sql.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{DB: db}
}

const resumeColumns = `id, category, title, organization, location, start_date, end_date, description, details, skill_name, skill_level, gpa, certificate_url, created_at, updated_at`

// ListResumeItems returns stored items, newest start date first and then by
// category. An empty category returns every item.
func (r *PostgresResumeRepository) ListResumeItems(ctx context.Context, category models.Category) ([]models.ResumeItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+resumeColumns+` FROM resume_items
		WHERE ($1::text = '' OR category = $1)
		ORDER BY start_date DESC NULLS LAST, category ASC
	`, string(category))
	if err != nil {
		return nil, fmt.Errorf("ListResumeItems: %w", err)
	}
	defer rows.Close()

	items := []models.ResumeItem{}
	for rows.Next() {
		item, err := scanResumeItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListResumeItems: %w", err)
	}
	return items, nil
}

// GetResumeItem fetches a single item by id.
func (r *PostgresResumeRepository) GetResumeItem(ctx context.Context, id string) (*models.ResumeItem, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+resumeColumns+` FROM resume_items WHERE id = $1`, id)
	item, err := scanResumeItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Resume item")
	}
	if err != nil {
		return nil, fmt.Errorf("GetResumeItem: %w", err)
	}
	return item, nil
}

// CreateResumeItem stores item under a new id and returns the stored item.
func (r *PostgresResumeRepository) CreateResumeItem(ctx context.Context, item models.ResumeItem) (*models.ResumeItem, error) {
	item.ID = uuid.NewString()
	var created, updated time.Time
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO resume_items (id, category, title, organization, location, start_date, end_date,
			description, details, skill_name, skill_level, gpa, certificate_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`, resumeArgs(item)...).Scan(&created, &updated)
	if err != nil {
		return nil, fmt.Errorf("CreateResumeItem: %w", err)
	}
	item.CreatedAt, item.UpdatedAt = &created, &updated
	return &item, nil
}

// UpdateResumeItem overwrites the stored item with id item.ID.
func (r *PostgresResumeRepository) UpdateResumeItem(ctx context.Context, item models.ResumeItem) (*models.ResumeItem, error) {
	var created, updated time.Time
	err := r.DB.QueryRowContext(ctx, `
		UPDATE resume_items SET
			category = $2, title = $3, organization = $4, location = $5, start_date = $6, end_date = $7,
			description = $8, details = $9, skill_name = $10, skill_level = $11, gpa = $12,
			certificate_url = $13, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, resumeArgs(item)...).Scan(&created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Resume item")
	}
	if err != nil {
		return nil, fmt.Errorf("UpdateResumeItem: %w", err)
	}
	item.CreatedAt, item.UpdatedAt = &created, &updated
	return &item, nil
}

// DeleteResumeItem permanently removes the item with the given id.
func (r *PostgresResumeRepository) DeleteResumeItem(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resume_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteResumeItem: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteResumeItem: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("Resume item")
	}
	return nil
}

func resumeArgs(item models.ResumeItem) []any {
	return []any{
		item.ID, string(item.Category), item.Title, item.Organization, item.Location, item.StartDate, item.EndDate,
		item.Description, pq.Array(nonNil(item.Details)), item.SkillName, item.SkillLevel, item.GPA, item.CertificateURL,
	}
}

func scanResumeItem(row rowScanner) (*models.ResumeItem, error) {
	var (
		item             models.ResumeItem
		category         string
		start, end       sql.NullTime
		gpa              sql.NullFloat64
		created, updated time.Time
	)
	err := row.Scan(&item.ID, &category, &item.Title, &item.Organization, &item.Location, &start, &end,
		&item.Description, pq.Array(&item.Details), &item.SkillName, &item.SkillLevel, &gpa,
		&item.CertificateURL, &created, &updated)
	if err != nil {
		return nil, err
	}
	item.Category = models.Category(category)
	item.StartDate, item.EndDate = timePtr(start), timePtr(end)
	if gpa.Valid {
		v := gpa.Float64
		item.GPA = &v
	}
	if len(item.Details) == 0 {
		item.Details = nil
	}
	item.CreatedAt, item.UpdatedAt = &created, &updated
	return &item, nil
}
