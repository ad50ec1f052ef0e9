// Package repository provides persistence implementations for portfolio
// content backed by PostgreSQL or MongoDB.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/pngalemo/portfolio/internal/models"
)

// PostgresProfileRepository stores the singleton profile in a table that
// admits exactly one row.
type PostgresProfileRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresProfileRepository creates a PostgresProfileRepository using the provided *sql.DB.
func NewPostgresProfileRepository(db *sql.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{DB: db}
}

const profileColumns = `name, tagline, bio, profile_image_url, email, phone, location, social_links, skills, created_at, updated_at`

// GetOrCreate returns the canonical profile, persisting placeholder first
// when none exists yet.
func (r *PostgresProfileRepository) GetOrCreate(ctx context.Context, placeholder models.Profile) (*models.Profile, error) {
	links, skills, err := encodeProfileLists(placeholder.SocialLinks, placeholder.Skills)
	if err != nil {
		return nil, err
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO profile (id, name, tagline, bio, profile_image_url, email, phone, location, social_links, skills)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`, placeholder.Name, placeholder.Tagline, placeholder.Bio, placeholder.ProfileImageURL,
		placeholder.Email, placeholder.Phone, placeholder.Location, links, skills)
	if err != nil {
		return nil, fmt.Errorf("insert placeholder profile: %w", err)
	}

	row := r.DB.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profile WHERE id = 1`)
	p, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("GetOrCreate profile: %w", err)
	}
	return p, nil
}

// Upsert merges the supplied fields of patch into the canonical profile in a
// single statement. On first write, omitted fields take their value from
// defaults.
func (r *PostgresProfileRepository) Upsert(ctx context.Context, patch models.ProfilePatch, defaults models.Profile) (*models.Profile, error) {
	insert := patch.Apply(defaults)
	links, skills, err := encodeProfileLists(insert.SocialLinks, insert.Skills)
	if err != nil {
		return nil, err
	}

	var patchLinks, patchSkills any
	if patch.SocialLinks != nil {
		patchLinks = links
	}
	if patch.Skills != nil {
		patchSkills = skills
	}

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO profile (id, name, tagline, bio, profile_image_url, email, phone, location, social_links, skills)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = COALESCE($10::text, profile.name),
			tagline = COALESCE($11::text, profile.tagline),
			bio = COALESCE($12::text, profile.bio),
			profile_image_url = COALESCE($13::text, profile.profile_image_url),
			email = COALESCE($14::text, profile.email),
			phone = COALESCE($15::text, profile.phone),
			location = COALESCE($16::text, profile.location),
			social_links = COALESCE($17::jsonb, profile.social_links),
			skills = COALESCE($18::jsonb, profile.skills),
			updated_at = now()
		RETURNING `+profileColumns,
		insert.Name, insert.Tagline, insert.Bio, insert.ProfileImageURL,
		insert.Email, insert.Phone, insert.Location, links, skills,
		nullable(patch.Name), nullable(patch.Tagline), nullable(patch.Bio), nullable(patch.ProfileImageURL),
		nullable(patch.Email), nullable(patch.Phone), nullable(patch.Location), patchLinks, patchSkills,
	)
	p, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("Upsert profile: %w", err)
	}
	return p, nil
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var (
		p                models.Profile
		links, skills    []byte
		created, updated time.Time
	)
	err := row.Scan(&p.Name, &p.Tagline, &p.Bio, &p.ProfileImageURL, &p.Email, &p.Phone, &p.Location,
		&links, &skills, &created, &updated)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(links, &p.SocialLinks); err != nil {
		return nil, fmt.Errorf("decode social links: %w", err)
	}
	if err := json.Unmarshal(skills, &p.Skills); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}
	p.CreatedAt, p.UpdatedAt = &created, &updated
	return &p, nil
}

func encodeProfileLists(links []models.SocialLink, skills []models.Skill) (string, string, error) {
	if links == nil {
		links = []models.SocialLink{}
	}
	if skills == nil {
		skills = []models.Skill{}
	}
	l, err := json.Marshal(links)
	if err != nil {
		return "", "", fmt.Errorf("encode social links: %w", err)
	}
	s, err := json.Marshal(skills)
	if err != nil {
		return "", "", fmt.Errorf("encode skills: %w", err)
	}
	return string(l), string(s), nil
}

// nullable turns an absent patch field into SQL NULL.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
