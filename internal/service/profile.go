package service

import (
	"context"

	"github.com/pngalemo/portfolio/internal/models"
)

// ProfileRepository persists the singleton profile. Both methods must be a
// single atomic store operation.
type ProfileRepository interface {
	// GetOrCreate returns the canonical profile, storing placeholder if none exists.
	GetOrCreate(ctx context.Context, placeholder models.Profile) (*models.Profile, error)
	// Upsert merges patch into the canonical profile, creating it from
	// defaults if none exists.
	Upsert(ctx context.Context, patch models.ProfilePatch, defaults models.Profile) (*models.Profile, error)
}

// ProfileService serves the about-me profile.
type ProfileService struct {
	core
	repo ProfileRepository
}

// NewProfileService constructs a ProfileService over repo.
func NewProfileService(repo ProfileRepository, opts ...Option) *ProfileService {
	return &ProfileService{core: newCore(opts), repo: repo}
}

// Get returns the canonical profile. An empty store gets the placeholder
// profile persisted and returned.
func (s *ProfileService) Get(ctx context.Context) (*models.Profile, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.repo.GetOrCreate(ctx, PlaceholderProfile())
	if err != nil {
		return nil, s.fail("get profile", err)
	}
	return p, nil
}

// Upsert merges the supplied fields into the canonical profile. Repeating
// the same patch leaves the profile unchanged.
func (s *ProfileService) Upsert(ctx context.Context, patch models.ProfilePatch) (*models.Profile, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.repo.Upsert(ctx, patch, DefaultProfile())
	if err != nil {
		return nil, s.fail("upsert profile", err)
	}
	return p, nil
}
