package service

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/pngalemo/portfolio/internal/metrics"
	"github.com/pngalemo/portfolio/internal/models"
)

// ResumeRepository persists resume items. Unknown ids yield apperr.NotFound.
type ResumeRepository interface {
	// ListResumeItems returns items of category, or all items when category is empty.
	ListResumeItems(ctx context.Context, category models.Category) ([]models.ResumeItem, error)
	GetResumeItem(ctx context.Context, id string) (*models.ResumeItem, error)
	CreateResumeItem(ctx context.Context, item models.ResumeItem) (*models.ResumeItem, error)
	UpdateResumeItem(ctx context.Context, item models.ResumeItem) (*models.ResumeItem, error)
	DeleteResumeItem(ctx context.Context, id string) error
}

// ResumeService serves resume items.
type ResumeService struct {
	core
	repo ResumeRepository
}

// NewResumeService constructs a ResumeService over repo.
func NewResumeService(repo ResumeRepository, opts ...Option) *ResumeService {
	return &ResumeService{core: newCore(opts), repo: repo}
}

// List returns resume items, newest start date first and then by category.
// A non-empty category restricts the listing to that category. When nothing
// matches, the seed items are returned unfiltered.
func (s *ResumeService) List(ctx context.Context, category models.Category) ([]models.ResumeItem, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	items, err := s.repo.ListResumeItems(ctx, category)
	if err != nil {
		return nil, s.fail("list resume items", err)
	}
	if len(items) == 0 {
		metrics.RecordPlaceholder("resume")
		return SeedResumeItems(), nil
	}

	slices.SortStableFunc(items, func(a, b models.ResumeItem) int {
		if c := newestFirst(a.StartDate, b.StartDate); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return items, nil
}

// Get returns the resume item with the given id.
func (s *ResumeService) Get(ctx context.Context, id string) (*models.ResumeItem, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	item, err := s.repo.GetResumeItem(ctx, id)
	if err != nil {
		return nil, s.fail("get resume item", err)
	}
	return item, nil
}

// Create validates item against its category and stores it.
func (s *ResumeService) Create(ctx context.Context, item models.ResumeItem) (*models.ResumeItem, error) {
	item.ID = ""
	item.CreatedAt, item.UpdatedAt = nil, nil
	normalizeResumeItem(&item)
	if _, err := models.Classify(item); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	created, err := s.repo.CreateResumeItem(ctx, item)
	if err != nil {
		return nil, s.fail("create resume item", err)
	}
	return created, nil
}

// Update loads the item, applies mutate and saves the result once it
// validates against its (possibly changed) category.
func (s *ResumeService) Update(ctx context.Context, id string, mutate func(*models.ResumeItem) error) (*models.ResumeItem, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	current, err := s.repo.GetResumeItem(ctx, id)
	if err != nil {
		return nil, s.fail("get resume item", err)
	}

	next := *current
	if err := mutate(&next); err != nil {
		return nil, err
	}
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	normalizeResumeItem(&next)
	if _, err := models.Classify(next); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateResumeItem(ctx, next)
	if err != nil {
		return nil, s.fail("update resume item", err)
	}
	return updated, nil
}

// Delete removes the resume item permanently.
func (s *ResumeService) Delete(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repo.DeleteResumeItem(ctx, id); err != nil {
		return s.fail("delete resume item", err)
	}
	return nil
}

func normalizeResumeItem(item *models.ResumeItem) {
	item.Title = strings.TrimSpace(item.Title)
	item.Organization = strings.TrimSpace(item.Organization)
	item.Location = strings.TrimSpace(item.Location)
	item.SkillName = strings.TrimSpace(item.SkillName)
	item.SkillLevel = strings.TrimSpace(item.SkillLevel)
	item.CertificateURL = strings.TrimSpace(item.CertificateURL)
}
