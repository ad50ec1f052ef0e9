package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/pngalemo/portfolio/internal/metrics"
	"github.com/pngalemo/portfolio/internal/models"
	"github.com/pngalemo/portfolio/internal/validation"
)

// ProjectRepository persists projects. Unknown ids yield apperr.NotFound.
type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	// CreateProject assigns the id and timestamps.
	CreateProject(ctx context.Context, p models.Project) (*models.Project, error)
	UpdateProject(ctx context.Context, p models.Project) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// ProjectService serves portfolio projects.
type ProjectService struct {
	core
	repo ProjectRepository
}

// NewProjectService constructs a ProjectService over repo.
func NewProjectService(repo ProjectRepository, opts ...Option) *ProjectService {
	return &ProjectService{core: newCore(opts), repo: repo}
}

// List returns every project, newest start date first. An empty store
// yields the single sample project.
func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, s.fail("list projects", err)
	}
	if len(projects) == 0 {
		metrics.RecordPlaceholder("projects")
		return []models.Project{SampleProject()}, nil
	}

	slices.SortStableFunc(projects, func(a, b models.Project) int {
		return newestFirst(a.StartDate, b.StartDate)
	})
	return projects, nil
}

// Get returns the project with the given id.
func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, s.fail("get project", err)
	}
	return p, nil
}

// Create validates p and stores it as a new project.
func (s *ProjectService) Create(ctx context.Context, p models.Project) (*models.Project, error) {
	p.ID = ""
	p.CreatedAt, p.UpdatedAt = nil, nil
	normalizeProject(&p)
	if err := validation.Struct(p); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	created, err := s.repo.CreateProject(ctx, p)
	if err != nil {
		return nil, s.fail("create project", err)
	}
	return created, nil
}

// Update loads the project, applies mutate to it and saves the result after
// validation. The id and creation time cannot be changed by mutate.
func (s *ProjectService) Update(ctx context.Context, id string, mutate func(*models.Project) error) (*models.Project, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	current, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, s.fail("get project", err)
	}

	next := *current
	if err := mutate(&next); err != nil {
		return nil, err
	}
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	normalizeProject(&next)
	if err := validation.Struct(next); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateProject(ctx, next)
	if err != nil {
		return nil, s.fail("update project", err)
	}
	return updated, nil
}

// Delete removes the project permanently.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return s.fail("delete project", err)
	}
	return nil
}

func normalizeProject(p *models.Project) {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	for i, tech := range p.Technologies {
		p.Technologies[i] = strings.TrimSpace(tech)
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	if strings.TrimSpace(p.ImageURL) == "" {
		p.ImageURL = DefaultProjectImage
	}
}

// newestFirst orders start dates descending with undated entries last.
func newestFirst(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return b.Compare(*a)
}
