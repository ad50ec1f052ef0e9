package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pngalemo/portfolio/internal/models"
)

// ProjectService defines the project operations required by ProjectHandler.
type ProjectService interface {
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, p models.Project) (*models.Project, error)
	// Update applies mutate to the stored project and saves the result.
	Update(ctx context.Context, id string, mutate func(*models.Project) error) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}

// ProjectHandler serves portfolio projects.
type ProjectHandler struct {
	ProjectService ProjectService
	Log            *zap.Logger
}

// List handles GET /api/projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.ProjectService.List(r.Context())
	if err != nil {
		writeError(w, h.Log, err, "Error fetching projects")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// Get handles GET /api/projects/{id}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.ProjectService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Log, err, "Error fetching project")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Create handles POST /api/projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, h.Log, err, "Error adding project")
		return
	}
	var p models.Project
	if err := decodeInto(body, &p); err != nil {
		writeError(w, h.Log, err, "Error adding project")
		return
	}

	created, err := h.ProjectService.Create(r.Context(), p)
	if err != nil {
		writeError(w, h.Log, err, "Error adding project")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/projects/{id}. The body is merged over the stored project.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, h.Log, err, "Error updating project")
		return
	}

	updated, err := h.ProjectService.Update(r.Context(), chi.URLParam(r, "id"), func(p *models.Project) error {
		return decodeInto(body, p)
	})
	if err != nil {
		writeError(w, h.Log, err, "Error updating project")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/projects/{id}.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ProjectService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Log, err, "Error deleting project")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Project deleted successfully"})
}
