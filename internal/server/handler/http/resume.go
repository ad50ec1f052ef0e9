package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pngalemo/portfolio/internal/models"
)

// ResumeService defines the resume operations required by ResumeHandler.
type ResumeService interface {
	// List returns items of category, or all items when category is empty.
	List(ctx context.Context, category models.Category) ([]models.ResumeItem, error)
	Get(ctx context.Context, id string) (*models.ResumeItem, error)
	Create(ctx context.Context, item models.ResumeItem) (*models.ResumeItem, error)
	Update(ctx context.Context, id string, mutate func(*models.ResumeItem) error) (*models.ResumeItem, error)
	Delete(ctx context.Context, id string) error
}

// ResumeHandler serves resume items.
type ResumeHandler struct {
	ResumeService ResumeService
	Log           *zap.Logger
}

// List handles GET /api/resume?category=.
func (h *ResumeHandler) List(w http.ResponseWriter, r *http.Request) {
	category := models.Category(r.URL.Query().Get("category"))
	items, err := h.ResumeService.List(r.Context(), category)
	if err != nil {
		writeError(w, h.Log, err, "Error fetching resume items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/resume/{id}.
func (h *ResumeHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.ResumeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Log, err, "Error fetching resume item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /api/resume.
func (h *ResumeHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, h.Log, err, "Error adding resume item")
		return
	}
	var item models.ResumeItem
	if err := decodeInto(body, &item); err != nil {
		writeError(w, h.Log, err, "Error adding resume item")
		return
	}

	created, err := h.ResumeService.Create(r.Context(), item)
	if err != nil {
		writeError(w, h.Log, err, "Error adding resume item")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/resume/{id}.
func (h *ResumeHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, h.Log, err, "Error updating resume item")
		return
	}

	updated, err := h.ResumeService.Update(r.Context(), chi.URLParam(r, "id"), func(item *models.ResumeItem) error {
		return decodeInto(body, item)
	})
	if err != nil {
		writeError(w, h.Log, err, "Error updating resume item")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/resume/{id}.
func (h *ResumeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ResumeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Log, err, "Error deleting resume item")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Resume item deleted successfully"})
}
