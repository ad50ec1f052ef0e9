// Package http provides the JSON handlers and router of the portfolio API.
package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/pngalemo/portfolio/internal/models"
)

// ProfileService defines the profile operations required by AboutHandler.
type ProfileService interface {
	// Get returns the canonical profile, creating it if absent.
	Get(ctx context.Context) (*models.Profile, error)
	// Upsert merges patch into the canonical profile.
	Upsert(ctx context.Context, patch models.ProfilePatch) (*models.Profile, error)
}

// AboutHandler serves the singleton profile.
type AboutHandler struct {
	ProfileService ProfileService
	Log            *zap.Logger
}

// Get handles GET /api/about.
func (h *AboutHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.ProfileService.Get(r.Context())
	if err != nil {
		writeError(w, h.Log, err, "Error fetching profile")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Put handles PUT /api/about. Only the fields present in the body change.
func (h *AboutHandler) Put(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, h.Log, err, "Error updating profile")
		return
	}
	var patch models.ProfilePatch
	if err := decodeInto(body, &patch); err != nil {
		writeError(w, h.Log, err, "Error updating profile")
		return
	}

	p, err := h.ProfileService.Upsert(r.Context(), patch)
	if err != nil {
		writeError(w, h.Log, err, "Error updating profile")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
