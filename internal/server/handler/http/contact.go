package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/pngalemo/portfolio/internal/apperr"
	"github.com/pngalemo/portfolio/internal/models"
	"github.com/pngalemo/portfolio/internal/service"
)

// ContactService defines the operation required by ContactHandler.
type ContactService interface {
	Submit(ctx context.Context, sub models.ContactSubmission) (*models.ContactResult, error)
}

// ContactHandler relays contact-form submissions.
type ContactHandler struct {
	ContactService ContactService
	Log            *zap.Logger
}

// Submit handles POST /api/contact. Every response carries
// {"success": bool, "message": string}.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ContactResult{Message: service.ContactIncomplete})
		return
	}
	var sub models.ContactSubmission
	if err := decodeInto(body, &sub); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ContactResult{Message: service.ContactIncomplete})
		return
	}

	res, err := h.ContactService.Submit(r.Context(), sub)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case apperr.Is(err, apperr.KindValidation):
		writeJSON(w, http.StatusBadRequest, models.ContactResult{Message: apperr.Message(err)})
	default:
		writeJSON(w, http.StatusInternalServerError, models.ContactResult{Message: service.ContactFailed})
	}
}

// TooManyContacts answers a rate-limited contact submission.
func TooManyContacts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusTooManyRequests, models.ContactResult{Message: "Too many messages. Please try again later."})
}
