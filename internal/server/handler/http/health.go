package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// HealthHandler reports whether the content store answers.
type HealthHandler struct {
	// Ping checks the store.
	Ping func(ctx context.Context) error
	// MailState, if set, reports the mail relay circuit state. It does not
	// affect the status code.
	MailState func() string
	Log       *zap.Logger
}

// Root handles GET /api.
func Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Portfolio API Running"))
}

// Healthz handles GET /healthz.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{"status": "ok"}
	if h.MailState != nil {
		body["mail"] = h.MailState()
	}
	if h.Ping != nil {
		if err := h.Ping(r.Context()); err != nil {
			if h.Log != nil {
				h.Log.Warn("store ping failed", zap.Error(err))
			}
			body["status"] = "unavailable"
			writeJSON(w, http.StatusServiceUnavailable, body)
			return
		}
	}
	writeJSON(w, http.StatusOK, body)
}
