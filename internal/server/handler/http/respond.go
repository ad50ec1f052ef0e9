package http

import (
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/pngalemo/portfolio/internal/apperr"
)

// maxBodyBytes caps request bodies; portfolio documents are small.
const maxBodyBytes = 1 << 20

// messageResponse is the body of confirmations and errors.
type messageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// readBody returns the raw request body, refusing oversized payloads.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, apperr.Validationf("unreadable body: %v", err)
	}
	return body, nil
}

// decodeInto unmarshals body over v. Fields absent from body keep their
// current value in v.
func decodeInto(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return apperr.Validationf("malformed JSON body: %v", err)
	}
	return nil
}

// writeError maps err to a status. action prefixes validation messages,
// e.g. "Error adding project".
func writeError(w http.ResponseWriter, log *zap.Logger, err error, action string) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: action, Error: apperr.Message(err)})
	case apperr.KindNotFound:
		writeJSON(w, http.StatusNotFound, messageResponse{Message: apperr.Message(err)})
	case apperr.KindDependency:
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Server Error"})
	default:
		if log != nil {
			log.Error("unclassified handler error", zap.String("action", action), zap.Error(err))
		}
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Server Error"})
	}
}
