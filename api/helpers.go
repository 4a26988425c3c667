package api

import (
	"encoding/json"
	"net/http"

	"github.com/quickhiresl/backend/internal/apperr"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", "err", err)
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

// writeAppError maps a service error onto the wire. Internal causes are
// logged here and masked in the body.
func writeAppError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("internal error", "err", err)
	}
	writeJSON(w, errorResponse{Message: apperr.Message(err)}, status)
}

func writeMessage(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, errorResponse{Message: msg}, status)
}
