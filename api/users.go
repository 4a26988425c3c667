package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/quickhiresl/backend/internal/models"
	"github.com/quickhiresl/backend/pkg/repository"
)

type UsersHandler struct {
	userRepo repository.UserRepo
}

func NewUsersHandler(ur repository.UserRepo) *UsersHandler {
	return &UsersHandler{userRepo: ur}
}

func (h *UsersHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	user, err := h.userRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to load user", http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeMessage(w, "User not found", http.StatusNotFound)
		return
	}

	writeJSON(w, user, http.StatusOK)
}

// UpdateStudentDetails replaces the caller's matching preferences. The
// payload is schema-validated before decoding.
func (h *UsersHandler) UpdateStudentDetails(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeMessage(w, "invalid request", http.StatusBadRequest)
		return
	}

	if msg, ok := validateStudentDetails(r.Context(), raw); !ok {
		writeMessage(w, msg, http.StatusBadRequest)
		return
	}

	var details models.StudentDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		writeMessage(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.userRepo.UpdateStudentDetails(r.Context(), userID, details); err != nil {
		http.Error(w, "failed to update details", http.StatusInternalServerError)
		return
	}

	user, err := h.userRepo.GetUserByID(r.Context(), userID)
	if err != nil || user == nil {
		http.Error(w, "failed to load user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, user, http.StatusOK)
}
