package api

import (
	"net/http"
	"strconv"

	"github.com/quickhiresl/backend/internal/models"
	"github.com/quickhiresl/backend/pkg/repository"
)

type NotificationsHandler struct {
	repo repository.NotificationRepo
}

func NewNotificationsHandler(nr repository.NotificationRepo) *NotificationsHandler {
	return &NotificationsHandler{repo: nr}
}

func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	q := r.URL.Query()
	limit := 50
	if l := q.Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}
	offset := 0
	if o := q.Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	items, err := h.repo.ListByRecipient(r.Context(), userID, limit, offset)
	if err != nil {
		http.Error(w, "failed to list notifications", http.StatusInternalServerError)
		return
	}

	total, err := h.repo.CountByRecipient(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to count notifications", http.StatusInternalServerError)
		return
	}

	if items == nil {
		items = []models.Notification{}
	}

	writeJSON(w, map[string]any{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  items,
	}, http.StatusOK)
}

func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeMessage(w, "invalid notification id", http.StatusBadRequest)
		return
	}

	ok, err := h.repo.MarkRead(r.Context(), id, userIDFromContext(r.Context()))
	if err != nil {
		http.Error(w, "failed to update notification", http.StatusInternalServerError)
		return
	}
	if !ok {
		writeMessage(w, "Notification not found", http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]any{"id": id, "read": true}, http.StatusOK)
}

func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.MarkAllRead(r.Context(), userIDFromContext(r.Context())); err != nil {
		http.Error(w, "failed to update notifications", http.StatusInternalServerError)
		return
	}

	writeMessage(w, "All notifications marked as read", http.StatusOK)
}
