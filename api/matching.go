package api

import (
	"net/http"
	"strconv"

	"github.com/quickhiresl/backend/internal/matching"
	"github.com/quickhiresl/backend/internal/models"
)

type MatchingHandler struct {
	matcher *matching.Service
}

func NewMatchingHandler(m *matching.Service) *MatchingHandler {
	return &MatchingHandler{matcher: m}
}

// FindMatchingJobs scores active jobs against the caller's stored
// preferences. All query parameters are optional.
func (h *MatchingHandler) FindMatchingJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := matching.SearchOptions{
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
		Location:  q.Get("location"),
		Category:  q.Get("category"),
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			opts.Limit = n
		}
	}
	if v := q.Get("min_score"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			opts.MinScore = n
		}
	}
	if q.Get("include_details") == "true" {
		opts.IncludeDetails = true
	}

	userID := userIDFromContext(r.Context())
	matches, err := h.matcher.FindMatchingJobs(r.Context(), userID, opts)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if matches == nil {
		matches = []models.JobMatch{}
	}

	writeJSON(w, map[string]any{
		"count":   len(matches),
		"matches": matches,
	}, http.StatusOK)
}
