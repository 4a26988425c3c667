package matching

import (
	"context"
	"log/slog"
	"sort"

	"github.com/quickhiresl/backend/internal/apperr"
	"github.com/quickhiresl/backend/internal/models"
	"github.com/quickhiresl/backend/pkg/repository"
)

// Sort keys and orders accepted by SearchOptions.
const (
	SortByScore  = "score"
	SortByDate   = "date"
	SortBySalary = "salary"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// SearchOptions controls a candidate search. Zero values fall back to the
// defaults applied by normalize.
type SearchOptions struct {
	Limit          int
	MinScore       int
	IncludeDetails bool
	SortBy         string
	SortOrder      string
	Location       string
	Category       string
}

func (o SearchOptions) normalize() SearchOptions {
	if o.Limit <= 0 {
		o.Limit = 10
	}
	if o.MinScore <= 0 {
		o.MinScore = 30
	}
	switch o.SortBy {
	case SortByDate, SortBySalary:
	default:
		o.SortBy = SortByScore
	}
	if o.SortOrder != SortAsc {
		o.SortOrder = SortDesc
	}
	return o
}

// Service scores active jobs against a user's stored preferences. It is
// read-only and safe to call concurrently.
type Service struct {
	users  repository.UserRepo
	jobs   repository.JobRepo
	logger *slog.Logger
}

func NewService(users repository.UserRepo, jobs repository.JobRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: users, jobs: jobs, logger: logger}
}

// FindMatchingJobs scores every active job (optionally pre-filtered by
// location/category) for the user, keeps those at or above MinScore,
// sorts and truncates. The scan is O(active jobs); callers needing less
// work should pass the location/category filters.
func (s *Service) FindMatchingJobs(ctx context.Context, userID int64, opts SearchOptions) ([]models.JobMatch, error) {
	opts = opts.normalize()

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "load user")
	}
	if user == nil {
		return nil, apperr.E(apperr.KindNotFound, "User not found")
	}

	jobs, err := s.jobs.ListJobs(ctx, repository.JobFilter{
		Status:   models.JobStatusActive,
		Location: opts.Location,
		Category: opts.Category,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "list jobs")
	}

	matches := make([]models.JobMatch, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		result := CalculateMatchScore(user, job)
		if result.Score < opts.MinScore {
			continue
		}

		m := models.JobMatch{Job: job, Score: result.Score, Reasons: result.Reasons}
		if opts.IncludeDetails {
			m.Details = result.Details
		}
		matches = append(matches, m)
	}

	sortMatches(matches, opts.SortBy, opts.SortOrder)

	if len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}

	return matches, nil
}

// sortMatches orders matches by the chosen key. The sort is stable so
// ties keep the store's query order.
func sortMatches(matches []models.JobMatch, sortBy, order string) {
	desc := order == SortDesc

	var less func(a, b models.JobMatch) bool
	switch sortBy {
	case SortByDate:
		less = func(a, b models.JobMatch) bool { return a.Job.Created < b.Job.Created }
	case SortBySalary:
		less = func(a, b models.JobMatch) bool { return a.Job.Salary < b.Job.Salary }
	default:
		less = func(a, b models.JobMatch) bool { return a.Score < b.Score }
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if desc {
			return less(matches[j], matches[i])
		}
		return less(matches[i], matches[j])
	})
}
