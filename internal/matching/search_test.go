package matching_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickhiresl/backend/internal/apperr"
	"github.com/quickhiresl/backend/internal/matching"
	"github.com/quickhiresl/backend/internal/models"
	"github.com/quickhiresl/backend/pkg/repository/mock"
)

func newSearchFixture(t *testing.T) (*matching.Service, *mock.Mocks) {
	t.Helper()
	m := mock.NewMocks()
	m.Users.Add(&models.User{
		ID:   1,
		Role: models.RoleStudent,
		StudentDetails: models.StudentDetails{
			PreferredLocations:  []string{"Colombo"},
			PreferredCategories: []string{"IT"},
			Skills:              []string{"go"},
			Availability:        []models.AvailabilityEntry{{Date: "2025-04-01", IsFullDay: true}},
		},
	})
	return matching.NewService(m.Users, m.Jobs, nil), m
}

func addJob(m *mock.Mocks, j models.Job) {
	if j.Status == "" {
		j.Status = models.JobStatusActive
	}
	jj := j
	m.Jobs.Add(&jj)
}

func TestFindMatchingJobsUserNotFound(t *testing.T) {
	svc, _ := newSearchFixture(t)

	_, err := svc.FindMatchingJobs(context.Background(), 999, matching.SearchOptions{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestFindMatchingJobsFiltersByMinScore(t *testing.T) {
	svc, m := newSearchFixture(t)
	// perfect location+category+availability match
	addJob(m, models.Job{ID: 1, Location: "Colombo", Category: "IT",
		AvailableDates: []models.AvailabilityEntry{{Date: "2025-04-01", IsFullDay: true}}})
	// nothing in common
	addJob(m, models.Job{ID: 2, Location: "Galle", Category: "Retail"})

	got, err := svc.FindMatchingJobs(context.Background(), 1, matching.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].Job.ID)
	assert.GreaterOrEqual(t, got[0].Score, 30)
}

func TestFindMatchingJobsRespectsLimit(t *testing.T) {
	svc, m := newSearchFixture(t)
	for i := int64(1); i <= 5; i++ {
		addJob(m, models.Job{ID: i, Location: "Colombo", Category: "IT"})
	}

	got, err := svc.FindMatchingJobs(context.Background(), 1, matching.SearchOptions{Limit: 3})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	// limit larger than the match count returns everything
	got, err = svc.FindMatchingJobs(context.Background(), 1, matching.SearchOptions{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestFindMatchingJobsSkipsInactive(t *testing.T) {
	svc, m := newSearchFixture(t)
	addJob(m, models.Job{ID: 1, Location: "Colombo", Category: "IT", Status: models.JobStatusClosed})
	addJob(m, models.Job{ID: 2, Location: "Colombo", Category: "IT", Status: models.JobStatusDraft})
	addJob(m, models.Job{ID: 3, Location: "Colombo", Category: "IT"})

	got, err := svc.FindMatchingJobs(context.Background(), 1, matching.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].Job.ID)
}

func TestFindMatchingJobsSortOrders(t *testing.T) {
	svc, m := newSearchFixture(t)
	// job 1: exact everything -> highest score, oldest, middle salary
	addJob(m, models.Job{ID: 1, Location: "Colombo", Category: "IT", Salary: 2000, Created: 100,
		AvailableDates: []models.AvailabilityEntry{{Date: "2025-04-01", IsFullDay: true}}})
	// job 2: partial location -> lower score, newest, lowest salary
	addJob(m, models.Job{ID: 2, Location: "Colombo 7", Category: "IT", Salary: 1000, Created: 300})
	// job 3: exact location only -> middle score, middle age, highest salary
	addJob(m, models.Job{ID: 3, Location: "Colombo", Category: "Retail", Salary: 3000, Created: 200})

	byScore, err := svc.FindMatchingJobs(context.Background(), 1, matching.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, byScore, 3)
	assert.Equal(t, int64(1), byScore[0].Job.ID)

	bySalary, err := svc.FindMatchingJobs(context.Background(), 1, matching.SearchOptions{SortBy: matching.SortBySalary})
	require.NoError(t, err)
	assert.Equal(t, int64(3), bySalary[0].Job.ID)

	byDateAsc, err := svc.FindMatchingJobs(context.Background(), 1, matching.SearchOptions{SortBy: matching.SortByDate, SortOrder: matching.SortAsc})
	require.NoError(t, err)
	assert.Equal(t, int64(1), byDateAsc[0].Job.ID)
	assert.Equal(t, int64(2), byDateAsc[2].Job.ID)
}

func TestFindMatchingJobsStableTieBreak(t *testing.T) {
	svc, m := newSearchFixture(t)
	// identical jobs score identically; query order must be preserved
	for i := int64(1); i <= 3; i++ {
		addJob(m, models.Job{ID: i, Location: "Colombo", Category: "IT"})
	}

	got, err := svc.FindMatchingJobs(context.Background(), 1, matching.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, jm := range got {
		assert.Equal(t, int64(i+1), jm.Job.ID)
	}
}

func TestFindMatchingJobsIncludeDetails(t *testing.T) {
	svc, m := newSearchFixture(t)
	addJob(m, models.Job{ID: 1, Location: "Colombo", Category: "IT"})

	got, err := svc.FindMatchingJobs(context.Background(), 1, matching.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Details)

	got, err = svc.FindMatchingJobs(context.Background(), 1, matching.SearchOptions{IncludeDetails: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, float64(100), got[0].Details["locationScore"])
}

func TestFindMatchingJobsPassesFilters(t *testing.T) {
	svc, m := newSearchFixture(t)
	addJob(m, models.Job{ID: 1, Location: "Colombo", Category: "IT"})
	addJob(m, models.Job{ID: 2, Location: "Colombo", Category: "Retail"})

	got, err := svc.FindMatchingJobs(context.Background(), 1, matching.SearchOptions{Category: "IT"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].Job.ID)
}
