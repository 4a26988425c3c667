package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quickhiresl/backend/internal/models"
)

func studentUser(details models.StudentDetails) *models.User {
	return &models.User{ID: 1, Email: "student@example.com", Role: models.RoleStudent, StudentDetails: details}
}

func TestCalculateMatchScoreNilInput(t *testing.T) {
	res := CalculateMatchScore(nil, &models.Job{})
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, []string{"Invalid user or job data"}, res.Reasons)

	res = CalculateMatchScore(&models.User{}, nil)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, []string{"Invalid user or job data"}, res.Reasons)
}

func TestCalculateMatchScoreIsWeightedSum(t *testing.T) {
	user := studentUser(models.StudentDetails{
		PreferredLocations:  []string{"Colombo"},
		PreferredCategories: []string{"IT Support"},
		Skills:              []string{"go"},
		Availability:        []models.AvailabilityEntry{{Date: "2025-04-01", IsFullDay: true}},
	})
	job := &models.Job{
		Location:       "Colombo 7",
		Category:       "IT",
		RequiredSkills: []string{"go", "sql"},
		AvailableDates: []models.AvailabilityEntry{{Date: "2025-04-01", IsFullDay: true}},
	}

	res := CalculateMatchScore(user, job)

	loc := LocationScore(user.StudentDetails.PreferredLocations, job.Location)
	cat := CategoryScore(user.StudentDetails.PreferredCategories, job.Category)
	avail := AvailabilityScore(user.StudentDetails.Availability, job.AvailableDates)
	skills := SkillsScore(user.StudentDetails.Skills, job.RequiredSkills)

	want := int(math.Round(0.30*loc + 0.25*cat + 0.25*avail + 0.20*skills))
	assert.Equal(t, want, res.Score)
	assert.Equal(t, loc, res.Details["locationScore"])
	assert.Equal(t, cat, res.Details["categoryScore"])
	assert.Equal(t, avail, res.Details["availabilityScore"])
	assert.Equal(t, skills, res.Details["skillsScore"])
}

// A perfect location/category/availability match with no skills data on
// the job side leaves the skills dimension at zero, so the composite
// tops out at 80, not 100.
func TestCalculateMatchScorePerfectMatchWithoutSkills(t *testing.T) {
	user := studentUser(models.StudentDetails{
		PreferredLocations:  []string{"Colombo"},
		PreferredCategories: []string{"IT"},
		Availability:        []models.AvailabilityEntry{{Date: "2025-04-01", IsFullDay: true}},
	})
	job := &models.Job{
		Location:       "Colombo",
		Category:       "IT",
		AvailableDates: []models.AvailabilityEntry{{Date: "2025-04-01", IsFullDay: true}},
	}

	res := CalculateMatchScore(user, job)
	assert.Equal(t, 80, res.Score)
	assert.Contains(t, res.Reasons, "Location matches your preferences")
	assert.Contains(t, res.Reasons, "Job category matches your preferences")
	assert.Contains(t, res.Reasons, "Job dates match your availability")
}

func TestCalculateMatchScorePerfectMatchWithSkills(t *testing.T) {
	user := studentUser(models.StudentDetails{
		PreferredLocations:  []string{"Colombo"},
		PreferredCategories: []string{"IT"},
		Skills:              []string{"go"},
		Availability:        []models.AvailabilityEntry{{Date: "2025-04-01", IsFullDay: true}},
	})
	job := &models.Job{
		Location:       "Colombo",
		Category:       "IT",
		RequiredSkills: []string{"go"},
		AvailableDates: []models.AvailabilityEntry{{Date: "2025-04-01", IsFullDay: true}},
	}

	res := CalculateMatchScore(user, job)
	assert.Equal(t, 100, res.Score)
	assert.Contains(t, res.Reasons, "Your skills match the job requirements")
}

func TestCalculateMatchScoreReasonThresholds(t *testing.T) {
	// partial location match (70) sits on the boundary: not "matches",
	// only "close to"
	user := studentUser(models.StudentDetails{
		PreferredLocations: []string{"Colombo"},
	})
	job := &models.Job{Location: "Colombo 7", Category: "IT"}

	res := CalculateMatchScore(user, job)
	assert.Contains(t, res.Reasons, "Location is close to your preferred areas")
	assert.NotContains(t, res.Reasons, "Location matches your preferences")
}

func TestCalculateMatchScorePartialSkills(t *testing.T) {
	user := studentUser(models.StudentDetails{
		Skills: []string{"go"},
	})
	job := &models.Job{Location: "X", Category: "Y", RequiredSkills: []string{"go", "sql"}}

	res := CalculateMatchScore(user, job)
	// 50% of required skills
	assert.Contains(t, res.Reasons, "You have some of the required skills")
	assert.Equal(t, 10, res.Score) // 0.20 * 50
}
