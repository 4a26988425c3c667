package matching

import (
	"math"

	"github.com/quickhiresl/backend/internal/models"
)

// Weights of each dimension in the composite score. They sum to 1.
const (
	weightLocation     = 0.30
	weightCategory     = 0.25
	weightAvailability = 0.25
	weightSkills       = 0.20
)

// CalculateMatchScore combines the four sub-scores into one 0-100
// composite with human-readable reasons and a per-dimension breakdown.
// It never fails: nil input yields score 0.
func CalculateMatchScore(user *models.User, job *models.Job) models.MatchResult {
	if user == nil || job == nil {
		return models.MatchResult{Score: 0, Reasons: []string{"Invalid user or job data"}}
	}

	prefs := user.StudentDetails
	reasons := []string{}
	details := make(map[string]float64, 4)

	locationScore := LocationScore(prefs.PreferredLocations, job.Location)
	details["locationScore"] = locationScore
	if locationScore > 70 {
		reasons = append(reasons, "Location matches your preferences")
	} else if locationScore > 0 {
		reasons = append(reasons, "Location is close to your preferred areas")
	}

	categoryScore := CategoryScore(prefs.PreferredCategories, job.Category)
	details["categoryScore"] = categoryScore
	if categoryScore > 70 {
		reasons = append(reasons, "Job category matches your preferences")
	}

	availabilityScore := AvailabilityScore(prefs.Availability, job.AvailableDates)
	details["availabilityScore"] = availabilityScore
	if availabilityScore > 70 {
		reasons = append(reasons, "Job dates match your availability")
	} else if availabilityScore > 30 {
		reasons = append(reasons, "Some job dates match your availability")
	}

	skillsScore := SkillsScore(prefs.Skills, job.RequiredSkills)
	details["skillsScore"] = skillsScore
	if skillsScore > 70 {
		reasons = append(reasons, "Your skills match the job requirements")
	} else if skillsScore > 30 {
		reasons = append(reasons, "You have some of the required skills")
	}

	score := locationScore*weightLocation +
		categoryScore*weightCategory +
		availabilityScore*weightAvailability +
		skillsScore*weightSkills

	return models.MatchResult{
		Score:   int(math.Round(score)),
		Reasons: reasons,
		Details: details,
	}
}
