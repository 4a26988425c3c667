package matching

import (
	"strings"

	"github.com/quickhiresl/backend/internal/models"
)

// Scoring primitives. Each returns a sub-score in [0, 100] for one
// dimension and degrades to 0 on empty or malformed input rather than
// failing; the aggregator relies on that contract.

// LocationScore scores a job location against the user's preferred
// locations: 100 on an exact case-insensitive match, 70 when either
// string contains the other, 0 otherwise.
func LocationScore(preferred []string, jobLocation string) float64 {
	return containmentScore(preferred, jobLocation, 70)
}

// CategoryScore is the location algorithm applied to job categories,
// with a lower partial-match score of 60.
func CategoryScore(preferred []string, jobCategory string) float64 {
	return containmentScore(preferred, jobCategory, 60)
}

func containmentScore(preferred []string, target string, partial float64) float64 {
	if len(preferred) == 0 || target == "" {
		return 0
	}

	t := strings.ToLower(target)
	for _, p := range preferred {
		if strings.ToLower(p) == t {
			return 100
		}
	}
	for _, p := range preferred {
		pl := strings.ToLower(p)
		if pl == "" {
			continue
		}
		if strings.Contains(t, pl) || strings.Contains(pl, t) {
			return partial
		}
	}

	return 0
}

// SkillsScore is the fraction of required skills covered by the user's
// skills, scaled to 100. A required skill counts as covered when any
// user skill equals it or is a substring of it in either direction,
// case-insensitively.
func SkillsScore(userSkills, requiredSkills []string) float64 {
	if len(userSkills) == 0 || len(requiredSkills) == 0 {
		return 0
	}

	normalized := make([]string, 0, len(userSkills))
	for _, s := range userSkills {
		normalized = append(normalized, strings.ToLower(s))
	}

	matched := 0
	for _, req := range requiredSkills {
		rl := strings.ToLower(req)
		for _, us := range normalized {
			if us == rl || strings.Contains(us, rl) || strings.Contains(rl, us) {
				matched++
				break
			}
		}
	}

	if matched == 0 {
		return 0
	}

	pct := float64(matched) / float64(len(requiredSkills)) * 100
	return min(100, pct)
}

// AvailabilityScore compares job dates against the user's availability.
// Job dates with no availability entry on the same calendar date are
// excluded from the average entirely; only matched dates are scored:
//
//	both full day                 -> 100
//	job full day, user has slots  -> 80
//	user full day, job has slots  -> 90
//	both have slots               -> 100 * covered job slots / job slots
//
// Slot overlap is half-open on minutes since midnight, so 09:00-10:00
// and 10:00-11:00 do not overlap.
func AvailabilityScore(userAvail, jobDates []models.AvailabilityEntry) float64 {
	if len(userAvail) == 0 || len(jobDates) == 0 {
		return 0
	}

	byDate := make(map[string]models.AvailabilityEntry, len(userAvail))
	for _, a := range userAvail {
		if d := calendarDate(a.Date); d != "" {
			byDate[d] = a
		}
	}

	var total float64
	matched := 0
	for _, jd := range jobDates {
		avail, ok := byDate[calendarDate(jd.Date)]
		if !ok {
			continue
		}
		matched++
		total += dateScore(avail, jd)
	}

	if matched == 0 {
		return 0
	}

	return total / float64(matched)
}

func dateScore(avail, jobDate models.AvailabilityEntry) float64 {
	jobFull := jobDate.IsFullDay || len(jobDate.TimeSlots) == 0
	availFull := avail.IsFullDay || len(avail.TimeSlots) == 0

	switch {
	case jobFull && availFull:
		return 100
	case jobFull:
		return 80
	case availFull:
		return 90
	}

	covered := 0
	for _, js := range jobDate.TimeSlots {
		for _, as := range avail.TimeSlots {
			if slotsOverlap(js, as) {
				covered++
				break
			}
		}
	}

	return float64(covered) / float64(len(jobDate.TimeSlots)) * 100
}

func slotsOverlap(a, b models.TimeSlot) bool {
	aStart, ok1 := minutesOfDay(a.StartTime)
	aEnd, ok2 := minutesOfDay(a.EndTime)
	bStart, ok3 := minutesOfDay(b.StartTime)
	bEnd, ok4 := minutesOfDay(b.EndTime)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}

	return aStart < bEnd && aEnd > bStart
}

// minutesOfDay parses "HH:MM" into minutes since midnight.
func minutesOfDay(s string) (int, bool) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(h) == 0 || len(m) == 0 {
		return 0, false
	}

	hours, ok := atoi2(h)
	if !ok || hours > 23 {
		return 0, false
	}
	mins, ok := atoi2(m)
	if !ok || mins > 59 {
		return 0, false
	}

	return hours*60 + mins, true
}

func atoi2(s string) (int, bool) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, len(s) > 0 && len(s) <= 2
}

// calendarDate strips any time-of-day component, keeping "YYYY-MM-DD".
func calendarDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 10 {
		return ""
	}
	return s[:10]
}
