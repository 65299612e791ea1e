package matching

import (
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

// experienceLevels maps a job's required experience to an ordinal. Unknown values map to 0.
var experienceLevels = map[string]int{
	"none":        0,
	"no required": 0,
	"intern":      1,
	"fresher":     2,
	"junior":      3,
	"mid":         4,
	"mid-level":   4,
	"senior":      5,
	"lead":        6,
	"manager":     7,
}

// jobExperienceLevel returns the ordinal for the job's required experience
func jobExperienceLevel(required string) int {
	return experienceLevels[strings.ToLower(strings.TrimSpace(required))]
}

// candidateYears sums the parsed durations of every work experience entry
func candidateYears(resume *types.ParsedResume) float64 {
	total := 0.0
	for _, exp := range resume.WorkExperience {
		total += ParseDuration(exp.Duration).Value()
	}
	return total
}

// candidateExperienceLevel maps total years onto the job experience ordinals.
// A résumé without any work experience entry is level 0.
func candidateExperienceLevel(years float64, entries int) int {
	switch {
	case entries == 0 && years == 0:
		return 0
	case years < 1:
		return 1
	case years < 2:
		return 2
	case years < 3:
		return 3
	case years < 5:
		return 4
	case years < 7:
		return 5
	case years < 10:
		return 6
	default:
		return 7
	}
}

// computeExperienceScore is 1 when the job has no requirement or the candidate meets it,
// and loses 0.2 per missing level otherwise.
func computeExperienceScore(jobLevel, candidateLevel int) float64 {
	if jobLevel == 0 || candidateLevel >= jobLevel {
		return 1.0
	}
	return max(0, 1.0-0.2*float64(jobLevel-candidateLevel))
}
