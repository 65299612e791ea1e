package matching

import (
	"fmt"
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

// Reason texts
const (
	reasonHighFit    = "high overall fit"
	reasonPotential  = "potential fit"
	highFitThreshold = 70
	maxReasonSkills  = 3
	minReasonedYears = 3.0
)

// buildReasons explains a score in order: overall fit, skills, experience, education.
// Categories with nothing to report are omitted; the result is never empty.
func buildReasons(score int, matchedSkills []string, years float64, resume *types.ParsedResume) []string {
	reasons := make([]string, 0, 4)

	if score >= highFitThreshold {
		reasons = append(reasons, reasonHighFit)
	}

	if len(matchedSkills) > 0 {
		shown := matchedSkills
		if len(shown) > maxReasonSkills {
			shown = shown[:maxReasonSkills]
		}
		reasons = append(reasons, "matching skills: "+strings.Join(shown, ", "))
	}

	if len(resume.WorkExperience) > 0 && years >= minReasonedYears {
		reasons = append(reasons, fmt.Sprintf("%.1f years of experience", years))
	}

	for _, edu := range resume.Education {
		if edu.Degree != "" {
			reasons = append(reasons, "degree: "+edu.Degree)
			break
		}
	}

	if len(reasons) == 0 {
		return []string{reasonPotential}
	}
	return reasons
}
