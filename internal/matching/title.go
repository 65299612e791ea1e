package matching

import (
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

const (
	titleExactScore      = 1.0
	titleExperienceScore = 0.8
)

// titlesOverlap reports whether either title contains the other. Empty titles never overlap.
func titlesOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// computeTitleScore is 1.0 for a held job title matching the posting, 0.8 for a matching
// work experience title, 0 otherwise.
func computeTitleScore(jobTitle string, resume *types.ParsedResume) float64 {
	title := strings.ToLower(strings.TrimSpace(jobTitle))
	if title == "" {
		return 0
	}

	for _, held := range resume.JobTitles {
		if titlesOverlap(strings.ToLower(strings.TrimSpace(held)), title) {
			return titleExactScore
		}
	}

	for _, exp := range resume.WorkExperience {
		if titlesOverlap(strings.ToLower(strings.TrimSpace(exp.Title)), title) {
			return titleExperienceScore
		}
	}

	return 0
}
