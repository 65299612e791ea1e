package matching

import (
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

// Field match tiers; the best applicable tier wins
const (
	fieldIndustryScore    = 0.8
	fieldDescriptionScore = 0.6
	fieldSkillScore       = 0.4
	fieldFloorScore       = 0.1
	neutralFieldScore     = 0.5
)

// computeFieldScore compares the job's field against industries, descriptions and skills
func computeFieldScore(jobField string, resume *types.ParsedResume) float64 {
	field := strings.ToLower(strings.TrimSpace(jobField))
	if field == "" {
		return neutralFieldScore
	}

	score := 0.0
	for _, exp := range resume.WorkExperience {
		if exp.Industry != "" && strings.Contains(strings.ToLower(exp.Industry), field) {
			score = max(score, fieldIndustryScore)
		}
		if exp.Description != "" && strings.Contains(strings.ToLower(exp.Description), field) {
			score = max(score, fieldDescriptionScore)
		}
	}

	for _, skill := range resume.TechnicalSkills {
		if strings.Contains(strings.ToLower(skill), field) {
			score = max(score, fieldSkillScore)
		}
	}

	if score == 0 {
		return fieldFloorScore
	}
	return score
}
