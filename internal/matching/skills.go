package matching

import (
	"strings"

	"github.com/jonathan/talent-match/internal/textutil"
	"github.com/jonathan/talent-match/internal/types"
)

// jobSkillKeywords is the vocabulary searched for in job text
var jobSkillKeywords = []string{
	"javascript", "python", "java", "react", "node.js", "angular", "vue",
	"html", "css", "sql", "mongodb", "postgresql", "mysql", "docker",
	"aws", "azure", "git", "agile", "scrum", "rest api", "graphql",
	"machine learning", "ai", "data analysis", "excel", "powerpoint",
}

// experienceSkillKeywords is the vocabulary searched for in work experience descriptions
var experienceSkillKeywords = []string{
	"javascript", "python", "java", "react", "node.js", "angular", "vue",
	"html", "css", "sql", "mongodb", "postgresql", "mysql", "docker",
	"aws", "azure", "git", "agile", "scrum", "rest api", "graphql",
}

// jobText joins the searchable text of a job posting in lower case
func jobText(job *types.JobPosting) string {
	parts := []string{job.Title, textutil.HTMLToText(job.Description), job.Techniques}
	return strings.ToLower(strings.Join(parts, " "))
}

// extractJobSkills returns the vocabulary keywords present in the job text, in vocabulary order
func extractJobSkills(job *types.JobPosting) []string {
	text := jobText(job)
	skills := make([]string, 0)
	for _, keyword := range jobSkillKeywords {
		if strings.Contains(text, keyword) {
			skills = append(skills, keyword)
		}
	}
	return skills
}

// extractCandidateSkills returns the lower-cased technical skills of the résumé followed by
// vocabulary keywords found in work experience descriptions, without duplicates.
func extractCandidateSkills(resume *types.ParsedResume) []string {
	seen := make(map[string]bool)
	skills := make([]string, 0, len(resume.TechnicalSkills))
	add := func(skill string) {
		if skill == "" || seen[skill] {
			return
		}
		seen[skill] = true
		skills = append(skills, skill)
	}

	for _, skill := range resume.TechnicalSkills {
		add(strings.ToLower(strings.TrimSpace(skill)))
	}

	for _, exp := range resume.WorkExperience {
		if exp.Description == "" {
			continue
		}
		desc := strings.ToLower(exp.Description)
		for _, keyword := range experienceSkillKeywords {
			if strings.Contains(desc, keyword) {
				add(keyword)
			}
		}
	}

	return skills
}

// matchSkills returns the job keywords covered by the candidate's skills. A keyword is covered
// when a candidate skill contains it or is contained by it.
func matchSkills(jobSkills, candidateSkills []string) []string {
	matched := make([]string, 0)
	for _, skill := range jobSkills {
		for _, candidate := range candidateSkills {
			if strings.Contains(candidate, skill) || strings.Contains(skill, candidate) {
				matched = append(matched, skill)
				break
			}
		}
	}
	return matched
}

// computeSkillsScore returns the share of job keywords matched, or the neutral default when
// the job mentions none.
func computeSkillsScore(jobSkills, matched []string) float64 {
	if len(jobSkills) == 0 {
		return neutralSkillsScore
	}
	return float64(len(matched)) / float64(len(jobSkills))
}
