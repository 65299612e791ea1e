// Package matching ranks candidate résumés against job postings.
//
// Scoring is a weighted sum of five independent factors (skills, experience, education,
// field and title), each normalized to [0,1]. Missing or malformed résumé data lowers a
// factor instead of failing, so one bad record never blocks a ranking.
package matching

import (
	"math"

	"github.com/jonathan/talent-match/internal/types"
)

// Factor weights
const (
	skillsWeight     = 0.40
	experienceWeight = 0.20
	educationWeight  = 0.15
	fieldWeight      = 0.15
	titleWeight      = 0.10
)

const neutralSkillsScore = 0.5

// roundingEpsilon keeps exact halves like 1.5 from rounding down after float error
const roundingEpsilon = 1e-9

// Score computes the compatibility of a résumé with a job posting.
// It is deterministic and has no side effects. Nil inputs are treated as empty.
func Score(job *types.JobPosting, resume *types.ParsedResume) types.MatchBreakdown {
	if job == nil {
		job = &types.JobPosting{}
	}
	if resume == nil {
		resume = &types.ParsedResume{}
	}

	jobSkills := extractJobSkills(job)
	matchedSkills := matchSkills(jobSkills, extractCandidateSkills(resume))
	years := candidateYears(resume)

	sub := types.SubScores{
		Skills: computeSkillsScore(jobSkills, matchedSkills),
		Experience: computeExperienceScore(
			jobExperienceLevel(job.Experience),
			candidateExperienceLevel(years, len(resume.WorkExperience)),
		),
		Education: computeEducationScore(jobDegreeLevel(job.Degree), candidateDegreeLevel(resume)),
		Field:     computeFieldScore(job.Field, resume),
		Title:     computeTitleScore(job.Title, resume),
	}

	score := weightedScore(sub)

	return types.MatchBreakdown{
		Score:           score,
		SubScores:       sub,
		MatchedSkills:   matchedSkills,
		ExperienceYears: years,
		Reasons:         buildReasons(score, matchedSkills, years, resume),
	}
}

// weightedScore combines sub-scores into an integer in [0,100]
func weightedScore(sub types.SubScores) int {
	total := sub.Skills*skillsWeight +
		sub.Experience*experienceWeight +
		sub.Education*educationWeight +
		sub.Field*fieldWeight +
		sub.Title*titleWeight

	score := math.Round(total*100 + roundingEpsilon)
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}
