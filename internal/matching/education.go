package matching

import (
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

// degreeLevels maps a job's required degree to an ordinal. Unknown values map to 0.
var degreeLevels = map[string]int{
	"none":        0,
	"no required": 0,
	"high school": 1,
	"high-school": 1,
	"associate":   2,
	"bachelor":    3,
	"master":      4,
	"phd":         5,
	"doctorate":   5,
}

// degreeKeywords are searched for inside free-text candidate degrees
var degreeKeywords = []struct {
	keyword string
	level   int
}{
	{"high school", 1},
	{"high-school", 1},
	{"associate", 2},
	{"bachelor", 3},
	{"master", 4},
	{"phd", 5},
	{"doctorate", 5},
}

// jobDegreeLevel returns the ordinal for the job's required degree
func jobDegreeLevel(required string) int {
	return degreeLevels[strings.ToLower(strings.TrimSpace(required))]
}

// candidateDegreeLevel returns the highest degree ordinal found across education entries
func candidateDegreeLevel(resume *types.ParsedResume) int {
	level := 0
	for _, edu := range resume.Education {
		if edu.Degree == "" {
			continue
		}
		degree := strings.ToLower(edu.Degree)
		for _, k := range degreeKeywords {
			if strings.Contains(degree, k.keyword) {
				level = max(level, k.level)
			}
		}
	}
	return level
}

// computeEducationScore is 1 when the job has no requirement or the candidate meets it,
// otherwise the ratio of candidate level to required level.
func computeEducationScore(jobLevel, candidateLevel int) float64 {
	if jobLevel == 0 || candidateLevel >= jobLevel {
		return 1.0
	}
	return float64(candidateLevel) / float64(jobLevel)
}
