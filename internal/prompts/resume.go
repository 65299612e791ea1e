// Package prompts holds the embedded prompt texts used to extract résumés with an LLM.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed resume.json
var resumeJSON []byte

// usernamePlaceholder is replaced with the candidate's username in Resume.Context
const usernamePlaceholder = "{{.Username}}"

// Resume is the prompt set for résumé extraction
type Resume struct {
	// Description opens the prompt and states the task
	Description string `json:"extract-resume-description"`
	// Rules are per-field instructions listed after the output fields
	Rules string `json:"extract-resume-rules"`
	// Context tells the model whose résumé it reads
	Context string `json:"extract-resume-context"`
}

var loadResume = sync.OnceValues(func() (*Resume, error) {
	return parseResume(resumeJSON)
})

// LoadResume returns the embedded résumé prompts, parsed once
func LoadResume() (*Resume, error) {
	return loadResume()
}

// parseResume decodes a prompt set and checks that every prompt is present
func parseResume(data []byte) (*Resume, error) {
	var r Resume
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse resume prompts: %w", err)
	}

	var missing []string
	if strings.TrimSpace(r.Description) == "" {
		missing = append(missing, "extract-resume-description")
	}
	if strings.TrimSpace(r.Rules) == "" {
		missing = append(missing, "extract-resume-rules")
	}
	if !strings.Contains(r.Context, usernamePlaceholder) {
		missing = append(missing, "extract-resume-context")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("resume prompts incomplete: %s", strings.Join(missing, ", "))
	}
	return &r, nil
}

// CandidateContext fills the context prompt for username
func (r *Resume) CandidateContext(username string) string {
	return strings.ReplaceAll(r.Context, usernamePlaceholder, username)
}
