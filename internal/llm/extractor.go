package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"

	"github.com/jonathan/talent-match/internal/prompts"
	"github.com/jonathan/talent-match/internal/types"
)

// resumeSchema is the answer shape enforced on the model. It mirrors extractedResume;
// Required lists fields in the order they are described in the prompt.
func resumeSchema() *genai.Schema {
	text := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	list := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeArray, Description: desc, Items: text("")}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"technical_skills": list("tools, languages, frameworks and methods the candidate lists"),
			"work_experience": {
				Type:        genai.TypeArray,
				Description: "one entry per position, most recent first",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":       text("position title"),
						"company":     text("employer name"),
						"description": text("what the candidate did"),
						"industry":    text("employer industry"),
						"duration":    text("length of the position, e.g. 2 years"),
					},
					Required: []string{"title", "company", "description", "industry", "duration"},
				},
			},
			"education": {
				Type:        genai.TypeArray,
				Description: "one entry per degree or diploma",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"degree": text("full degree name"),
						"school": text("institution"),
						"field":  text("field of study"),
					},
					Required: []string{"degree", "school", "field"},
				},
			},
			"job_titles": list("distinct position titles held"),
		},
		Required: []string{"technical_skills", "work_experience", "education", "job_titles"},
	}
}

// extractedResume is the document the model returns
type extractedResume struct {
	TechnicalSkills []string               `json:"technical_skills"`
	WorkExperience  []types.WorkExperience `json:"work_experience"`
	Education       []types.Education      `json:"education"`
	JobTitles       []string               `json:"job_titles"`
}

// ResumeExtractor turns free résumé text into a ParsedResumeInput
type ResumeExtractor struct {
	client  Client
	prompts *prompts.Resume
	schema  *genai.Schema
	logger  *zap.Logger
}

// NewResumeExtractor creates an extractor backed by client
func NewResumeExtractor(client Client, logger *zap.Logger) (*ResumeExtractor, error) {
	p, err := prompts.LoadResume()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResumeExtractor{
		client:  client,
		prompts: p,
		schema:  resumeSchema(),
		logger:  logger,
	}, nil
}

// Extract asks the model for the structured résumé of username
func (e *ResumeExtractor) Extract(ctx context.Context, username, text string) (*types.ParsedResumeInput, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("resume text is empty")
	}

	answer, err := e.client.GenerateJSON(ctx, Request{
		Prompt: buildResumePrompt(e.prompts, e.schema, username, text),
		Schema: e.schema,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume: %w", err)
	}

	var extracted extractedResume
	if err := json.Unmarshal([]byte(CleanJSONBlock(answer)), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse extracted resume: %w", err)
	}

	input := &types.ParsedResumeInput{
		Username:        username,
		TechnicalSkills: compactStrings(extracted.TechnicalSkills),
		WorkExperience:  dropEmptyPositions(extracted.WorkExperience),
		Education:       dropEmptyDegrees(extracted.Education),
		JobTitles:       compactStrings(extracted.JobTitles),
	}

	e.logger.Debug("resume extracted",
		zap.String("username", username),
		zap.Int("skills", len(input.TechnicalSkills)),
		zap.Int("positions", len(input.WorkExperience)),
		zap.Int("degrees", len(input.Education)),
	)
	return input, nil
}

// buildResumePrompt lays out task, output fields, rules, candidate and résumé text
func buildResumePrompt(p *prompts.Resume, schema *genai.Schema, username, text string) string {
	var sb strings.Builder

	sb.WriteString(p.Description)
	sb.WriteString("\n\nReturn one JSON object with these fields:\n")
	for _, name := range schema.Required {
		field := schema.Properties[name]
		fmt.Fprintf(&sb, "- %s %s: %s\n", name, typeHint(field), field.Description)
	}

	sb.WriteString("\nRules:\n")
	sb.WriteString(p.Rules)
	sb.WriteString("\n\n")
	sb.WriteString(p.CandidateContext(username))
	sb.WriteString("\n\nRésumé:\n\"\"\"\n")
	sb.WriteString(text)
	sb.WriteString("\n\"\"\"\n")
	return sb.String()
}

// typeHint renders a schema as a short type, e.g. [string] or [{degree, school, field}]
func typeHint(s *genai.Schema) string {
	switch s.Type {
	case genai.TypeArray:
		return "[" + typeHint(s.Items) + "]"
	case genai.TypeObject:
		return "{" + strings.Join(s.Required, ", ") + "}"
	default:
		return "string"
	}
}

// compactStrings trims values and drops empty and repeated ones, keeping order
func compactStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// dropEmptyPositions removes entries the schema forced the model to emit blank
func dropEmptyPositions(positions []types.WorkExperience) []types.WorkExperience {
	out := make([]types.WorkExperience, 0, len(positions))
	for _, p := range positions {
		if p != (types.WorkExperience{}) {
			out = append(out, p)
		}
	}
	return out
}

// dropEmptyDegrees removes education entries with no field set
func dropEmptyDegrees(degrees []types.Education) []types.Education {
	out := make([]types.Education, 0, len(degrees))
	for _, d := range degrees {
		if d != (types.Education{}) {
			out = append(out, d)
		}
	}
	return out
}
