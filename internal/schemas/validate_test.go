package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	schemafiles "github.com/jonathan/talent-match/schemas"
)

const testSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer"}
	}
}`

func TestValidateJSONString_Valid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"name": "Alice", "age": 30}`)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"age": "thirty"}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.GreaterOrEqual(t, len(validationErr.Errors), 2)
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(testSchema, `{ not json`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateDocument_ParsedResume(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{
			name: "complete resume",
			doc: `{
				"username": "alice",
				"technical_skills": ["Go", "SQL"],
				"work_experience": [{"title": "Backend Engineer", "duration": "6 years"}],
				"education": [{"degree": "Bachelor of Science"}],
				"job_titles": ["Backend Engineer"]
			}`,
		},
		{name: "null arrays", doc: `{"username": "bob", "technical_skills": null}`},
		{name: "missing username", doc: `{"technical_skills": ["Go"]}`, wantErr: true},
		{name: "skills not strings", doc: `{"username": "carol", "technical_skills": [1, 2]}`, wantErr: true},
		{name: "unknown experience field", doc: `{"username": "dan", "work_experience": [{"salary": "1"}]}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(schemafiles.ParsedResume, []byte(tt.doc))
			if tt.wantErr {
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateDocument_JobPosting(t *testing.T) {
	assert.NoError(t, ValidateDocument(schemafiles.JobPosting, []byte(`{"title": "Engineer", "experience": "senior"}`)))
	assert.Error(t, ValidateDocument(schemafiles.JobPosting, []byte(`{"title": ""}`)))
	assert.Error(t, ValidateDocument(schemafiles.JobPosting, []byte(`{"title": "x", "status": "archived"}`)))
}

func TestValidateDocument_UnknownSchema(t *testing.T) {
	err := ValidateDocument("missing.schema.json", []byte(`{}`))

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "missing.schema.json")
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "job.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{"title": "Engineer"}`), 0644))

	assert.NoError(t, ValidateFile(schemafiles.JobPosting, valid))

	err := ValidateFile(schemafiles.JobPosting, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "username", Message: "username is required"},
			{Field: "technical_skills.0", Message: "Invalid type"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. username: username is required")
	assert.Contains(t, msg, "2. technical_skills.0: Invalid type")
}
