// Package schemas holds the JSON Schemas for documents accepted by the CLI.
package schemas

import "embed"

// Schema file names
const (
	JobPosting   = "job_posting.schema.json"
	ParsedResume = "parsed_resume.schema.json"
)

// Files contains every *.schema.json in this directory
//
//go:embed *.schema.json
var Files embed.FS
