// Package observability provides logging, tracing and formatted CLI output.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/talent-match/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxReasonsToShow caps the reasons listed per applicant
	maxReasonsToShow = 3
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// PrintMatches outputs a ranked applicant list for a job
func (p *Printer) PrintMatches(job types.JobSummary, results []types.MatchResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:      %s\n", job.Title))
	if job.Field != "" {
		sb.WriteString(fmt.Sprintf("Field:    %s\n", job.Field))
	}
	sb.WriteString(fmt.Sprintf("Matches:  %d\n", len(results)))

	for i, r := range results {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("#%d  %s  (%d)\n", i+1, r.Username, r.Score))
		count := min(len(r.Reasons), maxReasonsToShow)
		for _, reason := range r.Reasons[:count] {
			sb.WriteString(fmt.Sprintf("    • %s\n", reason))
		}
	}

	p.printBox("MATCHING APPLICANTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBreakdown outputs the sub-scores and reasons of a single match
func (p *Printer) PrintBreakdown(title string, b types.MatchBreakdown) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:      %d / 100\n\n", b.Score))
	sb.WriteString(fmt.Sprintf("Skills:     %.2f\n", b.SubScores.Skills))
	sb.WriteString(fmt.Sprintf("Experience: %.2f  (%.1f years)\n", b.SubScores.Experience, b.ExperienceYears))
	sb.WriteString(fmt.Sprintf("Education:  %.2f\n", b.SubScores.Education))
	sb.WriteString(fmt.Sprintf("Field:      %.2f\n", b.SubScores.Field))
	sb.WriteString(fmt.Sprintf("Title:      %.2f\n", b.SubScores.Title))

	if len(b.MatchedSkills) > 0 {
		sb.WriteString(fmt.Sprintf("\nMatched skills: %s\n", strings.Join(b.MatchedSkills, ", ")))
	}

	sb.WriteString("\nReasons:\n")
	for _, reason := range b.Reasons {
		sb.WriteString(fmt.Sprintf("  • %s\n", reason))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs one box per job, ordered by job title
func (p *Printer) PrintRecommendations(recs map[uuid.UUID]types.BulkRecommendation) {
	if len(recs) == 0 {
		p.printBox("RECOMMENDATIONS", "No open jobs")
		return
	}

	ordered := make([]types.BulkRecommendation, 0, len(recs))
	for _, rec := range recs {
		ordered = append(ordered, rec)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Job.Title != ordered[j].Job.Title {
			return ordered[i].Job.Title < ordered[j].Job.Title
		}
		return ordered[i].Job.ID.String() < ordered[j].Job.ID.String()
	})

	for _, rec := range ordered {
		if rec.Error != "" {
			p.printBox("RECOMMENDATIONS: "+rec.Job.ID.String(), "Error: "+rec.Error)
			continue
		}
		p.PrintMatches(rec.Job, rec.Applicants)
	}
}
