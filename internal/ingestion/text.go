// Package ingestion turns résumé text and parsed résumé payloads into stored candidate
// profiles.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jonathan/talent-match/internal/textutil"
)

// MaxResumeBytes bounds the size of a résumé file sent for extraction
const MaxResumeBytes = 1 << 20

var (
	multiSpace  = regexp.MustCompile(`[ \t]+`)
	blankLines  = regexp.MustCompile(`\n\n\n+`)
	bulletStart = []string{"- ", "* ", "• ", "· "}
)

// CleanText normalizes line endings and whitespace while keeping headings, bullets and
// paragraph breaks, which help the model split résumé sections.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses inner whitespace of one line
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	if isBulletLine(trimmed) {
		// Normalize the bullet marker to "- "
		for _, marker := range bulletStart {
			if strings.HasPrefix(trimmed, marker) {
				trimmed = "- " + strings.TrimSpace(strings.TrimPrefix(trimmed, marker))
				break
			}
		}
	}
	return multiSpace.ReplaceAllString(trimmed, " ")
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	for _, marker := range bulletStart {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}

// ReadResumeFile reads a plain-text or HTML résumé and returns cleaned text
func ReadResumeFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() > MaxResumeBytes {
		return "", fmt.Errorf("resume file too large: %d bytes (max %d)", info.Size(), MaxResumeBytes)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	text := string(content)
	if textutil.LooksLikeHTML(text) {
		return textutil.HTMLToText(text), nil
	}
	return CleanText(text), nil
}
