package release

import (
	"fmt"
	"os"
	"strings"
)

// sectionPrefix marks a changelog version heading, e.g. "[v1.2.0] - 2024-01-01".
const sectionPrefix = "[v"

// ExtractNotes returns the body of the first changelog section whose heading
// line begins with a version marker. The heading line itself is stripped.
// A changelog without any version section yields an empty string, never an
// error; the release then carries an empty body.
func ExtractNotes(changelog string) string {
	normalized := strings.ReplaceAll(changelog, "\r\n", "\n")
	for _, paragraph := range splitParagraphs(normalized) {
		lines := strings.Split(paragraph, "\n")
		if !strings.HasPrefix(lines[0], sectionPrefix) {
			continue
		}
		return strings.Join(lines[1:], "\n")
	}
	return ""
}

// ExtractNotesFile reads the changelog at path and extracts the latest
// section body.
func ExtractNotesFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read changelog: %w", err)
	}
	return ExtractNotes(string(data)), nil
}

// splitParagraphs groups consecutive non-blank lines. Lines containing only
// whitespace separate paragraphs.
func splitParagraphs(text string) []string {
	var paragraphs []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return paragraphs
}
