package summarize

import (
	"regexp"
	"strings"
)

// sectionCharBudget truncates each detected section body.
const sectionCharBudget = 1000

// SectionParser detects conventional document sections. The regex
// implementation is best-effort; keeping it behind an interface lets a
// structured-parsing variant replace it without touching callers.
type SectionParser interface {
	Parse(text string) map[string]string
}

// RegexSectionParser matches common heading keywords and captures the
// body until a blank line, the next known heading, or end of text.
type RegexSectionParser struct{}

// NewRegexSectionParser creates the default section parser
func NewRegexSectionParser() *RegexSectionParser {
	return &RegexSectionParser{}
}

var sectionPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"abstract", regexp.MustCompile(`(?is)\babstract\b[:\s]+(.+?)(?:\n[ \t]*\n|\bintroduction\b|$)`)},
	{"introduction", regexp.MustCompile(`(?is)\bintroduction\b[:\s]+(.+?)(?:\n[ \t]*\n|\bmethodology\b|\bmethods\b|$)`)},
	{"methodology", regexp.MustCompile(`(?is)\b(?:methodology|methods)\b[:\s]+(.+?)(?:\n[ \t]*\n|\bresults\b|$)`)},
	{"results", regexp.MustCompile(`(?is)\bresults\b[:\s]+(.+?)(?:\n[ \t]*\n|\bdiscussion\b|\bconclusion\b|$)`)},
	{"conclusion", regexp.MustCompile(`(?is)\bconclusion\b[:\s]+(.+?)(?:\n[ \t]*\n|\breferences\b|$)`)},
}

// Parse returns a map from section name to extracted text. Sections that
// do not match are omitted, never present with an empty value.
func (p *RegexSectionParser) Parse(text string) map[string]string {
	sections := make(map[string]string)

	for _, sp := range sectionPatterns {
		match := sp.pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		content := strings.TrimSpace(match[1])
		if content == "" {
			continue
		}
		if len(content) > sectionCharBudget {
			content = content[:sectionCharBudget]
		}
		sections[sp.name] = content
	}

	return sections
}
