package summarize

import "strings"

// StructuredSummary is the parsed form of a marker-delimited model
// response.
type StructuredSummary struct {
	Overview        string
	KeyInsights     string
	Risks           string
	Recommendations string
}

// matchSectionMarker recognizes a section heading line. Models decorate
// the markers in all kinds of ways (bold, missing brackets), so bracketed
// markers match anywhere in the line and bare headers match too.
func matchSectionMarker(line string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(line))
	switch {
	case strings.Contains(upper, "[OVERVIEW]") || upper == "OVERVIEW":
		return "overview", true
	case strings.Contains(upper, "KEY INSIGHTS"):
		return "key_insights", true
	case strings.Contains(upper, "[RISKS") || strings.HasPrefix(upper, "RISKS"):
		return "risks", true
	case strings.Contains(upper, "RECOMMENDATIONS"):
		return "recommendations", true
	}
	return "", false
}

// ParseStructuredResponse splits a model response on its section
// markers. Text before the first marker (or a response with no markers
// at all) lands in Overview so nothing the model produced is lost.
func ParseStructuredResponse(response string) StructuredSummary {
	response = stripMarkdownFences(response)

	sections := map[string]*strings.Builder{
		"overview":        {},
		"key_insights":    {},
		"risks":           {},
		"recommendations": {},
	}

	current := "overview"
	for _, line := range strings.Split(response, "\n") {
		if key, ok := matchSectionMarker(line); ok {
			current = key
			continue
		}
		b := sections[current]
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line)
	}

	return StructuredSummary{
		Overview:        strings.TrimSpace(sections["overview"].String()),
		KeyInsights:     strings.TrimSpace(sections["key_insights"].String()),
		Risks:           strings.TrimSpace(sections["risks"].String()),
		Recommendations: strings.TrimSpace(sections["recommendations"].String()),
	}
}

// stripMarkdownFences removes a wrapping ``` code fence if the model
// added one around the whole response.
func stripMarkdownFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop a language tag on the opening fence line.
		firstLine := trimmed[:idx]
		if !strings.ContainsAny(firstLine, " \t") && len(firstLine) < 20 {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
