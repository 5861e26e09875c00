package summarize

import (
	"strings"
	"testing"
)

func TestParse_DetectsConventionalSections(t *testing.T) {
	text := `Abstract: We study incremental view maintenance at scale.

Introduction: Materialized views are widely used in analytics systems.

Methods: We instrument three open source engines under mixed workloads.

Results: Incremental maintenance wins on nine of twelve workloads.

Conclusion: The trade-off depends primarily on update locality.`

	sections := NewRegexSectionParser().Parse(text)

	want := map[string]string{
		"abstract":     "We study incremental view maintenance at scale.",
		"introduction": "Materialized views are widely used in analytics systems.",
		"methodology":  "We instrument three open source engines under mixed workloads.",
		"results":      "Incremental maintenance wins on nine of twelve workloads.",
		"conclusion":   "The trade-off depends primarily on update locality.",
	}
	for name, body := range want {
		if sections[name] != body {
			t.Errorf("section %q: expected %q, got %q", name, body, sections[name])
		}
	}
}

func TestParse_OmitsMissingSections(t *testing.T) {
	sections := NewRegexSectionParser().Parse("Abstract: A study of cache eviction policies.")

	if len(sections) != 1 {
		t.Fatalf("expected only the abstract, got %v", sections)
	}
	if _, ok := sections["results"]; ok {
		t.Fatal("results should not be present")
	}
}

func TestParse_TruncatesLongSections(t *testing.T) {
	text := "Abstract: " + strings.Repeat("x", 3*sectionCharBudget)

	sections := NewRegexSectionParser().Parse(text)
	if got := len(sections["abstract"]); got != sectionCharBudget {
		t.Fatalf("expected section truncated to %d chars, got %d", sectionCharBudget, got)
	}
}

func TestParse_NoSections(t *testing.T) {
	sections := NewRegexSectionParser().Parse("Plain prose with no recognizable headings at all.")
	if len(sections) != 0 {
		t.Fatalf("expected no sections, got %v", sections)
	}
}

func TestParse_CaseInsensitiveHeadings(t *testing.T) {
	sections := NewRegexSectionParser().Parse("ABSTRACT: Uppercase headings are common in extracted PDF text.")
	if sections["abstract"] == "" {
		t.Fatalf("expected abstract section, got %v", sections)
	}
}
