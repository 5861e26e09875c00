package summarize

import (
	"regexp"
	"sort"
	"strings"
)

const (
	// Only the leading part of long documents is scored.
	maxScoredSentences = 100
	// Number of sentences in the extractive summary.
	maxSelectedSentences = 5
	// Sentences shorter than this are treated as noise.
	minSentenceLen = 20
	// Sentences returned when no sentence matches any keyword.
	fallbackSentenceCount = 3
)

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

// SelectSentences builds the extractive summary: the highest-scoring
// original sentences, re-ordered by their position in the document.
// A sentence's score is the number of keywords it contains.
//
// When no sentence contains any keyword the leading sentences of the
// document are returned instead, so the result is never empty for
// non-empty input.
func SelectSentences(text string, keywords []string) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}

	scored := sentences
	if len(scored) > maxScoredSentences {
		scored = scored[:maxScoredSentences]
	}

	type candidate struct {
		index int
		score int
	}
	var candidates []candidate
	for i, sentence := range scored {
		lower := strings.ToLower(sentence)
		score := 0
		for _, keyword := range keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(keyword)) {
				score++
			}
		}
		if score > 0 {
			candidates = append(candidates, candidate{index: i, score: score})
		}
	}

	if len(candidates) == 0 {
		n := fallbackSentenceCount
		if n > len(sentences) {
			n = len(sentences)
		}
		return strings.Join(sentences[:n], ". ") + "."
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > maxSelectedSentences {
		candidates = candidates[:maxSelectedSentences]
	}

	// Restore document order for readability.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].index < candidates[j].index
	})

	selected := make([]string, len(candidates))
	for i, c := range candidates {
		selected[i] = scored[c.index]
	}
	return strings.Join(selected, ". ") + "."
}

// splitSentences applies the naive delimiter split and drops fragments
// too short to carry information.
func splitSentences(text string) []string {
	raw := sentenceSplitter.Split(text, -1)
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if len(s) > minSentenceLen {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
