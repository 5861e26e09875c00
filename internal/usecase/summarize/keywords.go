package summarize

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/docbrief/docbrief/pkg/ai"
)

// DefaultKeywordCount is the number of keywords requested per document.
const DefaultKeywordCount = 15

// keywordPromptTextLimit bounds how much document text goes into the
// keyword prompt.
const keywordPromptTextLimit = 10000

var wordPattern = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)

var stopwords = map[string]struct{}{
	"that": {}, "this": {}, "with": {}, "from": {}, "have": {},
	"been": {}, "were": {}, "their": {}, "which": {}, "will": {},
	"would": {}, "could": {}, "should": {}, "there": {}, "these": {},
	"those": {}, "about": {}, "other": {}, "more": {}, "some": {},
	"such": {}, "into": {}, "also": {}, "than": {}, "then": {},
	"them": {}, "they": {}, "when": {}, "where": {}, "what": {},
}

// KeywordExtractor derives a ranked list of salient terms, primarily via
// the completion service with a deterministic frequency fallback.
type KeywordExtractor struct {
	llm    ai.Completer
	logger *zap.Logger
}

// NewKeywordExtractor creates a keyword extractor
func NewKeywordExtractor(llm ai.Completer, logger *zap.Logger) *KeywordExtractor {
	return &KeywordExtractor{llm: llm, logger: logger}
}

// Extract returns up to n keywords, most salient first. It never fails:
// when the completion service errors or returns nothing usable, the
// frequency fallback runs instead.
func (e *KeywordExtractor) Extract(ctx context.Context, text string, n int) []string {
	if n <= 0 {
		n = DefaultKeywordCount
	}

	if e.llm != nil {
		prompt := buildKeywordPrompt(text, n)
		response, err := e.llm.Complete(ctx, prompt)
		if err == nil {
			if keywords := parseKeywordList(response, n); len(keywords) > 0 {
				return keywords
			}
		} else if e.logger != nil {
			e.logger.Warn("keyword extraction via LLM failed, using frequency fallback", zap.Error(err))
		}
	}

	return FrequencyKeywords(text, n)
}

// parseKeywordList splits a model response on commas and newlines into a
// deduplicated ordered list.
func parseKeywordList(response string, n int) []string {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil
	}

	fields := strings.FieldsFunc(response, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	seen := make(map[string]struct{}, len(fields))
	keywords := make([]string, 0, n)
	for _, f := range fields {
		keyword := strings.Trim(strings.TrimSpace(f), `"'-•* `)
		if keyword == "" {
			continue
		}
		lower := strings.ToLower(keyword)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		keywords = append(keywords, keyword)
		if len(keywords) == n {
			break
		}
	}
	return keywords
}

// FrequencyKeywords is the deterministic fallback: alphabetic words of
// length >= 4, lowercased, stopwords removed, ranked by descending count
// with ties broken by first occurrence.
func FrequencyKeywords(text string, n int) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, w := range words {
		if _, stop := stopwords[w]; stop {
			continue
		}
		if _, ok := firstSeen[w]; !ok {
			firstSeen[w] = i
		}
		counts[w]++
	}

	unique := make([]string, 0, len(counts))
	for w := range counts {
		unique = append(unique, w)
	}

	sort.Slice(unique, func(i, j int) bool {
		if counts[unique[i]] != counts[unique[j]] {
			return counts[unique[i]] > counts[unique[j]]
		}
		return firstSeen[unique[i]] < firstSeen[unique[j]]
	})

	if len(unique) > n {
		unique = unique[:n]
	}
	return unique
}
