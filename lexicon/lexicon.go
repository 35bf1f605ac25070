// Package lexicon implements weighted-term counting over speech
// transcripts: anti-elite framing, crisis language, and certainty
// markers, each scored with study-specific term weights.
package lexicon

import (
	"regexp"
	"sort"
	"strings"
)

// Single words this short get word-boundary matching; plain substring
// counting would match "may" inside "mayor".
const boundaryMatchLen = 4

// Lexicon maps a lowercase term or phrase to its weight. Negative
// weights mark negative framing, positive weights positive framing.
type Lexicon map[string]float64

// CategoryResult is the outcome of counting one lexicon over a text.
type CategoryResult struct {
	Count      int            `json:"count"`
	Score      float64        `json:"score"`
	TermsFound map[string]int `json:"terms_found,omitempty"`
}

// Count tallies lexicon terms in the text, longest term first so that
// multi-word phrases win over their embedded words.
func (l Lexicon) Count(text string) CategoryResult {
	lower := strings.ToLower(text)

	terms := make([]string, 0, len(l))
	for term := range l {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool { return len(terms[i]) > len(terms[j]) })

	result := CategoryResult{TermsFound: map[string]int{}}
	for _, term := range terms {
		count := countTerm(lower, term)
		if count == 0 {
			continue
		}
		result.TermsFound[term] = count
		result.Count += count
		result.Score += l[term] * float64(count)
	}
	return result
}

func countTerm(lower, term string) int {
	if !strings.Contains(term, " ") && len(term) <= boundaryMatchLen {
		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
		return len(pattern.FindAllStringIndex(lower, -1))
	}
	return strings.Count(lower, term)
}

// merge overlays non-nil override weights onto a copy of the base
// lexicon. Terms with weight 0 in the override are removed.
func merge(base Lexicon, override map[string]float64) Lexicon {
	out := make(Lexicon, len(base))
	for term, weight := range base {
		out[term] = weight
	}
	for term, weight := range override {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if weight == 0 {
			delete(out, term)
			continue
		}
		out[term] = weight
	}
	return out
}

// Density converts a raw count into occurrences per 1000 words.
func Density(count, wordCount int) float64 {
	if wordCount == 0 {
		return 0
	}
	return float64(count) / float64(wordCount) * 1000
}
