// Package ngrams extracts frequent bigrams and trigrams from speech
// transcripts, filtering transcription artifacts and empty function-word
// sequences.
package ngrams

import (
	"sort"
	"strings"

	"speechlab/textnorm"
)

// Speech-to-text and web-scrape artifacts that pollute the rankings.
var wordBlacklist = map[string]struct{}{
	"aa": {}, "rr": {}, "mmeerriiccaann": {}, "hheettoorriicc": {},
	"ccoomm": {}, "americanrhetoric": {}, "property": {},
	"copyright": {}, "transcript": {}, "video": {}, "audio": {},
}

// Applause and salutation boilerplate that dominates raw counts.
var bigramStoplist = map[string]struct{}{
	"thank you": {}, "you thank": {}, "you very": {},
	"very much": {}, "very very": {}, "thank thank": {},
}

var trigramStoplist = map[string]struct{}{
	"thank you very": {}, "you very much": {}, "you thank you": {},
	"thank you thank": {}, "very very much": {},
}

var functionWords = map[string]struct{}{
	"the": {}, "of": {}, "to": {}, "and": {}, "in": {}, "that": {}, "is": {}, "was": {},
	"for": {}, "on": {}, "with": {}, "as": {}, "by": {}, "at": {}, "from": {}, "this": {},
	"be": {}, "are": {}, "an": {}, "or": {}, "but": {}, "not": {}, "if": {}, "so": {},
}

// Ngram is a ranked n-gram with its corpus frequency.
type Ngram struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Extractor configures n-gram extraction. MinFrequency drops n-grams
// seen fewer times than the threshold.
type Extractor struct {
	MinFrequency int
}

// NewExtractor returns an extractor with the study's default threshold.
func NewExtractor() *Extractor {
	return &Extractor{MinFrequency: 5}
}

// Top returns the k most frequent filtered n-grams of size n in the text.
func (e *Extractor) Top(text string, n, k int) []Ngram {
	return e.topFromCounts(e.counts(text, n), k)
}

// TopAcross pools the texts into one corpus and ranks its n-grams,
// used for the populist-vs-mainstream comparisons.
func (e *Extractor) TopAcross(texts []string, n, k int) []Ngram {
	pooled := make(map[string]int)
	for _, text := range texts {
		for gram, count := range e.counts(text, n) {
			pooled[gram] += count
		}
	}
	return e.topFromCounts(pooled, k)
}

// Distinctive returns n-grams frequent in the first corpus but absent
// from the second, surfacing category-specific phrasing.
func (e *Extractor) Distinctive(corpus, other []string, n, k int) []Ngram {
	otherCounts := make(map[string]int)
	for _, text := range other {
		for gram, count := range e.counts(text, n) {
			otherCounts[gram] += count
		}
	}

	pooled := make(map[string]int)
	for _, text := range corpus {
		for gram, count := range e.counts(text, n) {
			pooled[gram] += count
		}
	}
	for gram := range pooled {
		if otherCounts[gram] > 0 {
			delete(pooled, gram)
		}
	}
	return e.topFromCounts(pooled, k)
}

func (e *Extractor) counts(text string, n int) map[string]int {
	words := tokenize(text)
	counts := make(map[string]int)
	for i := 0; i+n <= len(words); i++ {
		gram := strings.Join(words[i:i+n], " ")
		if !keep(gram, words[i:i+n], n) {
			continue
		}
		counts[gram]++
	}
	return counts
}

func (e *Extractor) topFromCounts(counts map[string]int, k int) []Ngram {
	min := e.MinFrequency
	if min < 1 {
		min = 1
	}
	out := make([]Ngram, 0, len(counts))
	for gram, count := range counts {
		if count >= min {
			out = append(out, Ngram{Text: gram, Count: count})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Text < out[j].Text
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

func tokenize(text string) []string {
	raw := textnorm.Tokenize(text)
	words := raw[:0]
	for _, w := range raw {
		if len(w) <= 1 {
			continue
		}
		if _, banned := wordBlacklist[w]; banned {
			continue
		}
		words = append(words, w)
	}
	return words
}

func keep(gram string, words []string, n int) bool {
	stoplist := bigramStoplist
	minContent := 1
	if n >= 3 {
		stoplist = trigramStoplist
		minContent = 2
	}
	if _, stopped := stoplist[gram]; stopped {
		return false
	}

	content := 0
	for _, w := range words {
		if _, fn := functionWords[w]; !fn {
			content++
		}
	}
	return content >= minContent
}
