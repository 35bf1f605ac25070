// Package pronouns measures in-group/out-group framing through pronoun
// usage. The populist signature is high "we/us/our" (solidarity) paired
// with high "they/them/their" (othering).
package pronouns

import (
	"speechlab/textnorm"
)

var (
	wePronouns   = set("we", "us", "our", "ours", "ourselves")
	iPronouns    = set("i", "me", "my", "mine", "myself")
	theyPronouns = set("they", "them", "their", "theirs", "themselves")
	youPronouns  = set("you", "your", "yours", "yourself", "yourselves")
)

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// Result holds pronoun counts, densities per 1000 words, and the framing
// ratios derived from them.
type Result struct {
	WeCount    int `json:"we_count"`
	ICount     int `json:"i_count"`
	TheyCount  int `json:"they_count"`
	YouCount   int `json:"you_count"`
	TotalCount int `json:"total_pronouns"`
	WordCount  int `json:"word_count"`

	WeDensity    float64 `json:"we_density"`
	IDensity     float64 `json:"i_density"`
	TheyDensity  float64 `json:"they_density"`
	YouDensity   float64 `json:"you_density"`
	TotalDensity float64 `json:"total_pronoun_density"`

	// WeTheyRatio high means strong us-vs-them framing; WeIRatio high
	// means collective emphasis over the individual leader.
	WeTheyRatio              float64 `json:"we_they_ratio"`
	WeIRatio                 float64 `json:"we_i_ratio"`
	InclusiveExclusiveRatio  float64 `json:"inclusive_exclusive_ratio"`

	WePct   float64 `json:"we_pct"`
	IPct    float64 `json:"i_pct"`
	TheyPct float64 `json:"they_pct"`
	YouPct  float64 `json:"you_pct"`
}

// Analyze tokenizes the text and computes all pronoun metrics.
func Analyze(text string) Result {
	words := textnorm.Tokenize(text)

	r := Result{WordCount: len(words)}
	for _, w := range words {
		switch {
		case contains(wePronouns, w):
			r.WeCount++
		case contains(iPronouns, w):
			r.ICount++
		case contains(theyPronouns, w):
			r.TheyCount++
		case contains(youPronouns, w):
			r.YouCount++
		}
	}
	r.TotalCount = r.WeCount + r.ICount + r.TheyCount + r.YouCount

	r.WeDensity = density(r.WeCount, r.WordCount)
	r.IDensity = density(r.ICount, r.WordCount)
	r.TheyDensity = density(r.TheyCount, r.WordCount)
	r.YouDensity = density(r.YouCount, r.WordCount)
	r.TotalDensity = density(r.TotalCount, r.WordCount)

	r.WeTheyRatio = ratio(r.WeCount, r.TheyCount)
	r.WeIRatio = ratio(r.WeCount, r.ICount)
	r.InclusiveExclusiveRatio = ratio(r.WeCount+r.YouCount, r.TheyCount)

	if r.TotalCount > 0 {
		total := float64(r.TotalCount)
		r.WePct = float64(r.WeCount) / total * 100
		r.IPct = float64(r.ICount) / total * 100
		r.TheyPct = float64(r.TheyCount) / total * 100
		r.YouPct = float64(r.YouCount) / total * 100
	}
	return r
}

// FramingScore rates us-vs-them intensity on a 1-10 scale. Strong
// framing needs both high in-group density and high out-group density.
func (r Result) FramingScore() int {
	inclusive := r.WeDensity + r.YouDensity
	switch {
	case inclusive > 20 && r.TheyDensity > 10:
		return 10
	case inclusive > 15 && r.TheyDensity > 7:
		return 7
	case inclusive > 10 && r.TheyDensity > 5:
		return 5
	case inclusive > 5 || r.TheyDensity > 3:
		return 3
	default:
		return 1
	}
}

func contains(m map[string]struct{}, w string) bool {
	_, ok := m[w]
	return ok
}

func density(count, words int) float64 {
	if words == 0 {
		return 0
	}
	return float64(count) / float64(words) * 1000
}

func ratio(num, den int) float64 {
	if den < 1 {
		den = 1
	}
	return float64(num) / float64(den)
}
