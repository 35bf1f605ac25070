package lexicon

import "strings"

var defaultCertaintyMarkers = Lexicon{
	"certain":        3.0,
	"certainly":      3.0,
	"sure":           2.5,
	"surely":         2.5,
	"definite":       3.0,
	"definitely":     3.0,
	"absolute":       3.5,
	"absolutely":     3.5,
	"undoubtedly":    3.5,
	"without doubt":  3.5,
	"no doubt":       3.0,
	"beyond doubt":   3.5,
	"unquestionably": 3.5,
	"indisputable":   3.5,
	"indisputably":   3.5,
	"inevitable":     3.0,
	"inevitably":     3.0,
	"guaranteed":     3.0,
	"guarantee":      2.5,
}

var defaultCertaintyModals = Lexicon{
	"will":     2.0,
	"shall":    2.5,
	"must":     2.5,
	"have to":  2.0,
	"need to":  2.0,
	"going to": 1.5,
}

var defaultEmphaticCertainty = Lexicon{
	"clearly":            2.5,
	"obviously":          3.0,
	"evidently":          2.5,
	"plainly":            2.5,
	"manifestly":         3.0,
	"patently":           3.0,
	"undeniably":         3.5,
	"incontrovertibly":   3.5,
	"unequivocally":      3.5,
	"categorically":      3.0,
	"absolutely certain": 4.0,
	"perfectly clear":    3.5,
	"crystal clear":      3.5,
	"without question":   3.5,
}

var defaultCertaintyPhrases = Lexicon{
	"make no mistake":      3.5,
	"let me be clear":      3.0,
	"the fact is":          3.0,
	"the truth is":         3.0,
	"there is no question": 3.5,
	"rest assured":         3.0,
	"mark my words":        3.5,
	"you can be sure":      3.0,
	"i guarantee":          3.5,
	"i promise":            3.0,
	"we will":              2.5,
	"we must":              2.5,
	"we shall":             3.0,
}

var defaultHedgingMarkers = Lexicon{
	"maybe":       -2.0,
	"perhaps":     -2.0,
	"possibly":    -2.0,
	"probably":    -1.5,
	"likely":      -1.0,
	"unlikely":    -1.0,
	"might":       -2.0,
	"could":       -1.5,
	"may":         -1.5,
	"can":         -1.0,
	"seem":        -1.5,
	"seems":       -1.5,
	"appear":      -1.5,
	"appears":     -1.5,
	"suggest":     -1.5,
	"suggests":    -1.5,
	"indicate":    -1.0,
	"indicates":   -1.0,
	"tend to":     -1.5,
	"tends to":    -1.5,
	"somewhat":    -1.5,
	"rather":      -1.0,
	"fairly":      -1.0,
	"quite":       -1.0,
	"relatively":  -1.5,
	"arguably":    -2.0,
	"conceivably": -2.0,
	"potentially": -1.5,
	"presumably":  -1.5,
	"supposedly":  -2.0,
	"allegedly":   -2.5,
}

// CertaintyDetector measures epistemic stance: high-certainty language
// projecting confidence versus hedging language signaling uncertainty.
type CertaintyDetector struct {
	Markers  Lexicon
	Modals   Lexicon
	Emphatic Lexicon
	Phrases  Lexicon
	Hedging  Lexicon
}

// CertaintyResult aggregates certainty and hedging counts for one speech.
type CertaintyResult struct {
	Markers  CategoryResult `json:"certainty_basic"`
	Modals   CategoryResult `json:"certainty_modal"`
	Emphatic CategoryResult `json:"certainty_emphatic"`
	Phrases  CategoryResult `json:"certainty_phrase"`
	Hedging  CategoryResult `json:"hedging"`

	TotalCertaintyCount int     `json:"total_certainty_count"`
	TotalCertaintyScore float64 `json:"total_certainty_score"`
	// Hedging scores are negative, so adding them yields the net.
	NetCertaintyScore float64 `json:"net_certainty_score"`

	CertaintyDensity      float64 `json:"certainty_density"`
	HedgingDensity        float64 `json:"hedging_density"`
	CertaintyHedgingRatio float64 `json:"certainty_hedging_ratio"`
	WordCount             int     `json:"word_count"`
}

// NewCertaintyDetector returns a detector with the study's term weights.
func NewCertaintyDetector() *CertaintyDetector {
	return &CertaintyDetector{
		Markers:  merge(defaultCertaintyMarkers, nil),
		Modals:   merge(defaultCertaintyModals, nil),
		Emphatic: merge(defaultEmphaticCertainty, nil),
		Phrases:  merge(defaultCertaintyPhrases, nil),
		Hedging:  merge(defaultHedgingMarkers, nil),
	}
}

// Analyze counts certainty and hedging terms over the speech text.
func (d *CertaintyDetector) Analyze(text string) CertaintyResult {
	result := CertaintyResult{
		Markers:  d.Markers.Count(text),
		Modals:   d.Modals.Count(text),
		Emphatic: d.Emphatic.Count(text),
		Phrases:  d.Phrases.Count(text),
		Hedging:  d.Hedging.Count(text),
		WordCount: len(strings.Fields(text)),
	}

	for _, c := range []CategoryResult{result.Markers, result.Modals, result.Emphatic, result.Phrases} {
		result.TotalCertaintyCount += c.Count
		result.TotalCertaintyScore += c.Score
	}
	result.NetCertaintyScore = result.TotalCertaintyScore + result.Hedging.Score

	result.CertaintyDensity = Density(result.TotalCertaintyCount, result.WordCount)
	result.HedgingDensity = Density(result.Hedging.Count, result.WordCount)
	hedges := result.Hedging.Count
	if hedges < 1 {
		hedges = 1
	}
	result.CertaintyHedgingRatio = float64(result.TotalCertaintyCount) / float64(hedges)
	return result
}

// Level maps the net certainty density onto a 0-10 scale.
func (r CertaintyResult) Level() float64 {
	level := (r.CertaintyDensity - r.HedgingDensity) / 2
	if level < 0 {
		return 0
	}
	if level > 10 {
		return 10
	}
	return level
}
