package lexicon

import "strings"

var defaultCrisisTerms = Lexicon{
	"crisis":       3.0,
	"crises":       3.0,
	"emergency":    3.0,
	"catastrophe":  4.0,
	"catastrophic": 4.0,
	"disaster":     3.5,
	"disastrous":   3.5,
	"chaos":        3.0,
	"chaotic":      2.5,
	"breakdown":    2.5,
	"collapse":     3.0,
	"collapsing":   3.0,
}

var defaultThreatTerms = Lexicon{
	"threat":       2.5,
	"threatens":    2.5,
	"threatening":  2.5,
	"threatened":   2.5,
	"danger":       2.5,
	"dangerous":    2.5,
	"dangerously":  2.5,
	"risk":         2.0,
	"risks":        2.0,
	"at risk":      2.5,
	"under threat": 3.0,
	"under attack": 3.0,
	"attack":       2.0,
	"attacking":    2.0,
	"fear":         2.0,
	"fears":        2.0,
	"terrify":      2.5,
	"terrifying":   2.5,
	"alarm":        2.0,
	"alarming":     2.5,
}

var defaultDeclineTerms = Lexicon{
	"decline":        2.0,
	"declining":      2.0,
	"deteriorate":    2.5,
	"deteriorating":  2.5,
	"deterioration":  2.5,
	"worse":          1.5,
	"worsen":         2.0,
	"worsening":      2.0,
	"falling apart":  3.0,
	"fall apart":     3.0,
	"breaking down":  2.5,
	"break down":     2.5,
	"spiral":         2.0,
	"spiraling":      2.5,
	"out of control": 3.0,
	"losing control": 2.5,
}

var defaultUrgencyTerms = Lexicon{
	"urgent":              2.5,
	"urgently":            2.5,
	"urgency":             2.5,
	"immediate":           2.0,
	"immediately":         2.0,
	"now":                 1.5,
	"right now":           2.0,
	"must act":            2.5,
	"act now":             2.5,
	"time is running out": 3.0,
	"running out of time": 3.0,
	"no time":             2.5,
	"cannot wait":         2.5,
	"can't wait":          2.5,
	"before it's too late": 3.0,
	"too late":            2.0,
}

var defaultCatastrophicTerms = Lexicon{
	"destroy":            2.5,
	"destroying":         2.5,
	"destruction":        3.0,
	"devastate":          3.0,
	"devastating":        3.0,
	"devastation":        3.0,
	"ruin":               2.5,
	"ruined":             2.5,
	"ruining":            2.5,
	"irreversible":       3.0,
	"point of no return": 3.5,
	"no going back":      3.0,
	"existential":        3.5,
	"existential threat": 4.0,
	"survival":           2.5,
	"survive":            2.0,
}

// CrisisDetector measures emergency framing: presenting the present as a
// crisis demanding immediate, drastic action.
type CrisisDetector struct {
	Crisis       Lexicon
	Threat       Lexicon
	Decline      Lexicon
	Urgency      Lexicon
	Catastrophic Lexicon
}

// CrisisResult aggregates the five category counts for one speech.
type CrisisResult struct {
	Crisis       CategoryResult `json:"crisis"`
	Threat       CategoryResult `json:"threat"`
	Decline      CategoryResult `json:"decline"`
	Urgency      CategoryResult `json:"urgency"`
	Catastrophic CategoryResult `json:"catastrophic"`

	TotalCount int     `json:"total_crisis_count"`
	TotalScore float64 `json:"total_crisis_score"`
	Density    float64 `json:"crisis_density"`
	WordCount  int     `json:"word_count"`
}

// NewCrisisDetector returns a detector with the study's term weights.
func NewCrisisDetector() *CrisisDetector {
	return &CrisisDetector{
		Crisis:       merge(defaultCrisisTerms, nil),
		Threat:       merge(defaultThreatTerms, nil),
		Decline:      merge(defaultDeclineTerms, nil),
		Urgency:      merge(defaultUrgencyTerms, nil),
		Catastrophic: merge(defaultCatastrophicTerms, nil),
	}
}

// Analyze counts all five term categories over the speech text.
func (d *CrisisDetector) Analyze(text string) CrisisResult {
	result := CrisisResult{
		Crisis:       d.Crisis.Count(text),
		Threat:       d.Threat.Count(text),
		Decline:      d.Decline.Count(text),
		Urgency:      d.Urgency.Count(text),
		Catastrophic: d.Catastrophic.Count(text),
		WordCount:    len(strings.Fields(text)),
	}

	for _, c := range []CategoryResult{result.Crisis, result.Threat, result.Decline, result.Urgency, result.Catastrophic} {
		result.TotalCount += c.Count
		result.TotalScore += c.Score
	}
	result.Density = Density(result.TotalCount, result.WordCount)
	return result
}

// Intensity maps crisis density onto a 0-10 scale. Observed densities
// run roughly 0-20 per 1000 words.
func (r CrisisResult) Intensity() float64 {
	intensity := r.Density / 2
	if intensity > 10 {
		return 10
	}
	return intensity
}
