package lexicon

import "strings"

// Anti-establishment references, UK and US specific terms included.
var defaultAntiElite = Lexicon{
	"establishment":         -2.0,
	"elite":                 -2.5,
	"elites":                -2.5,
	"ruling class":          -2.5,
	"political class":       -2.0,
	"political elite":       -2.5,
	"westminster":           -1.5,
	"westminster bubble":    -2.0,
	"brussels":              -2.0,
	"brussels bureaucrats":  -2.5,
	"eurocrats":             -2.0,
	"washington":            -1.5,
	"washington insiders":   -2.0,
	"beltway":               -1.5,
	"deep state":            -2.5,
	"career politicians":    -2.0,
	"career politician":     -2.0,
	"professional politicians": -2.0,
	"out of touch":          -2.0,
	"disconnected":          -1.5,
	"ivory tower":           -2.0,
}

var defaultSystemCriticism = Lexicon{
	"rigged":        -2.5,
	"rigged system": -3.0,
	"corrupt":       -3.0,
	"corrupted":     -2.5,
	"corruption":    -2.5,
	"swamp":         -2.0,
	"drain the swamp": -2.0,
	"broken system": -2.5,
	"broken":        -1.5,
	"failed":        -2.0,
	"failing":       -1.5,
	"betrayed":      -3.0,
	"betrayal":      -2.5,
	"sold out":      -2.5,
	"crooked":       -2.5,
}

var defaultPopulistPositive = Lexicon{
	"ordinary people":      2.0,
	"ordinary":             1.0,
	"working people":       1.5,
	"working families":     1.5,
	"hardworking families": 2.0,
	"hardworking":          1.5,
	"the people":           1.5,
	"take back control":    2.5,
	"take control":         2.0,
	"sovereignty":          2.0,
	"our country back":     2.0,
	"common sense":         1.5,
	"real people":          1.5,
}

var defaultPeopleNegative = Lexicon{
	"forgotten":        -2.0,
	"forgotten people": -2.5,
	"left behind":      -2.0,
	"ignored":          -1.5,
	"neglected":        -1.5,
}

// AntiEliteDetector scores anti-establishment rhetoric: negative
// references to elites and the system, positive populist framing, and
// negative framing of "the people" as wronged.
type AntiEliteDetector struct {
	AntiElite        Lexicon
	SystemCriticism  Lexicon
	PopulistPositive Lexicon
	PeopleNegative   Lexicon
}

// AntiEliteResult aggregates the four category counts for one speech.
type AntiEliteResult struct {
	AntiElite        CategoryResult `json:"anti_elite"`
	SystemCriticism  CategoryResult `json:"system_criticism"`
	PopulistPositive CategoryResult `json:"populist_positive"`
	PeopleNegative   CategoryResult `json:"people_negative"`

	// TotalCount and TotalScore cover the negative framings only;
	// NetPopulistScore folds the positive framing back in.
	TotalCount       int     `json:"total_anti_elite_count"`
	TotalScore       float64 `json:"total_anti_elite_score"`
	NetPopulistScore float64 `json:"net_populist_score"`

	Density   float64 `json:"anti_elite_density"`
	WordCount int     `json:"word_count"`
}

// NewAntiEliteDetector returns a detector with the study's term weights.
func NewAntiEliteDetector() *AntiEliteDetector {
	return &AntiEliteDetector{
		AntiElite:        merge(defaultAntiElite, nil),
		SystemCriticism:  merge(defaultSystemCriticism, nil),
		PopulistPositive: merge(defaultPopulistPositive, nil),
		PeopleNegative:   merge(defaultPeopleNegative, nil),
	}
}

// Analyze counts all four term categories over the speech text.
func (d *AntiEliteDetector) Analyze(text string) AntiEliteResult {
	result := AntiEliteResult{
		AntiElite:        d.AntiElite.Count(text),
		SystemCriticism:  d.SystemCriticism.Count(text),
		PopulistPositive: d.PopulistPositive.Count(text),
		PeopleNegative:   d.PeopleNegative.Count(text),
		WordCount:        len(strings.Fields(text)),
	}

	result.TotalCount = result.AntiElite.Count + result.SystemCriticism.Count + result.PeopleNegative.Count
	result.TotalScore = result.AntiElite.Score + result.SystemCriticism.Score + result.PeopleNegative.Score
	result.NetPopulistScore = result.TotalScore + result.PopulistPositive.Score
	result.Density = Density(result.TotalCount, result.WordCount)
	return result
}
