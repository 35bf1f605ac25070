// Package sentiment wraps the VADER analyzer for per-speech scoring.
//
// Whole-speech compound scores saturate near +/-1.0 for long texts, so the
// sentence-level mean is the primary metric carried forward into the
// grouped statistics.
package sentiment

import (
	"strings"

	"github.com/drankou/go-vader/vader"
	"github.com/montanaflynn/stats"
)

// Sentence fragments at or below this length are skipped; splitting on
// periods leaves abbreviations and stray initials behind.
const minFragmentLen = 10

// Sentences scoring beyond +/-0.05 compound count as positive/negative,
// the standard VADER thresholds.
const neutralBand = 0.05

// SpeechScore captures the VADER results for one speech.
type SpeechScore struct {
	OverallCompound float64 `json:"overall_compound"`
	OverallPos      float64 `json:"overall_pos"`
	OverallNeu      float64 `json:"overall_neu"`
	OverallNeg      float64 `json:"overall_neg"`

	SentenceMean   float64 `json:"sentence_mean"`
	SentenceMedian float64 `json:"sentence_median"`
	SentenceStdDev float64 `json:"sentence_stdev"`

	NumSentences int `json:"num_sentences"`
	NumPositive  int `json:"num_positive"`
	NumNeutral   int `json:"num_neutral"`
	NumNegative  int `json:"num_negative"`

	PctPositive float64 `json:"pct_positive"`
	PctNeutral  float64 `json:"pct_neutral"`
	PctNegative float64 `json:"pct_negative"`
}

// Analyzer scores speeches with a VADER sentiment intensity analyzer.
type Analyzer struct {
	sia vader.SentimentIntensityAnalyzer
}

// New initializes the VADER lexicon. The returned analyzer is safe for
// reuse across speeches.
func New() (*Analyzer, error) {
	a := &Analyzer{}
	if err := a.sia.Init(); err != nil {
		return nil, err
	}
	return a, nil
}

// Score analyzes one speech: an overall pass over the full text plus a
// compound score per sentence, aggregated into the speech-level metrics.
func (a *Analyzer) Score(text string) SpeechScore {
	overall := a.sia.PolarityScores(text)

	var sentenceScores []float64
	for _, sent := range strings.Split(text, ".") {
		sent = strings.TrimSpace(sent)
		if len(sent) <= minFragmentLen {
			continue
		}
		scores := a.sia.PolarityScores(sent)
		sentenceScores = append(sentenceScores, scores["compound"])
	}

	return buildScore(overall, sentenceScores)
}

func buildScore(overall map[string]float64, sentenceScores []float64) SpeechScore {
	score := SpeechScore{
		OverallCompound: overall["compound"],
		OverallPos:      overall["pos"],
		OverallNeu:      overall["neu"],
		OverallNeg:      overall["neg"],
		NumSentences:    len(sentenceScores),
	}
	if len(sentenceScores) == 0 {
		return score
	}

	score.SentenceMean, _ = stats.Mean(sentenceScores)
	score.SentenceMedian, _ = stats.Median(sentenceScores)
	if len(sentenceScores) > 1 {
		score.SentenceStdDev, _ = stats.StandardDeviationSample(sentenceScores)
	}

	for _, s := range sentenceScores {
		switch {
		case s >= neutralBand:
			score.NumPositive++
		case s <= -neutralBand:
			score.NumNegative++
		default:
			score.NumNeutral++
		}
	}

	n := float64(len(sentenceScores))
	score.PctPositive = float64(score.NumPositive) / n * 100
	score.PctNeutral = float64(score.NumNeutral) / n * 100
	score.PctNegative = float64(score.NumNegative) / n * 100
	return score
}
