package aggregate

import (
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"

	"speechlab/corpus"
)

// Summary holds descriptive statistics for one group of speeches.
// StdDev is the sample standard deviation (ddof=1); a single-record
// group reports 0.
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// KeyFunc extracts the grouping key for a record.
type KeyFunc func(corpus.SpeechRecord) string

// Grouping keys used by the study's summary tables.
func ByCategory(r corpus.SpeechRecord) string { return r.Category }
func ByCountry(r corpus.SpeechRecord) string  { return r.Country }
func BySpeaker(r corpus.SpeechRecord) string  { return r.Speaker }
func ByYear(r corpus.SpeechRecord) string     { return strconv.Itoa(r.Year) }

// Summarize groups the records by key and computes descriptive statistics
// over each group's sentiment scores. Groups with no records are simply
// absent; an empty input yields an empty map. The computation is a pure
// function of its input.
func Summarize(records []corpus.SpeechRecord, key KeyFunc) map[string]Summary {
	groups := make(map[string][]float64)
	for _, r := range records {
		k := key(r)
		groups[k] = append(groups[k], r.SentimentScore)
	}

	out := make(map[string]Summary, len(groups))
	for k, scores := range groups {
		out[k] = summarize(scores)
	}
	return out
}

func summarize(scores []float64) Summary {
	mean, _ := stats.Mean(scores)
	median, _ := stats.Median(scores)
	min, _ := stats.Min(scores)
	max, _ := stats.Max(scores)

	sd := 0.0
	if len(scores) > 1 {
		sd, _ = stats.StandardDeviationSample(scores)
	}

	return Summary{
		N:      len(scores),
		Mean:   mean,
		Median: median,
		StdDev: sd,
		Min:    min,
		Max:    max,
	}
}

// KeysByMeanDesc orders group keys by mean sentiment, most positive
// first, breaking ties by key. Used for the speaker-style tables.
func KeysByMeanDesc(summaries map[string]Summary) []string {
	keys := make([]string, 0, len(summaries))
	for k := range summaries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := summaries[keys[i]], summaries[keys[j]]
		if a.Mean != b.Mean {
			return a.Mean > b.Mean
		}
		return keys[i] < keys[j]
	})
	return keys
}

// KeysAscending orders group keys lexicographically, which is
// chronological for the four-digit year tables.
func KeysAscending(summaries map[string]Summary) []string {
	keys := make([]string, 0, len(summaries))
	for k := range summaries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
