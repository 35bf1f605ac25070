// Package report renders grouped sentiment statistics as the study's
// summary tables and writes the per-speech results CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"speechlab/aggregate"
	"speechlab/corpus"
	"speechlab/sentiment"
)

const divider = "--------------------------------------------------------------------------------"

// Row pairs a speech record with its full VADER score breakdown for the
// detailed results CSV.
type Row struct {
	Record corpus.SpeechRecord
	Score  sentiment.SpeechScore
}

// Summary renders all four grouped tables: category, country, speaker
// (sorted by mean descending), and year (chronological).
func Summary(records []corpus.SpeechRecord) string {
	var b strings.Builder
	b.WriteString("VADER SENTIMENT ANALYSIS - SUMMARY STATISTICS\n")
	b.WriteString(divider + "\n\n")

	b.WriteString("1. BY POLITICAL CATEGORY\n")
	b.WriteString(CategoryTable(records))
	b.WriteString("\n2. BY COUNTRY\n")
	b.WriteString(CountryTable(records))
	b.WriteString("\n3. BY SPEAKER\n")
	b.WriteString(SpeakerTable(records))
	b.WriteString("\n4. TRENDS OVER TIME\n")
	b.WriteString(YearTable(records))
	return b.String()
}

// CategoryTable renders full descriptive statistics per category.
func CategoryTable(records []corpus.SpeechRecord) string {
	summaries := aggregate.Summarize(records, aggregate.ByCategory)
	var b strings.Builder
	for _, key := range aggregate.KeysAscending(summaries) {
		s := summaries[key]
		fmt.Fprintf(&b, "\n%s:\n", strings.ToUpper(key))
		fmt.Fprintf(&b, "  N = %d\n", s.N)
		fmt.Fprintf(&b, "  Mean:    %+.3f\n", s.Mean)
		fmt.Fprintf(&b, "  Median:  %+.3f\n", s.Median)
		if s.N > 1 {
			fmt.Fprintf(&b, "  Std Dev: %.3f\n", s.StdDev)
		}
		fmt.Fprintf(&b, "  Range:   %+.3f to %+.3f\n", s.Min, s.Max)
	}
	return b.String()
}

// CountryTable renders one line per country.
func CountryTable(records []corpus.SpeechRecord) string {
	summaries := aggregate.Summarize(records, aggregate.ByCountry)
	var b strings.Builder
	for _, key := range aggregate.KeysAscending(summaries) {
		s := summaries[key]
		fmt.Fprintf(&b, "%-4s: Mean = %+.3f, N = %d\n", key, s.Mean, s.N)
	}
	return b.String()
}

// SpeakerTable renders speakers sorted by mean sentiment, most positive
// first.
func SpeakerTable(records []corpus.SpeechRecord) string {
	summaries := aggregate.Summarize(records, aggregate.BySpeaker)
	var b strings.Builder
	for _, key := range aggregate.KeysByMeanDesc(summaries) {
		s := summaries[key]
		fmt.Fprintf(&b, "%-20s: Mean = %+.3f, N = %d\n", key, s.Mean, s.N)
	}
	return b.String()
}

// YearTable renders one line per year in chronological order.
func YearTable(records []corpus.SpeechRecord) string {
	summaries := aggregate.Summarize(records, aggregate.ByYear)
	var b strings.Builder
	for _, key := range aggregate.KeysAscending(summaries) {
		s := summaries[key]
		fmt.Fprintf(&b, "%s: Mean = %+.3f, N = %d\n", key, s.Mean, s.N)
	}
	return b.String()
}

// Write creates a fresh run directory under outputsRoot and writes the
// detailed results CSV plus the summary statistics file into it. The
// run directory name carries a timestamp and a short unique suffix so
// repeated runs never collide.
func Write(outputsRoot string, rows []Row) (string, error) {
	runID := fmt.Sprintf("run_%s_%s", time.Now().Format("20060102-150405"), uuid.NewString()[:8])
	dir := filepath.Join(outputsRoot, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	if err := writeResultsCSV(filepath.Join(dir, "vader_sentiment_results.csv"), rows); err != nil {
		return "", err
	}

	records := make([]corpus.SpeechRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record)
	}
	if err := os.WriteFile(filepath.Join(dir, "vader_summary_statistics.txt"), []byte(Summary(records)), 0o644); err != nil {
		return "", err
	}
	return dir, nil
}

func writeResultsCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"filename", "speaker", "party", "country", "year", "date", "category",
		"overall_compound", "overall_pos", "overall_neu", "overall_neg",
		"sentence_mean", "sentence_median", "sentence_stdev", "num_sentences",
		"num_positive", "num_neutral", "num_negative",
		"pct_positive", "pct_neutral", "pct_negative",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Record.Filename,
			row.Record.Speaker,
			row.Record.Party,
			row.Record.Country,
			strconv.Itoa(row.Record.Year),
			row.Record.Date,
			row.Record.Category,
			formatFloat(row.Score.OverallCompound),
			formatFloat(row.Score.OverallPos),
			formatFloat(row.Score.OverallNeu),
			formatFloat(row.Score.OverallNeg),
			formatFloat(row.Score.SentenceMean),
			formatFloat(row.Score.SentenceMedian),
			formatFloat(row.Score.SentenceStdDev),
			strconv.Itoa(row.Score.NumSentences),
			strconv.Itoa(row.Score.NumPositive),
			strconv.Itoa(row.Score.NumNeutral),
			strconv.Itoa(row.Score.NumNegative),
			formatFloat(row.Score.PctPositive),
			formatFloat(row.Score.PctNeutral),
			formatFloat(row.Score.PctNegative),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
