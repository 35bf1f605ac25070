package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"speechlab/corpus"
	"speechlab/lexicon"
	"speechlab/ngrams"
	"speechlab/pronouns"
	"speechlab/readability"
)

// FeatureRow is the full rhetorical feature breakdown for one speech,
// written alongside the sentiment results in a batch run.
type FeatureRow struct {
	Record      corpus.SpeechRecord
	AntiElite   lexicon.AntiEliteResult
	Crisis      lexicon.CrisisResult
	Certainty   lexicon.CertaintyResult
	Pronouns    pronouns.Result
	Readability readability.Result
}

// WriteFeatures writes the populism feature CSV into dir.
func WriteFeatures(dir string, rows []FeatureRow) error {
	f, err := os.Create(filepath.Join(dir, "populism_features.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"filename", "speaker", "category", "country", "year",
		"anti_elite_count", "anti_elite_score", "net_populist_score", "anti_elite_density",
		"crisis_count", "crisis_score", "crisis_density", "crisis_intensity",
		"certainty_count", "net_certainty_score", "certainty_density", "hedging_density", "certainty_level",
		"we_count", "they_count", "we_density", "they_density", "we_they_ratio", "framing_score",
		"flesch_reading_ease", "flesch_interpretation", "flesch_kincaid_grade", "gunning_fog", "complexity_level",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		level, _ := row.Readability.ComplexityLevel()
		record := []string{
			row.Record.Filename,
			row.Record.Speaker,
			row.Record.Category,
			row.Record.Country,
			strconv.Itoa(row.Record.Year),
			strconv.Itoa(row.AntiElite.TotalCount),
			formatFloat(row.AntiElite.TotalScore),
			formatFloat(row.AntiElite.NetPopulistScore),
			formatFloat(row.AntiElite.Density),
			strconv.Itoa(row.Crisis.TotalCount),
			formatFloat(row.Crisis.TotalScore),
			formatFloat(row.Crisis.Density),
			formatFloat(row.Crisis.Intensity()),
			strconv.Itoa(row.Certainty.TotalCertaintyCount),
			formatFloat(row.Certainty.NetCertaintyScore),
			formatFloat(row.Certainty.CertaintyDensity),
			formatFloat(row.Certainty.HedgingDensity),
			formatFloat(row.Certainty.Level()),
			strconv.Itoa(row.Pronouns.WeCount),
			strconv.Itoa(row.Pronouns.TheyCount),
			formatFloat(row.Pronouns.WeDensity),
			formatFloat(row.Pronouns.TheyDensity),
			formatFloat(row.Pronouns.WeTheyRatio),
			strconv.Itoa(row.Pronouns.FramingScore()),
			formatFloat(row.Readability.FleschReadingEase),
			readability.InterpretFlesch(row.Readability.FleschReadingEase),
			formatFloat(row.Readability.FleschKincaidGrade),
			formatFloat(row.Readability.GunningFog),
			strconv.Itoa(level),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteDistinctivePhrases writes the n-gram comparison file: the top
// phrases pooled across each category, then the phrases exclusive to
// each category.
func WriteDistinctivePhrases(dir string, populist, mainstream []string, e *ngrams.Extractor) error {
	var out string
	out += "N-GRAM COMPARISON BY CATEGORY\n" + divider + "\n"
	for _, n := range []int{2, 3} {
		out += fmt.Sprintf("\nTOP %d-GRAMS IN POPULIST SPEECHES:\n", n)
		for _, g := range e.TopAcross(populist, n, 15) {
			out += fmt.Sprintf("  %-40s %d\n", g.Text, g.Count)
		}
		out += fmt.Sprintf("\nTOP %d-GRAMS IN MAINSTREAM SPEECHES:\n", n)
		for _, g := range e.TopAcross(mainstream, n, 15) {
			out += fmt.Sprintf("  %-40s %d\n", g.Text, g.Count)
		}
	}
	for _, n := range []int{2, 3} {
		out += fmt.Sprintf("\n%d-GRAMS ONLY IN POPULIST SPEECHES:\n", n)
		for _, g := range e.Distinctive(populist, mainstream, n, 20) {
			out += fmt.Sprintf("  %-40s %d\n", g.Text, g.Count)
		}
		out += fmt.Sprintf("\n%d-GRAMS ONLY IN MAINSTREAM SPEECHES:\n", n)
		for _, g := range e.Distinctive(mainstream, populist, n, 20) {
			out += fmt.Sprintf("  %-40s %d\n", g.Text, g.Count)
		}
	}
	return os.WriteFile(filepath.Join(dir, "distinctive_phrases.txt"), []byte(out), 0o644)
}
