package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"speechlab/corpus"
	"speechlab/lexicon"
	"speechlab/ngrams"
	"speechlab/pronouns"
	"speechlab/readability"
)

func TestWriteFeatures(t *testing.T) {
	dir := t.TempDir()
	text := `The corrupt establishment has betrayed ordinary working people.
We must take back control. They have failed us completely.`
	row := FeatureRow{
		Record: corpus.SpeechRecord{
			Filename: "a.txt", Speaker: "Speaker A", Category: corpus.CategoryPopulist,
			Country: corpus.CountryUK, Year: 2016,
		},
		AntiElite:   lexicon.NewAntiEliteDetector().Analyze(text),
		Crisis:      lexicon.NewCrisisDetector().Analyze(text),
		Certainty:   lexicon.NewCertaintyDetector().Analyze(text),
		Pronouns:    pronouns.Analyze(text),
		Readability: readability.Analyze(text),
	}

	if err := WriteFeatures(dir, []FeatureRow{row}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "populism_features.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header plus one row", len(lines))
	}
	if !strings.Contains(lines[0], "flesch_interpretation") {
		t.Fatalf("header missing interpretation column: %s", lines[0])
	}
	// Every Flesch score maps to one of the named bands.
	if !strings.Contains(lines[1], "Easy") && !strings.Contains(lines[1], "Standard") && !strings.Contains(lines[1], "Difficult") {
		t.Fatalf("row missing readability interpretation: %s", lines[1])
	}
}

func TestWriteDistinctivePhrases(t *testing.T) {
	dir := t.TempDir()
	populist := []string{strings.Repeat("drain the swamp. ", 5)}
	mainstream := []string{strings.Repeat("economic growth and stability. ", 5)}

	if err := WriteDistinctivePhrases(dir, populist, mainstream, &ngrams.Extractor{MinFrequency: 2}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "distinctive_phrases.txt"))
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		"TOP 2-GRAMS IN POPULIST SPEECHES:",
		"TOP 2-GRAMS IN MAINSTREAM SPEECHES:",
		"2-GRAMS ONLY IN POPULIST SPEECHES:",
		"economic growth",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("comparison file missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "swamp") {
		t.Fatalf("populist phrase missing:\n%s", out)
	}
}
