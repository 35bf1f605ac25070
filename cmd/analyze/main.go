// Command analyze runs the full corpus analysis in one shot: clean
// every transcript, score it with VADER, extract the rhetorical
// features, and write the report files. Intended for batch reruns over
// a finished corpus; the speechlab service covers incremental use.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"speechlab/corpus"
	"speechlab/internal/config"
	"speechlab/lexicon"
	"speechlab/ngrams"
	"speechlab/pronouns"
	"speechlab/readability"
	"speechlab/report"
	"speechlab/sentiment"
	"speechlab/textnorm"
)

func main() {
	cfg := config.Load()
	if err := run(cfg); err != nil {
		log.Fatalf("analyze: %v", err)
	}
}

func run(cfg config.Config) error {
	meta, err := corpus.LoadMetadata(cfg.MetadataFile)
	if err != nil {
		return err
	}
	if meta.Skipped > 0 {
		log.Printf("metadata: %d malformed rows skipped", meta.Skipped)
	}

	analyzer, err := sentiment.New()
	if err != nil {
		return err
	}
	antiElite, crisis, certainty, err := detectors(cfg)
	if err != nil {
		return err
	}

	var (
		rows         []report.Row
		features     []report.FeatureRow
		byCategory   = map[string][]string{}
		records      []corpus.SpeechRecord
		readFailures int
	)
	for _, rec := range meta.Records {
		raw, err := os.ReadFile(filepath.Join(cfg.CorpusDir, rec.Filename))
		if err != nil {
			log.Printf("skip %s: %v", rec.Filename, err)
			readFailures++
			continue
		}
		text := textnorm.Clean(string(raw))
		score := analyzer.Score(text)
		rec.SentimentScore = score.SentenceMean

		rows = append(rows, report.Row{Record: rec, Score: score})
		features = append(features, report.FeatureRow{
			Record:      rec,
			AntiElite:   antiElite.Analyze(text),
			Crisis:      crisis.Analyze(text),
			Certainty:   certainty.Analyze(text),
			Pronouns:    pronouns.Analyze(text),
			Readability: readability.Analyze(text),
		})
		byCategory[rec.Category] = append(byCategory[rec.Category], text)
		records = append(records, rec)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no transcripts analyzed (%d unreadable)", readFailures)
	}

	fmt.Print(report.Summary(records))

	dir, err := report.Write(cfg.OutputDir, rows)
	if err != nil {
		return err
	}
	if err := report.WriteFeatures(dir, features); err != nil {
		return err
	}
	extractor := ngrams.NewExtractor()
	if err := report.WriteDistinctivePhrases(dir,
		byCategory[corpus.CategoryPopulist], byCategory[corpus.CategoryMainstream], extractor); err != nil {
		return err
	}

	fmt.Printf("\nanalyzed %d speeches (%d unreadable, %d metadata rows skipped)\n",
		len(rows), readFailures, meta.Skipped)
	fmt.Printf("results written to %s\n", dir)
	return nil
}

func detectors(cfg config.Config) (*lexicon.AntiEliteDetector, *lexicon.CrisisDetector, *lexicon.CertaintyDetector, error) {
	if cfg.LexiconConfig == "" {
		return lexicon.NewAntiEliteDetector(), lexicon.NewCrisisDetector(), lexicon.NewCertaintyDetector(), nil
	}
	lexCfg, err := lexicon.LoadConfig(cfg.LexiconConfig)
	if err != nil {
		return nil, nil, nil, err
	}
	a, c, ct := lexCfg.Detectors()
	return a, c, ct, nil
}
