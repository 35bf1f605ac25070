package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"speechlab/corpus"
	"speechlab/internal/config"
	"speechlab/internal/jobs"
	"speechlab/internal/metrics"
	"speechlab/internal/store"
	"speechlab/report"
	"speechlab/sentiment"
	"speechlab/textnorm"
)

// Scorer computes the VADER breakdown for one cleaned transcript.
// Satisfied by sentiment.Analyzer; tests substitute a stub.
type Scorer interface {
	Score(text string) sentiment.SpeechScore
}

// Deps carries the corpus metadata index and the sentiment analyzer
// shared by all stage functions.
type Deps struct {
	Meta   map[string]corpus.SpeechRecord
	Scorer Scorer
}

// MetaIndex builds the filename lookup the ingest stage resolves
// transcripts against. Rows rejected during metadata validation are
// counted as skipped.
func MetaIndex(result *corpus.LoadResult) map[string]corpus.SpeechRecord {
	idx := make(map[string]corpus.SpeechRecord, len(result.Records))
	for _, rec := range result.Records {
		idx[rec.Filename] = rec
	}
	metrics.AddRecordsSkipped(result.Skipped)
	return idx
}

// BuildRegistry wires the stage functions. Each stage chains its
// successor through the execution context.
func BuildRegistry(cfg config.Config, st *store.Store, deps Deps) jobs.Registry {
	return jobs.Registry{
		jobs.StageIngest:    ingestStage(cfg, st, deps),
		jobs.StageClean:     cleanStage(cfg, st),
		jobs.StageScore:     scoreStage(cfg, st, deps),
		jobs.StageAggregate: aggregateStage(cfg, st),
	}
}

// ingestStage resolves a transcript against the metadata index and
// registers it. Files without metadata are rejected here so nothing
// downstream sees an unvalidated record.
func ingestStage(cfg config.Config, st *store.Store, deps Deps) jobs.StageFunc {
	return func(ctx context.Context, exec jobs.ExecutionContext, filename string, params map[string]any) error {
		rec, ok := deps.Meta[filename]
		if !ok {
			metrics.AddRecordsSkipped(1)
			return fmt.Errorf("no metadata for %s", filename)
		}
		src := filepath.Join(cfg.CorpusDir, filename)
		if _, err := os.Stat(src); err != nil {
			return fmt.Errorf("transcript missing: %w", err)
		}
		if err := st.UpsertSpeech(ctx, rec, string(jobs.StageIngest), jobs.StatusSucceeded, nil, config.Now()); err != nil {
			return err
		}
		exec.Logf(paramsInt64(params, "job_id"), fmt.Sprintf("ingested %s (%s, %d)", filename, rec.Speaker, rec.Year))
		_, err := exec.Enqueue(ctx, filename, jobs.StageClean, map[string]any{})
		return err
	}
}

// cleanStage normalizes the raw transcript and writes the cleaned copy
// into the work directory.
func cleanStage(cfg config.Config, st *store.Store) jobs.StageFunc {
	return func(ctx context.Context, exec jobs.ExecutionContext, filename string, params map[string]any) error {
		raw, err := os.ReadFile(filepath.Join(cfg.CorpusDir, filename))
		if err != nil {
			return err
		}
		cleaned := textnorm.Clean(string(raw))
		if cleaned == "" {
			return fmt.Errorf("transcript %s empty after cleaning", filename)
		}
		if err := os.MkdirAll(cfg.WorkDir, 0o755); err != nil {
			return err
		}
		dst := filepath.Join(cfg.WorkDir, corpus.CleanedFilename(filename))
		if err := os.WriteFile(dst, []byte(cleaned), 0o644); err != nil {
			return err
		}
		if err := st.UpdateSpeechStage(ctx, filename, string(jobs.StageClean), jobs.StatusSucceeded, nil, config.Now()); err != nil {
			return err
		}
		exec.Logf(paramsInt64(params, "job_id"), fmt.Sprintf("cleaned %s -> %s", filename, dst))
		_, err = exec.Enqueue(ctx, filename, jobs.StageScore, map[string]any{})
		return err
	}
}

// scoreStage runs the sentiment analyzer over the cleaned transcript
// and persists the full breakdown.
func scoreStage(cfg config.Config, st *store.Store, deps Deps) jobs.StageFunc {
	return func(ctx context.Context, exec jobs.ExecutionContext, filename string, params map[string]any) error {
		text, err := os.ReadFile(filepath.Join(cfg.WorkDir, corpus.CleanedFilename(filename)))
		if err != nil {
			return err
		}
		score := deps.Scorer.Score(string(text))
		if err := st.SaveScore(ctx, filename, score, config.Now()); err != nil {
			return err
		}
		metrics.IncSpeechesScored()
		exec.Logf(paramsInt64(params, "job_id"),
			fmt.Sprintf("scored %s sentence_mean=%+.4f sentences=%d", filename, score.SentenceMean, score.NumSentences))
		_, err = exec.Enqueue(ctx, filename, jobs.StageAggregate, map[string]any{"trigger": filename})
		return err
	}
}

// aggregateStage recomputes the grouped statistics over every scored
// speech and writes a fresh report run.
func aggregateStage(cfg config.Config, st *store.Store) jobs.StageFunc {
	return func(ctx context.Context, exec jobs.ExecutionContext, filename string, params map[string]any) error {
		rows, skipped, err := reportRows(ctx, st)
		if err != nil {
			return err
		}
		metrics.AddRecordsSkipped(skipped)
		if len(rows) == 0 {
			exec.Logf(paramsInt64(params, "job_id"), "no scored speeches yet")
			return nil
		}
		dir, err := report.Write(cfg.OutputDir, rows)
		if err != nil {
			return err
		}
		exec.Logf(paramsInt64(params, "job_id"), fmt.Sprintf("report written to %s (%d speeches, %d skipped)", dir, len(rows), skipped))
		return nil
	}
}

// reportRows loads every scored speech with its persisted breakdown.
// Speeches whose stored row no longer validates are excluded and
// counted, never fatal.
func reportRows(ctx context.Context, st *store.Store) ([]report.Row, int, error) {
	speeches, err := st.ListSpeeches(ctx, 100000)
	if err != nil {
		return nil, 0, err
	}
	var rows []report.Row
	skipped := 0
	for _, sp := range speeches {
		if sp.Status != "scored" || sp.ScoreJSON == nil {
			continue
		}
		if err := sp.Record.Validate(); err != nil {
			skipped++
			continue
		}
		var score sentiment.SpeechScore
		if err := json.Unmarshal([]byte(*sp.ScoreJSON), &score); err != nil {
			skipped++
			continue
		}
		rows = append(rows, report.Row{Record: sp.Record, Score: score})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Record.Filename < rows[j].Record.Filename })
	return rows, skipped, nil
}

func paramsInt64(m map[string]any, key string) int64 {
	if v, ok := m[key]; ok {
		switch t := v.(type) {
		case float64:
			return int64(t)
		case int64:
			return t
		case int:
			return int64(t)
		}
	}
	return 0
}
