package watch

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"speechlab/internal/config"
	"speechlab/internal/jobs"
)

// Watcher monitors CORPUS_DIR for new transcripts and enqueues ingest
// jobs as they land.
type Watcher struct {
	cfg    config.Config
	runner *jobs.Runner
}

func New(cfg config.Config, runner *jobs.Runner) *Watcher {
	return &Watcher{cfg: cfg, runner: runner}
}

func (w *Watcher) Start(ctx context.Context) error {
	if !w.cfg.EnableWatcher {
		log.Println("watcher disabled")
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt := <-watcher.Events:
				if evt.Op&(fsnotify.Create|fsnotify.Rename) != 0 {
					if w.isTranscript(evt.Name) {
						filename := filepath.Base(evt.Name)
						_, _ = w.runner.Enqueue(ctx, filename, jobs.StageIngest, map[string]any{})
					}
				}
			case err := <-watcher.Errors:
				log.Printf("watcher error: %v", err)
			}
		}
	}()
	return watcher.Add(w.cfg.CorpusDir)
}

// isTranscript accepts raw .txt transcripts, skipping already-cleaned
// copies so a shared directory does not loop.
func (w *Watcher) isTranscript(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	if !strings.HasSuffix(name, ".txt") {
		return false
	}
	return !strings.HasSuffix(name, "_cleaned.txt")
}

// Backfill enqueues ingest for transcripts already present on disk.
func (w *Watcher) Backfill(ctx context.Context) error {
	entries, err := filepath.Glob(filepath.Join(w.cfg.CorpusDir, "*"))
	if err != nil {
		return err
	}
	for _, e := range entries {
		if w.isTranscript(e) {
			_, _ = w.runner.Enqueue(ctx, filepath.Base(e), jobs.StageIngest, map[string]any{})
		}
	}
	return nil
}
