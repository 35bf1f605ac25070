package app

import (
	"context"
	"log"
	"net/http"

	"speechlab/corpus"
	"speechlab/internal/config"
	"speechlab/internal/events"
	"speechlab/internal/httpapi"
	"speechlab/internal/jobs"
	"speechlab/internal/pipeline"
	"speechlab/internal/store"
	"speechlab/internal/watch"
	"speechlab/sentiment"
)

// App wires the data plane components together.
type App struct {
	cfg     config.Config
	store   *store.Store
	bus     *events.Bus
	runner  *jobs.Runner
	watcher *watch.Watcher
	mux     *http.ServeMux
}

func New(cfg config.Config) (*App, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	meta, err := corpus.LoadMetadata(cfg.MetadataFile)
	if err != nil {
		return nil, err
	}
	if meta.Skipped > 0 {
		log.Printf("metadata: %d malformed rows skipped", meta.Skipped)
	}
	analyzer, err := sentiment.New()
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()
	deps := pipeline.Deps{Meta: pipeline.MetaIndex(meta), Scorer: analyzer}
	registry := pipeline.BuildRegistry(cfg, st, deps)
	runner := jobs.NewRunner(cfg, st, registry, bus)
	watcher := watch.New(cfg, runner)
	mux := http.NewServeMux()
	router := httpapi.NewRouter(cfg, st, runner, bus, watcher.Backfill)
	router.Register(mux)
	return &App{cfg: cfg, store: st, bus: bus, runner: runner, watcher: watcher, mux: mux}, nil
}

// Run starts workers, watcher, and HTTP server.
func (a *App) Run(ctx context.Context) error {
	a.runner.Start(ctx)
	if err := a.watcher.Start(ctx); err != nil {
		return err
	}
	if err := a.watcher.Backfill(ctx); err != nil {
		log.Printf("backfill: %v", err)
	}
	srv := &http.Server{Addr: ":" + a.cfg.HTTPPort, Handler: a.mux}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	log.Printf("http listening on %s", a.cfg.HTTPPort)
	return srv.ListenAndServe()
}

// EnqueueStage exposes the pipeline for tests and the control plane.
func (a *App) EnqueueStage(ctx context.Context, filename string, stage jobs.Stage, params map[string]any) (*store.Job, error) {
	return a.runner.Enqueue(ctx, filename, stage, params)
}

func (a *App) Runner() *jobs.Runner { return a.runner }
func (a *App) Store() *store.Store  { return a.store }
func (a *App) Bus() *events.Bus     { return a.bus }
func (a *App) Mux() *http.ServeMux  { return a.mux }
