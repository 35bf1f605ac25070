package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"speechlab/aggregate"
	"speechlab/internal/config"
	"speechlab/internal/events"
	"speechlab/internal/jobs"
	"speechlab/internal/metrics"
	"speechlab/internal/store"
)

// Router builds HTTP handlers for /api and /ops.
type Router struct {
	cfg      config.Config
	store    *store.Store
	runner   *jobs.Runner
	bus      *events.Bus
	backfill func(context.Context) error
}

// NewRouter wires the handlers. backfill re-enqueues ingest for every
// transcript already on disk; bus feeds the status endpoint's recent
// events. Both may be nil.
func NewRouter(cfg config.Config, st *store.Store, runner *jobs.Runner, bus *events.Bus, backfill func(context.Context) error) *Router {
	return &Router{cfg: cfg, store: st, runner: runner, bus: bus, backfill: backfill}
}

func (r *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/ops/status", r.status)
	mux.HandleFunc("/ops/metrics", r.metrics)
	mux.HandleFunc("/ops/jobs", r.jobs)
	mux.HandleFunc("/ops/jobs/enqueue", r.enqueue)
	mux.HandleFunc("/ops/jobs/", r.jobDetail)
	mux.HandleFunc("/ops/health", r.health)
	mux.HandleFunc("/ops/backfill", r.runBackfill)
	mux.HandleFunc("/api/speeches", r.speeches)
	mux.HandleFunc("/api/summary", r.summary)
}

func (r *Router) status(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	speeches, _ := r.store.ListSpeeches(ctx, 5)
	jobs, _ := r.store.ListJobs(ctx, 10)
	var recent []any
	if r.bus != nil {
		recent = r.bus.Recent()
	}
	respondJSON(w, map[string]any{
		"speeches":      speeches,
		"jobs":          jobs,
		"workers":       r.cfg.WorkerCount,
		"recent_events": recent,
	})
}

// runBackfill re-scans the corpus directory and enqueues ingest for
// every transcript found. Idempotency keys keep already-processed
// speeches from re-running.
func (r *Router) runBackfill(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.backfill == nil {
		http.Error(w, "backfill unavailable", http.StatusServiceUnavailable)
		return
	}
	if err := r.backfill(req.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, map[string]any{"status": "queued"})
}

func (r *Router) metrics(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, metrics.Snapshot())
}

func (r *Router) jobs(w http.ResponseWriter, req *http.Request) {
	list, err := r.store.ListJobs(req.Context(), 50)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, list)
}

func (r *Router) speeches(w http.ResponseWriter, req *http.Request) {
	list, err := r.store.ListSpeeches(req.Context(), 100)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, list)
}

// summary serves the grouped descriptive statistics over scored
// speeches. group_by selects the dimension, defaulting to category.
func (r *Router) summary(w http.ResponseWriter, req *http.Request) {
	var key aggregate.KeyFunc
	groupBy := req.URL.Query().Get("group_by")
	switch groupBy {
	case "", "category":
		groupBy = "category"
		key = aggregate.ByCategory
	case "country":
		key = aggregate.ByCountry
	case "speaker":
		key = aggregate.BySpeaker
	case "year":
		key = aggregate.ByYear
	default:
		http.Error(w, "unknown group_by "+groupBy, http.StatusBadRequest)
		return
	}

	result, err := r.store.ScoredRecords(req.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	summaries := aggregate.Summarize(result.Records, key)
	respondJSON(w, map[string]any{
		"group_by": groupBy,
		"groups":   summaries,
		"order":    aggregate.KeysByMeanDesc(summaries),
		"skipped":  result.Skipped,
	})
}

func (r *Router) enqueue(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Filename string      `json:"filename"`
		Stage    jobs.Stage  `json:"stage"`
		Params   interface{} `json:"params"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, ok := body.Params.(map[string]any)
	if !ok {
		p = map[string]any{}
	}
	job, err := r.runner.Enqueue(req.Context(), body.Filename, body.Stage, p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, job)
}

func (r *Router) jobDetail(w http.ResponseWriter, req *http.Request) {
	// /ops/jobs/{id}/logs or detail
	path := req.URL.Path
	if strings.HasSuffix(path, "/logs") {
		idStr := strings.TrimSuffix(strings.TrimPrefix(path, "/ops/jobs/"), "/logs")
		id, _ := strconv.ParseInt(idStr, 10, 64)
		// Persisted logs survive restarts; the in-memory buffer covers
		// lines not yet visible in the store.
		logs, err := r.store.JobLogs(req.Context(), id)
		if err != nil || len(logs) == 0 {
			logs = r.runner.Logs(id)
		}
		respondJSON(w, logs)
		return
	}
	idStr := strings.TrimPrefix(path, "/ops/jobs/")
	id, _ := strconv.ParseInt(idStr, 10, 64)
	jobs, err := r.store.ListJobs(req.Context(), 200)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	for _, j := range jobs {
		if j.ID == id {
			respondJSON(w, j)
			return
		}
	}
	http.NotFound(w, req)
}

func (r *Router) health(w http.ResponseWriter, req *http.Request) {
	if err := r.store.Health(req.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write json: %v", err)
	}
}
