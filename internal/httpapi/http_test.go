package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"speechlab/corpus"
	"speechlab/internal/config"
	"speechlab/internal/events"
	"speechlab/internal/jobs"
	"speechlab/internal/pipeline"
	"speechlab/internal/store"
	"speechlab/sentiment"
)

type stubScorer struct{}

func (stubScorer) Score(string) sentiment.SpeechScore { return sentiment.SpeechScore{} }

type testEnv struct {
	mux           *http.ServeMux
	store         *store.Store
	runner        *jobs.Runner
	bus           *events.Bus
	backfillCalls int
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.Load()
	cfg.DBPath = filepath.Join(t.TempDir(), "test.db")
	cfg.QueueSize = 8
	cfg.WorkerCount = 0
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	env := &testEnv{store: st, bus: events.NewBus()}
	reg := pipeline.BuildRegistry(cfg, st, pipeline.Deps{Scorer: stubScorer{}})
	env.runner = jobs.NewRunner(cfg, st, reg, env.bus)
	router := NewRouter(cfg, st, env.runner, env.bus, func(context.Context) error {
		env.backfillCalls++
		return nil
	})
	env.mux = http.NewServeMux()
	router.Register(env.mux)
	return env
}

func TestOpsEnqueueEndpoint(t *testing.T) {
	mux := setupTest(t).mux
	body := bytes.NewBufferString(`{"filename":"farage_2016.txt","stage":"INGEST","params":{}}`)
	req := httptest.NewRequest(http.MethodPost, "/ops/jobs/enqueue", body)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	mux := setupTest(t).mux
	req := httptest.NewRequest(http.MethodGet, "/ops/health", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	mux := setupTest(t).mux
	req := httptest.NewRequest(http.MethodGet, "/ops/metrics", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rr.Code)
	}
	var snapshot map[string]int64
	if err := json.Unmarshal(rr.Body.Bytes(), &snapshot); err != nil {
		t.Fatal(err)
	}
	if _, ok := snapshot["speeches_scored"]; !ok {
		t.Fatalf("missing counter in %v", snapshot)
	}
}

func seedScored(t *testing.T, st *store.Store, filename, category string, score float64) {
	t.Helper()
	ctx := t.Context()
	rec := corpus.SpeechRecord{
		Filename: filename, Speaker: "Speaker " + filename, Party: "Party",
		Category: category, Country: corpus.CountryUK, Year: 2016, Date: "01/01/2016",
	}
	if err := st.UpsertSpeech(ctx, rec, "INGEST", "succeeded", nil, config.Now()); err != nil {
		t.Fatal(err)
	}
	if err := st.SaveScore(ctx, filename, sentiment.SpeechScore{SentenceMean: score, NumSentences: 10}, config.Now()); err != nil {
		t.Fatal(err)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	env := setupTest(t)
	mux, st := env.mux, env.store
	seedScored(t, st, "a.txt", corpus.CategoryMainstream, 0.2)
	seedScored(t, st, "b.txt", corpus.CategoryPopulist, 0.1)

	req := httptest.NewRequest(http.MethodGet, "/api/summary?group_by=category", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		GroupBy string                     `json:"group_by"`
		Groups  map[string]json.RawMessage `json:"groups"`
		Order   []string                   `json:"order"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %v", resp.Groups)
	}
	if len(resp.Order) != 2 || resp.Order[0] != corpus.CategoryMainstream {
		t.Fatalf("mainstream (mean 0.2) should rank first, got %v", resp.Order)
	}
}

func TestSummaryEndpointRejectsUnknownGroup(t *testing.T) {
	mux := setupTest(t).mux
	req := httptest.NewRequest(http.MethodGet, "/api/summary?group_by=party_animal", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestSpeechesEndpoint(t *testing.T) {
	env := setupTest(t)
	mux, st := env.mux, env.store
	seedScored(t, st, "a.txt", corpus.CategoryMainstream, 0.2)

	req := httptest.NewRequest(http.MethodGet, "/api/speeches", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rr.Code)
	}
}

func TestBackfillEndpoint(t *testing.T) {
	env := setupTest(t)
	req := httptest.NewRequest(http.MethodPost, "/ops/backfill", nil)
	rr := httptest.NewRecorder()
	env.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rr.Code, rr.Body.String())
	}
	if env.backfillCalls != 1 {
		t.Fatalf("backfill ran %d times, want 1", env.backfillCalls)
	}
}

func TestBackfillEndpointRejectsGet(t *testing.T) {
	env := setupTest(t)
	req := httptest.NewRequest(http.MethodGet, "/ops/backfill", nil)
	rr := httptest.NewRecorder()
	env.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
	if env.backfillCalls != 0 {
		t.Fatal("backfill must not run on GET")
	}
}

func TestStatusIncludesRecentEvents(t *testing.T) {
	env := setupTest(t)
	if _, err := env.runner.Enqueue(t.Context(), "farage_2016.txt", jobs.StageIngest, map[string]any{}); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/ops/status", nil)
	rr := httptest.NewRecorder()
	env.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rr.Code)
	}
	var resp struct {
		RecentEvents []struct {
			Filename string `json:"filename"`
			Status   string `json:"status"`
		} `json:"recent_events"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.RecentEvents) == 0 {
		t.Fatalf("expected queued event in status, got %s", rr.Body.String())
	}
	if resp.RecentEvents[0].Filename != "farage_2016.txt" || resp.RecentEvents[0].Status != "queued" {
		t.Fatalf("unexpected event %+v", resp.RecentEvents[0])
	}
}

func TestJobLogsServedFromStore(t *testing.T) {
	env := setupTest(t)
	ctx := t.Context()
	job, err := env.store.RecordJob(ctx, &store.Job{
		Filename: "a.txt", Stage: "INGEST", Status: "queued",
		IdempotencyKey: "logs-key", CreatedAt: config.Now(), UpdatedAt: config.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := env.store.AppendJobLog(ctx, job.ID, "ingested a.txt", config.Now()); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/ops/jobs/%d/logs", job.ID), nil)
	rr := httptest.NewRecorder()
	env.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rr.Code)
	}
	var lines []string
	if err := json.Unmarshal(rr.Body.Bytes(), &lines); err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0] != "ingested a.txt" {
		t.Fatalf("persisted log not served: %v", lines)
	}
}
