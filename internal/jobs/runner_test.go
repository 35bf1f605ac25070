package jobs

import (
	"context"
	"path/filepath"
	"testing"

	"speechlab/internal/config"
	"speechlab/internal/store"
)

func TestIdempotentEnqueue(t *testing.T) {
	cfg := config.Load()
	cfg.DBPath = filepath.Join(t.TempDir(), "test.db")
	cfg.QueueSize = 8
	cfg.WorkerCount = 0
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(cfg, st, Registry{}, nil)
	ctx := context.Background()
	j1, err := runner.Enqueue(ctx, "farage_2016.txt", StageIngest, map[string]any{"foo": "bar"})
	if err != nil {
		t.Fatalf("enqueue1: %v", err)
	}
	j2, err := runner.Enqueue(ctx, "farage_2016.txt", StageIngest, map[string]any{"foo": "bar"})
	if err != nil {
		t.Fatalf("enqueue2: %v", err)
	}
	if j1.ID != j2.ID {
		t.Fatalf("expected idempotent job, got %d vs %d", j1.ID, j2.ID)
	}
}

func TestEnqueueDistinctStages(t *testing.T) {
	cfg := config.Load()
	cfg.DBPath = filepath.Join(t.TempDir(), "test.db")
	cfg.QueueSize = 8
	cfg.WorkerCount = 0
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(cfg, st, Registry{}, nil)
	ctx := context.Background()
	j1, err := runner.Enqueue(ctx, "obama_2008.txt", StageIngest, map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	j2, err := runner.Enqueue(ctx, "obama_2008.txt", StageClean, map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	if j1.ID == j2.ID {
		t.Fatal("different stages must be distinct jobs")
	}
}
