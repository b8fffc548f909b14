package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"csweep/internal/domain"
)

func openTestHistory(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := OpenHistory("sqlite", filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func metaFor(runID string, failed int) domain.SweepMeta {
	return domain.SweepMeta{
		RunID:           runID,
		TotalProjects:   3,
		PassedProjects:  3 - failed,
		FailedProjects:  failed,
		DurationSeconds: 2.5,
		Toolchain:       "stable",
		Timestamp:       time.Now().Format(time.RFC3339),
	}
}

func TestHistoryStore_RecordAndList(t *testing.T) {
	store := openTestHistory(t)
	ctx := context.Background()

	if err := store.Record(ctx, metaFor("run-1", 0), ""); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Record(ctx, metaFor("run-2", 1), "headr"); err != nil {
		t.Fatalf("record: %v", err)
	}

	entries, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// Newest first
	if entries[0].RunID != "run-2" {
		t.Errorf("expected run-2 first, got %s", entries[0].RunID)
	}
	if entries[0].FailedProject != "headr" {
		t.Errorf("expected failed project headr, got %q", entries[0].FailedProject)
	}
	if entries[1].RunID != "run-1" || entries[1].FailedProject != "" {
		t.Errorf("unexpected second entry: %+v", entries[1])
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("expected timestamp to parse")
	}
}

func TestHistoryStore_ListLimit(t *testing.T) {
	store := openTestHistory(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Record(ctx, metaFor("run", 0), ""); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	entries, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}

func TestHistoryStore_ListEmpty(t *testing.T) {
	store := openTestHistory(t)

	entries, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
