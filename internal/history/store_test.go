package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestOpenRejectsDirectory(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Error("expected error for directory path")
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "runs.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	store.Close()
}

func TestSaveAndLoadRuns(t *testing.T) {
	store := openStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, run := range []Run{
		{Root: "/src/proj", FilesAnalyzed: 10, UndefinedCount: 2, ExternalCount: 1, Duration: 120 * time.Millisecond},
		{Root: "/src/proj", FilesAnalyzed: 11, UndefinedCount: 0, ExternalCount: 1, Duration: 95 * time.Millisecond},
		{Root: "/src/other", FilesAnalyzed: 3},
	} {
		run.Timestamp = base.Add(time.Duration(i) * time.Minute)
		if err := store.SaveRun(run); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	runs, err := store.LoadRuns("/src/proj", base.Add(-time.Hour))
	if err != nil {
		t.Fatalf("LoadRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs for root, got %d", len(runs))
	}
	if !runs[0].Timestamp.Before(runs[1].Timestamp) {
		t.Error("runs must come back oldest first")
	}
	if runs[0].FilesAnalyzed != 10 || runs[0].UndefinedCount != 2 || runs[0].ExternalCount != 1 {
		t.Errorf("first run counts wrong: %+v", runs[0])
	}
	if runs[0].Duration != 120*time.Millisecond {
		t.Errorf("expected 120ms duration, got %v", runs[0].Duration)
	}
	if runs[0].ID == "" || runs[1].ID == "" {
		t.Error("saved runs must be assigned IDs")
	}
}

func TestLoadRunsHonorsSince(t *testing.T) {
	store := openStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := store.SaveRun(Run{
			Root:      "/src/proj",
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	runs, err := store.LoadRuns("/src/proj", base.Add(90*time.Minute))
	if err != nil {
		t.Fatalf("LoadRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run after cutoff, got %d", len(runs))
	}
}

func TestSchemaSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := store.SaveRun(Run{Root: "/src/proj"}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	store.Close()

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()

	runs, err := store.LoadRuns("/src/proj", time.Time{})
	if err != nil {
		t.Fatalf("LoadRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run after reopen, got %d", len(runs))
	}
}
