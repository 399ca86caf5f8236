package archive

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndList(t *testing.T) {
	db := openTestDB(t)

	id, err := db.Record(Run{
		GeneratedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Formats:      []string{"html", "pdf"},
		Theme:        "dark",
		MessageCount: 42,
		Adapter:      "discord.js",
		OutputPath:   "out.html",
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if id == "" {
		t.Fatal("Expected a generated run id")
	}

	runs, err := db.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.ID != id || run.MessageCount != 42 || run.Adapter != "discord.js" {
		t.Errorf("Unexpected run: %+v", run)
	}
	if len(run.Formats) != 2 || run.Formats[0] != "html" || run.Formats[1] != "pdf" {
		t.Errorf("Expected formats split back, got %v", run.Formats)
	}
}

func TestListNewestFirst(t *testing.T) {
	db := openTestDB(t)

	for i, ts := range []time.Time{
		time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
	} {
		if _, err := db.Record(Run{
			GeneratedAt:  ts,
			Formats:      []string{"html"},
			Theme:        "dark",
			MessageCount: i,
		}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	runs, err := db.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if !runs[0].GeneratedAt.After(runs[1].GeneratedAt) {
		t.Error("Expected newest run first")
	}

	limited, err := db.List(1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected 1 run with limit, got %d", len(limited))
	}
}

func TestListEmpty(t *testing.T) {
	db := openTestDB(t)
	runs, err := db.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected no runs, got %d", len(runs))
	}
}
