package main

import (
	"path/filepath"
	"testing"
	"time"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndTopRuns(t *testing.T) {
	db := testDB(t)

	runs := []RunSummary{
		{Score: 400, Level: 2, DurationMS: 60000},
		{Score: 9000, Level: 6, Winner: true, DurationMS: 600000},
		{Score: 1200, Level: 3, DurationMS: 120000},
	}
	for _, sum := range runs {
		if err := db.RecordRun(sum); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	top, err := db.TopRuns(2)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(top))
	}
	if top[0].Score != 9000 || top[1].Score != 1200 {
		t.Errorf("rows should come back best-first: %d, %d", top[0].Score, top[1].Score)
	}
	if !top[0].Winner {
		t.Error("winner flag should round-trip")
	}
	if top[0].Duration != 600 {
		t.Errorf("duration should be stored in seconds, got %f", top[0].Duration)
	}
}

func TestInsertEvents(t *testing.T) {
	db := testDB(t)

	events := []RunEvent{
		{Type: "run_start", SessionID: "abcd1234", Timestamp: time.Now().UTC()},
		{Type: "player_death", SessionID: "abcd1234", Data: "level 2", Timestamp: time.Now().UTC()},
		{Type: "winner", Timestamp: time.Now().UTC()},
	}
	if err := db.InsertEvents(events); err != nil {
		t.Fatalf("InsertEvents: %v", err)
	}
	if err := db.InsertEvents(nil); err != nil {
		t.Fatalf("empty batch should commit cleanly: %v", err)
	}
}
