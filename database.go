package main

import (
	"database/sql"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite run-log database. The simulation itself is purely
// in-memory; this only records finished runs for the scoreboard.
type DB struct {
	conn *sql.DB
}

// RunRow is one completed run
type RunRow struct {
	ID        int64
	Score     int
	Level     int
	Winner    bool
	Duration  float64 // seconds
	CreatedAt time.Time
}

// OpenDB opens (or creates) the SQLite database
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates tables if they don't exist
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		score INTEGER NOT NULL DEFAULT 0,
		level INTEGER NOT NULL DEFAULT 1,
		winner INTEGER NOT NULL DEFAULT 0,
		duration REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS run_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_type TEXT NOT NULL,
		session_id TEXT,
		data TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score);
	CREATE INDEX IF NOT EXISTS idx_run_events_type ON run_events(event_type);
	`
	_, err := db.conn.Exec(schema)
	if err != nil {
		log.Printf("DB migration error: %v", err)
	}
	return err
}

// RecordRun inserts one finished run
func (db *DB) RecordRun(sum RunSummary) error {
	winner := 0
	if sum.Winner {
		winner = 1
	}
	_, err := db.conn.Exec(
		`INSERT INTO runs (score, level, winner, duration) VALUES (?, ?, ?, ?)`,
		sum.Score, sum.Level, winner, float64(sum.DurationMS)/1000.0,
	)
	return err
}

// TopRuns returns the best runs by score, newest first among ties
func (db *DB) TopRuns(limit int) ([]RunRow, error) {
	rows, err := db.conn.Query(`
		SELECT id, score, level, winner, duration, created_at
		FROM runs ORDER BY score DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		var winner int
		if err := rows.Scan(&r.ID, &r.Score, &r.Level, &winner, &r.Duration, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Winner = winner != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// InsertEvents writes a batch of run events in one transaction
func (db *DB) InsertEvents(events []RunEvent) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO run_events (event_type, session_id, data, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, evt := range events {
		sid := sql.NullString{String: evt.SessionID, Valid: evt.SessionID != ""}
		data := sql.NullString{String: evt.Data, Valid: evt.Data != ""}
		if _, err := stmt.Exec(evt.Type, sid, data, evt.Timestamp.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return tx.Commit()
}
