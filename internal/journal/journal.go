// Package journal keeps a local history of lifecycle events (daemon
// starts and stops, flushes, downloads) in a SQLite file under the data
// directory, surfaced by the history command.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Event is one recorded lifecycle event.
type Event struct {
	ID        int64
	Timestamp time.Time
	Kind      string
	Detail    string
}

// Event kinds written by the command layer.
const (
	KindDaemonStart = "daemon.start"
	KindDaemonStop  = "daemon.stop"
	KindFlush       = "flush"
	KindDownload    = "download"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	kind TEXT NOT NULL,
	detail TEXT NOT NULL
);`

// Journal is the SQLite-backed event log.
type Journal struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Record appends one event.
func (j *Journal) Record(ctx context.Context, kind, detail string) error {
	_, err := j.db.ExecContext(ctx,
		"INSERT INTO events (kind, detail) VALUES (?, ?)", kind, detail)
	if err != nil {
		return fmt.Errorf("failed to record journal event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := j.db.QueryContext(ctx,
		"SELECT id, timestamp, kind, detail FROM events ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Kind, &e.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Close releases the database handle.
func (j *Journal) Close() error {
	return j.db.Close()
}
