// Package sqlite records session events durably. The table mirrors the
// LogEvent effect one to one and is append-only; queries are for tooling,
// not for the dispatch loop.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// EventLog is an append-only SQLite event store.
type EventLog struct {
	db *sql.DB
}

// Open opens or creates the event database at path and runs migrations.
func Open(path string) (*EventLog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS session_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL DEFAULT '',
		event_type TEXT NOT NULL,
		payload TEXT,
		occurred_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_session_events_session
		ON session_events(session_id, id);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &EventLog{db: db}, nil
}

// Append records one event.
func (l *EventLog) Append(ctx context.Context, sessionID, eventType string, payload map[string]any, occurredAt time.Time) error {
	var payloadJSON []byte
	if payload != nil {
		var err error
		payloadJSON, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO session_events (session_id, event_type, payload, occurred_at) VALUES (?, ?, ?, ?)`,
		sessionID, eventType, string(payloadJSON), occurredAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Event is one stored row.
type Event struct {
	ID         int64
	SessionID  string
	EventType  string
	Payload    map[string]any
	OccurredAt time.Time
}

// BySession returns a session's events in append order.
func (l *EventLog) BySession(ctx context.Context, sessionID string) ([]Event, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, session_id, event_type, payload, occurred_at
		 FROM session_events WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			e       Event
			payload sql.NullString
			at      string
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.EventType, &payload, &at); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if payload.Valid && payload.String != "" {
			if err := json.Unmarshal([]byte(payload.String), &e.Payload); err != nil {
				return nil, fmt.Errorf("decode payload: %w", err)
			}
		}
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			e.OccurredAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (l *EventLog) Close() error {
	return l.db.Close()
}
