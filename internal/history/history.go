// Package history records completed runs in a local SQLite database.
// Recording is best-effort: a failed write never blocks or fails a run.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded run.
type Entry struct {
	ID         int64
	Timestamp  time.Time
	Tool       string
	Action     string
	Argv       []string
	Viewer     string
	ExitCode   int
	DurationMs int64
	OutputSize int
}

type Manager struct {
	db *sql.DB
}

// NewManager opens (and if needed creates) the history database.
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	m := &Manager{db: db}
	if err := m.initSchema(); err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Manager) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		tool TEXT NOT NULL,
		action TEXT NOT NULL,
		argv TEXT NOT NULL,
		viewer TEXT NOT NULL,
		exit_code INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		output_size INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
	`
	if _, err := m.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return nil
}

// Add records one run.
func (m *Manager) Add(entry Entry) error {
	argv, err := json.Marshal(entry.Argv)
	if err != nil {
		return fmt.Errorf("failed to encode argv: %w", err)
	}

	_, err = m.db.Exec(
		`INSERT INTO runs (timestamp, tool, action, argv, viewer, exit_code, duration_ms, output_size)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Timestamp, entry.Tool, entry.Action, string(argv),
		entry.Viewer, entry.ExitCode, entry.DurationMs, entry.OutputSize,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (m *Manager) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := m.db.Query(
		`SELECT id, timestamp, tool, action, argv, viewer, exit_code, duration_ms, output_size
		 FROM runs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var entry Entry
		var argv string
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.Tool, &entry.Action,
			&argv, &entry.Viewer, &entry.ExitCode, &entry.DurationMs, &entry.OutputSize); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if err := json.Unmarshal([]byte(argv), &entry.Argv); err != nil {
			// Keep the entry; the raw argv is only informational.
			entry.Argv = []string{argv}
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Clear removes all recorded runs.
func (m *Manager) Clear() error {
	if _, err := m.db.Exec(`DELETE FROM runs`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Close closes the database.
func (m *Manager) Close() error {
	return m.db.Close()
}
