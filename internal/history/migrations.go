package history

import (
	"database/sql"
	"fmt"
)

// migration is a single versioned schema change.
type migration struct {
	version int
	name    string
	up      string
}

// allMigrations lists every schema change in order. The base schema is
// created by initSchema; migrations only evolve existing databases.
var allMigrations = []migration{
	{
		version: 1,
		name:    "Add composite index for per-tool queries",
		up: `
			CREATE INDEX IF NOT EXISTS idx_runs_tool_timestamp ON runs(tool, timestamp DESC);
		`,
	},
	{
		version: 2,
		name:    "Clean up legacy rows without a tool name",
		up: `
			DELETE FROM runs WHERE tool = '';
		`,
	},
}

// migrate applies every pending migration, tracking the applied version in
// a schema_migrations table.
func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	for _, m := range allMigrations {
		if m.version <= currentVersion {
			continue
		}

		if _, err := db.Exec(m.up); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.version, m.name, err)
		}
		if _, err := db.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			m.version, m.name,
		); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (m *Manager) SchemaVersion() (int, error) {
	var version int
	err := m.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}
