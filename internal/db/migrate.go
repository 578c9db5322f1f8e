package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	name string
	stmt string
}

// migrations run in order. PRAGMA user_version records how many have been
// applied; never reorder or edit an entry, append a new one.
var migrations = []migration{
	{
		name: "create kv_store",
		stmt: `CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY CHECK(key <> ''),
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
	},
}

// SchemaVersion is the user_version of a fully migrated database.
func SchemaVersion() int { return len(migrations) }

// Migrate applies the migrations the database has not seen yet.
func Migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		m := migrations[i]
		if _, err := db.Exec(m.stmt); err != nil {
			return fmt.Errorf("migration %d (%s): %w", i+1, m.name, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			return fmt.Errorf("recording schema version %d: %w", i+1, err)
		}
	}
	return nil
}
