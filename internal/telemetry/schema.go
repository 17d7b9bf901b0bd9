package telemetry

import "database/sql"

// initSchema initializes the database schema for session history
func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS sessions (
            id TEXT PRIMARY KEY,
            task_name TEXT NOT NULL,
            started_at INTEGER NOT NULL,
            stopped_at INTEGER,
            sample_count INTEGER,
            output_path TEXT
        )
    `)

	return err
}
