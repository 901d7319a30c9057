// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Tables for checkins, sessions, wearable data, and events.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS checkins (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL UNIQUE,
		sleep INTEGER NOT NULL,
		stress INTEGER NOT NULL,
		soreness INTEGER NOT NULL,
		energy INTEGER NOT NULL,
		hotspot TEXT,
		body_weight_kg REAL,
		source TEXT NOT NULL,
		hrv_ms REAL,
		resting_hr REAL,
		spo2 REAL,
		recovery_score REAL,
		sleep_score REAL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		start_time DATETIME,
		duration_minutes INTEGER NOT NULL,
		intensity INTEGER NOT NULL,
		class_type TEXT NOT NULL,
		rolls INTEGER,
		partners INTEGER,
		submissions_for INTEGER,
		submissions_against INTEGER,
		notes TEXT,
		workout_id TEXT,
		strain REAL,
		calories REAL,
		avg_heart_rate REAL,
		max_heart_rate REAL,
		linked_at DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS wearable_recoveries (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL UNIQUE,
		recovery_score REAL,
		hrv_ms REAL,
		resting_hr REAL,
		spo2 REAL,
		sleep_score REAL,
		recorded_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS wearable_workouts (
		id TEXT PRIMARY KEY,
		external_id TEXT NOT NULL UNIQUE,
		sport TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		ended_at DATETIME NOT NULL,
		strain REAL NOT NULL DEFAULT 0,
		calories REAL NOT NULL DEFAULT 0,
		avg_heart_rate REAL NOT NULL DEFAULT 0,
		max_heart_rate REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_checkins_date ON checkins(date DESC);
	CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date DESC);
	CREATE INDEX IF NOT EXISTS idx_sessions_type_date ON sessions(class_type, date DESC);
	CREATE INDEX IF NOT EXISTS idx_recoveries_date ON wearable_recoveries(date DESC);
	CREATE INDEX IF NOT EXISTS idx_workouts_started ON wearable_workouts(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
	`

	_, err := d.db.Exec(schema)
	return err
}
