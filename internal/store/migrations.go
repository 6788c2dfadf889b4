package store

import (
	"context"
	"fmt"
)

// schemaStatements define the tables the store needs. Each statement is
// idempotent so Migrate can run on every open.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS exercises (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		categories TEXT NOT NULL DEFAULT '[]',
		difficulty TEXT NOT NULL,
		muscle_group TEXT NOT NULL DEFAULT '',
		pattern TEXT NOT NULL,
		primary_muscles TEXT NOT NULL DEFAULT '[]',
		secondary_muscles TEXT NOT NULL DEFAULT '[]',
		force_type TEXT NOT NULL DEFAULT '',
		laterality TEXT NOT NULL DEFAULT 'bilateral',
		equipment_required TEXT NOT NULL DEFAULT '[]',
		bodyweight INTEGER NOT NULL DEFAULT 0,
		compound INTEGER NOT NULL DEFAULT 0,
		active INTEGER NOT NULL DEFAULT 1,
		description TEXT NOT NULL DEFAULT '',
		instructions TEXT NOT NULL DEFAULT '[]',
		video_url TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_exercises_active ON exercises(active)`,

	`CREATE TABLE IF NOT EXISTS client_equipment (
		client_id TEXT NOT NULL,
		equipment TEXT NOT NULL,
		PRIMARY KEY (client_id, equipment)
	)`,

	`CREATE TABLE IF NOT EXISTS programs (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		requested_by TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		duration_weeks INTEGER NOT NULL,
		split_type TEXT NOT NULL DEFAULT '',
		periodization TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_programs_client ON programs(client_id)`,

	`CREATE TABLE IF NOT EXISTS program_exercises (
		program_id TEXT NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
		week INTEGER NOT NULL,
		day_of_week INTEGER NOT NULL,
		day_label TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL,
		slot_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		exercise_name TEXT NOT NULL,
		role TEXT NOT NULL,
		sets INTEGER NOT NULL,
		reps TEXT NOT NULL,
		rest_seconds INTEGER NOT NULL DEFAULT 0,
		rpe REAL NOT NULL DEFAULT 0,
		tempo TEXT NOT NULL DEFAULT '',
		group_tag TEXT NOT NULL DEFAULT '',
		technique TEXT NOT NULL DEFAULT 'straight_set',
		note TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (program_id, week, day_of_week, position)
	)`,
}

// Migrate applies the schema. Safe to call repeatedly.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
