package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			text TEXT NOT NULL,
			difficulty INTEGER NOT NULL DEFAULT 1,
			custom_points INTEGER,
			completed INTEGER NOT NULL DEFAULT 0,
			is_wishlist INTEGER NOT NULL DEFAULT 0,
			position INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS style_config (
			user_key TEXT PRIMARY KEY,
			document TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// Points credited by repeating tasks outlive the completion flag,
		// which flips straight back to pending.
		`CREATE TABLE IF NOT EXISTS repeat_credits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id INTEGER NOT NULL,
			points INTEGER NOT NULL,
			credited_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_completed ON tasks(completed);`,
		`CREATE INDEX IF NOT EXISTS idx_repeat_credits_task_id ON repeat_credits(task_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
