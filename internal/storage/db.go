package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ResolveDBPath returns the database location, honoring the ETQ_DB
// environment variable and defaulting to ~/.epicquest.db.
func ResolveDBPath() (string, error) {
	if env := os.Getenv("ETQ_DB"); env != "" {
		return env, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".epicquest.db"), nil
}

// ResolveQueuePath returns the offline queue location, honoring ETQ_QUEUE
// and defaulting to a sibling of the database file.
func ResolveQueuePath() (string, error) {
	if env := os.Getenv("ETQ_QUEUE"); env != "" {
		return env, nil
	}
	dbPath, err := ResolveDBPath()
	if err != nil {
		return "", err
	}
	return dbPath + ".queue.json", nil
}

// Open opens (creating if missing) the SQLite database at path and applies
// the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
