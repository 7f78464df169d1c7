package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// DefaultUserKey namespaces the style document when no authenticated user
// id is supplied. There is exactly one active user session by design.
const DefaultUserKey = "main_user"

// ConfigRepo persists the per-user style document and notifies registered
// listeners when it changes.
type ConfigRepo struct {
	db      *sql.DB
	userKey string

	mu        sync.Mutex
	listeners []func(StyleConfig)
}

func NewConfigRepo(db *sql.DB, userKey string) *ConfigRepo {
	if userKey == "" {
		userKey = DefaultUserKey
	}
	return &ConfigRepo{db: db, userKey: userKey}
}

// Load returns the stored config, creating the default document when the
// user has none yet.
func (r *ConfigRepo) Load(ctx context.Context) (StyleConfig, error) {
	row := r.db.QueryRowContext(ctx, `SELECT document FROM style_config WHERE user_key = ?`, r.userKey)

	var doc string
	if err := row.Scan(&doc); err != nil {
		if err == sql.ErrNoRows {
			cfg := DefaultStyleConfig()
			if err := r.Save(ctx, cfg); err != nil {
				return StyleConfig{}, err
			}
			return cfg, nil
		}
		return StyleConfig{}, fmt.Errorf("style config get: %w", err)
	}

	var cfg StyleConfig
	if err := json.Unmarshal([]byte(doc), &cfg); err != nil {
		return StyleConfig{}, fmt.Errorf("style config decode: %w", err)
	}
	if cfg.Tags == nil {
		cfg.Tags = map[string]TagStyle{}
	}
	return cfg, nil
}

// Save upserts the document and fans it out to change listeners.
func (r *ConfigRepo) Save(ctx context.Context, cfg StyleConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("style config encode: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO style_config (user_key, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_key) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at
	`, r.userKey, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("style config save: %w", err)
	}

	r.mu.Lock()
	listeners := append([]func(StyleConfig){}, r.listeners...)
	r.mu.Unlock()
	for _, fn := range listeners {
		fn(cfg)
	}
	return nil
}

// Watch registers a listener invoked with the latest config after every
// save. Listeners are called synchronously, in registration order.
func (r *ConfigRepo) Watch(fn func(StyleConfig)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}
