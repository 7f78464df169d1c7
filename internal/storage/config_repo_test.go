package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestConfigRepoRoundTripAndNotify(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := NewConfigRepo(db, DefaultUserKey)

	// First load creates the default document.
	cfg, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Default.FontSize != "20px" {
		t.Fatalf("default font size=%q", cfg.Default.FontSize)
	}

	var notified *StyleConfig
	repo.Watch(func(c StyleConfig) { notified = &c })

	cfg.Tags = map[string]TagStyle{"#trip": {EasterEgg: "✈️"}}
	if err := repo.Save(ctx, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if notified == nil {
		t.Fatalf("listener not notified on save")
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if loaded.Tags["#trip"].EasterEgg != "✈️" {
		t.Fatalf("override lost: %+v", loaded.Tags)
	}

	// Merge: a partial override inherits the default's gaps.
	st := loaded.For("#trip")
	if st.FontSize != loaded.Default.FontSize || st.EasterEgg != "✈️" {
		t.Fatalf("merged style=%+v", st)
	}
}
