package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// QueueEntry is a task creation captured while the database was
// unreachable. LocalID is assigned at enqueue time so retries after a
// partial drain never duplicate an entry.
type QueueEntry struct {
	LocalID      string    `json:"localId"`
	Text         string    `json:"text"`
	Difficulty   int       `json:"difficulty"`
	CustomPoints *int      `json:"customPoints,omitempty"`
	Wishlist     bool      `json:"isWishlist"`
	Position     *int      `json:"position,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OfflineQueue is a JSON file holding task creations made while
// offline, drained in order once the store is reachable again.
type OfflineQueue struct {
	mu   sync.Mutex
	path string
}

func NewOfflineQueue(path string) *OfflineQueue {
	return &OfflineQueue{path: path}
}

// Append adds one pending creation to the queue and returns its local id.
func (q *OfflineQueue) Append(ins TaskInsert) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load()
	if err != nil {
		return "", err
	}
	e := QueueEntry{
		LocalID:      uuid.NewString(),
		Text:         ins.Text,
		Difficulty:   ins.Difficulty,
		CustomPoints: ins.CustomPoints,
		Wishlist:     ins.Wishlist,
		Position:     ins.Position,
		CreatedAt:    time.Now().UTC(),
	}
	entries = append(entries, e)
	if err := q.save(entries); err != nil {
		return "", err
	}
	return e.LocalID, nil
}

// Entries returns the pending creations in enqueue order.
func (q *OfflineQueue) Entries() ([]QueueEntry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load()
}

// Len reports the number of pending entries.
func (q *OfflineQueue) Len() (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	entries, err := q.load()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// TaskCreator is the slice of the task repo Drain needs.
type TaskCreator interface {
	CreateTask(ctx context.Context, ins TaskInsert) (int64, error)
}

// Drain replays the queued creations against the repo in order. It
// stops at the first failure and rewrites the file with the remaining
// entries, so nothing is lost when the store goes away mid-drain.
// It returns the number of entries flushed.
func (q *OfflineQueue) Drain(ctx context.Context, repo TaskCreator) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load()
	if err != nil {
		return 0, err
	}
	flushed := 0
	for _, e := range entries {
		ins := TaskInsert{
			Text:         e.Text,
			Difficulty:   e.Difficulty,
			CustomPoints: e.CustomPoints,
			Wishlist:     e.Wishlist,
			Position:     e.Position,
		}
		if _, err := repo.CreateTask(ctx, ins); err != nil {
			if saveErr := q.save(entries[flushed:]); saveErr != nil {
				return flushed, fmt.Errorf("flush queued task: %w (and rewrite queue: %v)", err, saveErr)
			}
			return flushed, fmt.Errorf("flush queued task: %w", err)
		}
		flushed++
	}
	if err := q.save(nil); err != nil {
		return flushed, err
	}
	return flushed, nil
}

func (q *OfflineQueue) load() ([]QueueEntry, error) {
	data, err := os.ReadFile(q.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read offline queue: %w", err)
	}
	var entries []QueueEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse offline queue: %w", err)
	}
	return entries, nil
}

// save writes the queue atomically via a temp file in the same
// directory so a crash never leaves a truncated queue behind.
func (q *OfflineQueue) save(entries []QueueEntry) error {
	if len(entries) == 0 {
		if err := os.Remove(q.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove offline queue: %w", err)
		}
		return nil
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode offline queue: %w", err)
	}
	dir := filepath.Dir(q.path)
	tmp, err := os.CreateTemp(dir, ".queue-*.json")
	if err != nil {
		return fmt.Errorf("create temp queue: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp queue: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp queue: %w", err)
	}
	if err := os.Rename(tmpName, q.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace offline queue: %w", err)
	}
	return nil
}
