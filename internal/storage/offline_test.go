package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

type flakyCreator struct {
	failAfter int
	created   []TaskInsert
}

func (f *flakyCreator) CreateTask(ctx context.Context, in TaskInsert) (int64, error) {
	if len(f.created) >= f.failAfter {
		return 0, errors.New("store down")
	}
	f.created = append(f.created, in)
	return int64(len(f.created)), nil
}

func TestOfflineQueueDrainStopsAtFirstFailure(t *testing.T) {
	q := NewOfflineQueue(filepath.Join(t.TempDir(), "queue.json"))

	for _, text := range []string{"one", "two", "three"} {
		if _, err := q.Append(TaskInsert{Text: text, Difficulty: 1}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	store := &flakyCreator{failAfter: 1}
	flushed, err := q.Drain(context.Background(), store)
	if err == nil {
		t.Fatalf("expected drain error")
	}
	if flushed != 1 {
		t.Fatalf("flushed=%d, want 1", flushed)
	}

	// The undrained entries survive, in order, for the next attempt.
	entries, err := q.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 || entries[0].Text != "two" || entries[1].Text != "three" {
		t.Fatalf("remaining=%+v", entries)
	}

	store.failAfter = 10
	flushed, err = q.Drain(context.Background(), store)
	if err != nil {
		t.Fatalf("second Drain: %v", err)
	}
	if flushed != 2 {
		t.Fatalf("flushed=%d, want 2", flushed)
	}
	if n, _ := q.Len(); n != 0 {
		t.Fatalf("queue len=%d, want 0", n)
	}
}

func TestOfflineQueueAssignsLocalIDs(t *testing.T) {
	q := NewOfflineQueue(filepath.Join(t.TempDir(), "queue.json"))

	a, err := q.Append(TaskInsert{Text: "a", Difficulty: 1})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	b, err := q.Append(TaskInsert{Text: "b", Difficulty: 1})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if a == "" || b == "" || a == b {
		t.Fatalf("local ids not unique: %q %q", a, b)
	}
}

func TestOfflineQueueEmptyFileAbsent(t *testing.T) {
	q := NewOfflineQueue(filepath.Join(t.TempDir(), "queue.json"))
	entries, err := q.Entries()
	if err != nil {
		t.Fatalf("Entries on missing file: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries=%v, want none", entries)
	}
}
