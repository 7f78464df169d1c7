package engine

import (
	"errors"
	"fmt"
)

// ErrEmptyText rejects task creation or edits with no visible content.
var ErrEmptyText = errors.New("task text is required")

// ErrOffline is wrapped by OfflineQueuedError and reported when a write
// could not reach the store and was parked in the offline queue instead.
var ErrOffline = errors.New("store unreachable")

// OfflineQueuedError reports that a creation was captured offline and
// will be replayed on the next successful sync.
type OfflineQueuedError struct {
	LocalID string
}

func (e OfflineQueuedError) Error() string {
	return fmt.Sprintf("queued offline as %s", e.LocalID)
}

func (e OfflineQueuedError) Unwrap() error { return ErrOffline }

// NotFoundError identifies a task id that no longer exists.
type NotFoundError struct {
	ID int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}
