package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/victordelrosal/epictaskquest/internal/storage"
)

// TaskStore is the persistence surface the service mutates through.
// *storage.TaskRepo is the production implementation.
type TaskStore interface {
	ListTasks(ctx context.Context) ([]storage.Task, error)
	GetTask(ctx context.Context, id int64) (*storage.Task, error)
	CreateTask(ctx context.Context, in storage.TaskInsert) (int64, error)
	UpdateTask(ctx context.Context, id int64, patch storage.TaskPatch) error
	DeleteTask(ctx context.Context, id int64) error
	BatchUpdate(ctx context.Context, updates []storage.TaskUpdate) error
	BatchDelete(ctx context.Context, ids []int64) error
}

// Alarms schedules reminders parsed out of task text. Implementations
// ignore text with no alarm marker.
type Alarms interface {
	Schedule(taskID int64, text string)
	Cancel(taskID int64)
}

// NopAlarms ignores all scheduling.
type NopAlarms struct{}

func (NopAlarms) Schedule(int64, string) {}
func (NopAlarms) Cancel(int64)           {}

// Service owns the in-memory task snapshot and serializes every
// mutation against the store. Mutations write through and then reload
// the snapshot from the store, so the snapshot is eventually consistent
// with it.
type Service struct {
	store   TaskStore
	credits *storage.CreditRepo
	queue   *storage.OfflineQueue
	hooks   Hooks
	alarms  Alarms
	online  func() bool

	mu       sync.RWMutex
	tasks    []storage.Task
	stats    Stats
	badgeIdx int

	// reload single-flight: a reload requested while one is running is
	// coalesced into one follow-up pass instead of racing it.
	reloadMu  sync.Mutex
	reloading bool
	pending   bool
}

// Option tweaks service construction.
type Option func(*Service)

// WithHooks installs the animation hook receiver.
func WithHooks(h Hooks) Option {
	return func(s *Service) { s.hooks = h }
}

// WithAlarms installs the alarm scheduler.
func WithAlarms(a Alarms) Option {
	return func(s *Service) { s.alarms = a }
}

// WithOfflineQueue installs the queue that captures creations while
// the store is unreachable.
func WithOfflineQueue(q *storage.OfflineQueue) Option {
	return func(s *Service) { s.queue = q }
}

// WithOnlineCheck installs the connectivity probe consulted before
// each creation.
func WithOnlineCheck(fn func() bool) Option {
	return func(s *Service) { s.online = fn }
}

func NewService(store TaskStore, credits *storage.CreditRepo, opts ...Option) *Service {
	s := &Service{
		store:   store,
		credits: credits,
		hooks:   NopHooks{},
		alarms:  NopAlarms{},
		online:  func() bool { return true },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Reload refreshes the snapshot from the store, running the wishlist
// migration and sync passes first. Concurrent calls coalesce: a call
// arriving while a reload is in flight schedules exactly one follow-up
// pass and returns immediately.
func (s *Service) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	if s.reloading {
		s.pending = true
		s.reloadMu.Unlock()
		return nil
	}
	s.reloading = true
	s.reloadMu.Unlock()

	for {
		err := s.reloadOnce(ctx)

		s.reloadMu.Lock()
		if err == nil && s.pending {
			s.pending = false
			s.reloadMu.Unlock()
			continue
		}
		s.reloading = false
		s.pending = false
		s.reloadMu.Unlock()
		return err
	}
}

func (s *Service) reloadOnce(ctx context.Context) error {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("reload tasks: %w", err)
	}

	// Migration then sync, each batched atomically and re-read before
	// the next pass acts, so neither works on stale text.
	if updates := migrationUpdates(tasks); len(updates) > 0 {
		if err := s.store.BatchUpdate(ctx, updates); err != nil {
			return fmt.Errorf("wishlist migration: %w", err)
		}
		if tasks, err = s.store.ListTasks(ctx); err != nil {
			return fmt.Errorf("reload after migration: %w", err)
		}
	}
	if updates := syncUpdates(tasks); len(updates) > 0 {
		if err := s.store.BatchUpdate(ctx, updates); err != nil {
			return fmt.Errorf("wishlist sync: %w", err)
		}
		if tasks, err = s.store.ListTasks(ctx); err != nil {
			return fmt.Errorf("reload after sync: %w", err)
		}
	}

	banked := 0
	if s.credits != nil {
		if banked, err = s.credits.TotalCredits(ctx); err != nil {
			return fmt.Errorf("reload credits: %w", err)
		}
	}
	stats := ComputeStats(tasks, banked)

	s.mu.Lock()
	prev := s.stats
	s.tasks = tasks
	s.stats = stats
	if stats.Level != prev.Level {
		s.badgeIdx = BadgeIndexForLevel(stats.Level)
	}
	s.mu.Unlock()

	s.fireStatHooks(prev, stats)
	return nil
}

func (s *Service) fireStatHooks(prev, cur Stats) {
	if cur.Completed > prev.Completed {
		s.hooks.StatIncrease("completed")
	}
	if cur.TotalPoints > prev.TotalPoints {
		s.hooks.StatIncrease("points")
	}
	if cur.Level > prev.Level {
		s.hooks.LevelUp(cur.Level)
	}
}

// AddTask validates and creates a task. A leading "<n>. " prefix is
// parsed as a requested list position and clamped to the active list
// length. When the wishlist flag is set the wishlist tag is appended to
// the text before the write, keeping tag and flag in step. When the
// store is unreachable the creation is parked in the offline queue and
// an OfflineQueuedError is returned.
func (s *Service) AddTask(ctx context.Context, text string, difficulty Difficulty, customPoints *int, wishlist bool) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyText
	}
	if !difficulty.IsValid() {
		difficulty = DefaultDifficulty
	}
	if difficulty != DifficultyCustom {
		customPoints = nil
	}
	if wishlist {
		text = AppendWishlistTag(text)
	}

	pos, rest := ParsePositionPrefix(text)
	if pos != nil {
		text = rest
		pos = ClampPosition(pos, s.activeCount())
	}

	ins := storage.TaskInsert{
		Text:         text,
		Difficulty:   int(difficulty),
		CustomPoints: customPoints,
		Wishlist:     wishlist || HasWishlistTag(text),
		Position:     pos,
	}

	if s.queue != nil && !s.online() {
		localID, err := s.queue.Append(ins)
		if err != nil {
			return 0, fmt.Errorf("queue offline task: %w", err)
		}
		return 0, OfflineQueuedError{LocalID: localID}
	}

	id, err := s.store.CreateTask(ctx, ins)
	if err != nil {
		if s.queue != nil {
			if localID, qErr := s.queue.Append(ins); qErr == nil {
				return 0, OfflineQueuedError{LocalID: localID}
			}
		}
		return 0, fmt.Errorf("create task: %w", err)
	}

	s.alarms.Schedule(id, text)
	s.hooks.TaskAdded(id)
	if err := s.Reload(ctx); err != nil {
		return id, err
	}
	return id, nil
}

// ToggleCompletion flips a task's completed flag. A repeating task is
// special: its points are banked in the credit ledger and the task
// stays active, so it can be completed again.
func (s *Service) ToggleCompletion(ctx context.Context, id int64) error {
	t, err := s.findTask(ctx, id)
	if err != nil {
		return err
	}

	if !t.Completed && HasRepeatTag(t.Text) {
		if s.credits == nil {
			return fmt.Errorf("repeat task %d: no credit ledger configured", id)
		}
		if _, err := s.credits.AddCredit(ctx, id, taskPoints(*t), time.Now().UTC()); err != nil {
			return fmt.Errorf("credit repeat task: %w", err)
		}
		s.hooks.TaskCompleted()
		return s.Reload(ctx)
	}

	completed := !t.Completed
	if err := s.store.UpdateTask(ctx, id, storage.TaskPatch{Completed: &completed}); err != nil {
		return fmt.Errorf("toggle completion: %w", err)
	}
	if completed {
		s.alarms.Cancel(id)
		s.hooks.TaskCompleted()
	}
	return s.Reload(ctx)
}

// EditText replaces a task's text. The wishlist flag is recomputed from
// the new text in the same write, so removing the wishlist tag also
// clears the flag. Any scheduled alarm is re-derived from the new text.
func (s *Service) EditText(ctx context.Context, id int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	if _, err := s.findTask(ctx, id); err != nil {
		return err
	}
	wishlist := HasWishlistTag(text)
	patch := storage.TaskPatch{Text: &text, Wishlist: &wishlist}
	if err := s.store.UpdateTask(ctx, id, patch); err != nil {
		return fmt.Errorf("edit task: %w", err)
	}
	s.alarms.Cancel(id)
	s.alarms.Schedule(id, text)
	return s.Reload(ctx)
}

// SetWishlist toggles the cart control: flag and tag move together in
// one write.
func (s *Service) SetWishlist(ctx context.Context, id int64, on bool) error {
	t, err := s.findTask(ctx, id)
	if err != nil {
		return err
	}
	var text string
	if on {
		text = AppendWishlistTag(t.Text)
	} else {
		text = StripWishlistTag(t.Text)
		if text == "" {
			// A task that was nothing but the tag keeps its old text so
			// it never becomes empty.
			text = t.Text
		}
	}
	patch := storage.TaskPatch{Text: &text, Wishlist: &on}
	if err := s.store.UpdateTask(ctx, id, patch); err != nil {
		return fmt.Errorf("set wishlist: %w", err)
	}
	return s.Reload(ctx)
}

// SetDifficulty moves a task to a difficulty level. Entering the custom
// level without a point value gets the default; leaving it clears the
// stored value.
func (s *Service) SetDifficulty(ctx context.Context, id int64, d Difficulty, customPoints *int) error {
	if !d.IsValid() {
		return fmt.Errorf("difficulty %d out of range", d)
	}
	if _, err := s.findTask(ctx, id); err != nil {
		return err
	}
	dv := int(d)
	patch := storage.TaskPatch{Difficulty: &dv}
	if d == DifficultyCustom {
		if customPoints == nil || *customPoints <= 0 {
			def := DefaultCustomPoints
			customPoints = &def
		}
		patch.CustomPoints = customPoints
	} else {
		patch.ClearCustomPoints = true
	}
	if err := s.store.UpdateTask(ctx, id, patch); err != nil {
		return fmt.Errorf("set difficulty: %w", err)
	}
	return s.Reload(ctx)
}

// MoveUp bumps a task one difficulty level, saturating at custom.
func (s *Service) MoveUp(ctx context.Context, id int64) error {
	return s.moveDifficulty(ctx, id, 1)
}

// MoveDown drops a task one difficulty level, saturating at trivial.
func (s *Service) MoveDown(ctx context.Context, id int64) error {
	return s.moveDifficulty(ctx, id, -1)
}

func (s *Service) moveDifficulty(ctx context.Context, id int64, delta int) error {
	t, err := s.findTask(ctx, id)
	if err != nil {
		return err
	}
	d := Difficulty(t.Difficulty + delta)
	if d < DifficultyTrivial || d > DifficultyCustom {
		return nil
	}
	return s.SetDifficulty(ctx, id, d, t.CustomPoints)
}

// SwapPoints exchanges the point ratings of two tasks in one atomic
// batch.
func (s *Service) SwapPoints(ctx context.Context, a, b int64) error {
	ta, err := s.findTask(ctx, a)
	if err != nil {
		return err
	}
	tb, err := s.findTask(ctx, b)
	if err != nil {
		return err
	}
	updates := []storage.TaskUpdate{
		{ID: a, Patch: ratingPatch(*tb)},
		{ID: b, Patch: ratingPatch(*ta)},
	}
	if err := s.store.BatchUpdate(ctx, updates); err != nil {
		return fmt.Errorf("swap points: %w", err)
	}
	return s.Reload(ctx)
}

func ratingPatch(t storage.Task) storage.TaskPatch {
	d := t.Difficulty
	p := storage.TaskPatch{Difficulty: &d}
	if t.CustomPoints != nil {
		p.CustomPoints = t.CustomPoints
	} else {
		p.ClearCustomPoints = true
	}
	return p
}

// Delete removes a task and cancels its alarm.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.findTask(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	s.alarms.Cancel(id)
	s.hooks.TaskDeleted(id)
	return s.Reload(ctx)
}

// Reset wipes every task and the repeat credit ledger.
func (s *Service) Reset(ctx context.Context) error {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("reset list: %w", err)
	}
	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
		s.alarms.Cancel(t.ID)
	}
	if len(ids) > 0 {
		if err := s.store.BatchDelete(ctx, ids); err != nil {
			return fmt.Errorf("reset delete: %w", err)
		}
	}
	if s.credits != nil {
		if err := s.credits.Reset(ctx); err != nil {
			return fmt.Errorf("reset credits: %w", err)
		}
	}
	return s.Reload(ctx)
}

// SyncWishlist runs the migration and sync passes immediately.
func (s *Service) SyncWishlist(ctx context.Context) error {
	return s.Reload(ctx)
}

// DrainOffline replays queued offline creations into the store,
// stopping at the first failure. It reports how many entries flushed.
func (s *Service) DrainOffline(ctx context.Context) (int, error) {
	if s.queue == nil {
		return 0, nil
	}
	flushed, err := s.queue.Drain(ctx, s.store)
	if flushed > 0 {
		if rErr := s.Reload(ctx); rErr != nil && err == nil {
			err = rErr
		}
	}
	return flushed, err
}

// Tasks returns a copy of the current snapshot.
func (s *Service) Tasks() []storage.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]storage.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// ActiveTasks returns the non-completed tasks from the snapshot.
func (s *Service) ActiveTasks() []storage.Task {
	var out []storage.Task
	for _, t := range s.Tasks() {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// CompletedTasks returns the completed tasks from the snapshot.
func (s *Service) CompletedTasks() []storage.Task {
	var out []storage.Task
	for _, t := range s.Tasks() {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// Hierarchy builds the grouped view of the active snapshot.
func (s *Service) Hierarchy() Hierarchy {
	return BuildHierarchy(s.ActiveTasks())
}

// Stats returns the current scoreboard.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// BadgeIndex returns the currently displayed badge.
func (s *Service) BadgeIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.badgeIdx
}

// BrowseBadge moves the displayed badge by delta, clamped to the badges
// earned at the current level.
func (s *Service) BrowseBadge(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.badgeIdx = ClampBadgeIndex(s.badgeIdx+delta, s.stats.Level)
	return s.badgeIdx
}

func (s *Service) activeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, t := range s.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// findTask looks a task up in the snapshot first and falls back to the
// store, so callers work even before the first reload.
func (s *Service) findTask(ctx context.Context, id int64) (*storage.Task, error) {
	s.mu.RLock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			t := s.tasks[i]
			s.mu.RUnlock()
			return &t, nil
		}
	}
	s.mu.RUnlock()

	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup task: %w", err)
	}
	if t == nil {
		return nil, NotFoundError{ID: id}
	}
	return t, nil
}
