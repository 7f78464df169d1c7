package engine

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/victordelrosal/epictaskquest/internal/storage"
)

func newTestService(t *testing.T, opts ...Option) (*Service, *storage.TaskRepo) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	db, err := storage.Open(ctx, filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := storage.NewTaskRepo(db)
	svc := NewService(repo, storage.NewCreditRepo(db), opts...)
	return svc, repo
}

func TestAddWishlistTask(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.AddTask(ctx, "Buy milk", DifficultyTrivial, nil, true)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	tasks := svc.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("tasks=%d, want 1", len(tasks))
	}
	task := tasks[0]
	if task.ID != id {
		t.Fatalf("id=%d, want %d", task.ID, id)
	}
	if strings.Count(task.Text, WishlistTag) != 1 {
		t.Fatalf("wishlist tag count in %q != 1", task.Text)
	}
	if !task.Wishlist {
		t.Fatalf("wishlist flag not set")
	}

	if err := svc.ToggleCompletion(ctx, id); err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}
	if got := svc.Stats().TotalPoints; got != 5 {
		t.Fatalf("points=%d, want 5 (difficulty-1 value)", got)
	}
}

func TestAddEmptyTextRejected(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.AddTask(context.Background(), "   ", DifficultyTrivial, nil, false); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("err=%v, want ErrEmptyText", err)
	}
}

func TestRepeatTaskBanksPointsAndStaysActive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.AddTask(ctx, "stretch #repeat", DifficultyEasy, nil, false)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	if err := svc.ToggleCompletion(ctx, id); err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}

	tasks := svc.Tasks()
	if tasks[0].Completed {
		t.Fatalf("repeat task must stay active")
	}
	if got := svc.Stats().TotalPoints; got != 10 {
		t.Fatalf("points=%d, want 10 banked", got)
	}

	// Completing again banks again.
	if err := svc.ToggleCompletion(ctx, id); err != nil {
		t.Fatalf("second ToggleCompletion: %v", err)
	}
	if got := svc.Stats().TotalPoints; got != 20 {
		t.Fatalf("points=%d, want 20", got)
	}
}

func TestEditRemovingTagClearsFlag(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.AddTask(ctx, "buy socks", DifficultyTrivial, nil, true)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if err := svc.EditText(ctx, id, "buy socks"); err != nil {
		t.Fatalf("EditText: %v", err)
	}

	task := svc.Tasks()[0]
	if task.Wishlist {
		t.Fatalf("flag must clear when the tag is edited away")
	}
	if HasWishlistTag(task.Text) {
		t.Fatalf("tag reappeared: %q", task.Text)
	}
}

func TestMigrationOnReload(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	if _, err := repo.CreateTask(ctx, storage.TaskInsert{Text: "old item #shop", Difficulty: 1}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if err := svc.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	task := svc.Tasks()[0]
	if strings.Contains(task.Text, LegacyWishlistTag) {
		t.Fatalf("legacy tag survived reload: %q", task.Text)
	}
	if !strings.Contains(task.Text, WishlistTag) || !task.Wishlist {
		t.Fatalf("migration incomplete: %q wishlist=%v", task.Text, task.Wishlist)
	}
}

func TestPositionPrefixClamped(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddTask(ctx, "first", DifficultyTrivial, nil, false); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	id, err := svc.AddTask(ctx, "9. way past the end", DifficultyTrivial, nil, false)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	var task *storage.Task
	for _, c := range svc.Tasks() {
		if c.ID == id {
			t2 := c
			task = &t2
		}
	}
	if task == nil {
		t.Fatalf("task not found")
	}
	if strings.HasPrefix(task.Text, "9") {
		t.Fatalf("prefix not stripped: %q", task.Text)
	}
	if task.Position == nil || *task.Position != 2 {
		t.Fatalf("position=%v, want 2 (clamped to active count + 1)", task.Position)
	}
}

func TestSetDifficultyCustomDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.AddTask(ctx, "big thing", DifficultyEpic, nil, false)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	if err := svc.MoveUp(ctx, id); err != nil {
		t.Fatalf("MoveUp: %v", err)
	}
	task := svc.Tasks()[0]
	if Difficulty(task.Difficulty) != DifficultyCustom {
		t.Fatalf("difficulty=%d, want custom", task.Difficulty)
	}
	if task.CustomPoints == nil || *task.CustomPoints != DefaultCustomPoints {
		t.Fatalf("custom points=%v, want default %d", task.CustomPoints, DefaultCustomPoints)
	}

	if err := svc.MoveDown(ctx, id); err != nil {
		t.Fatalf("MoveDown: %v", err)
	}
	task = svc.Tasks()[0]
	if Difficulty(task.Difficulty) != DifficultyEpic {
		t.Fatalf("difficulty=%d, want epic", task.Difficulty)
	}
	if task.CustomPoints != nil {
		t.Fatalf("custom points must clear when leaving custom")
	}
}

func TestSwapPoints(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.AddTask(ctx, "small", DifficultyTrivial, nil, false)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	pts := 70
	b, err := svc.AddTask(ctx, "huge", DifficultyCustom, &pts, false)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	if err := svc.SwapPoints(ctx, a, b); err != nil {
		t.Fatalf("SwapPoints: %v", err)
	}
	for _, task := range svc.Tasks() {
		switch task.ID {
		case a:
			if Difficulty(task.Difficulty) != DifficultyCustom || task.CustomPoints == nil || *task.CustomPoints != 70 {
				t.Fatalf("task a after swap: diff=%d custom=%v", task.Difficulty, task.CustomPoints)
			}
		case b:
			if Difficulty(task.Difficulty) != DifficultyTrivial || task.CustomPoints != nil {
				t.Fatalf("task b after swap: diff=%d custom=%v", task.Difficulty, task.CustomPoints)
			}
		}
	}
}

func TestReset(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.AddTask(ctx, "repeat me #repeat", DifficultyEpic, nil, false)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if err := svc.ToggleCompletion(ctx, id); err != nil {
		t.Fatalf("ToggleCompletion: %v", err)
	}
	if svc.Stats().TotalPoints == 0 {
		t.Fatalf("expected banked points before reset")
	}

	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if got := len(svc.Tasks()); got != 0 {
		t.Fatalf("tasks=%d after reset, want 0", got)
	}
	s := svc.Stats()
	if s.TotalPoints != 0 || s.Level != 1 {
		t.Fatalf("stats after reset=%+v, want zeroed", s)
	}
}

func TestOfflineAddAndDrain(t *testing.T) {
	dir := t.TempDir()
	queue := storage.NewOfflineQueue(filepath.Join(dir, "queue.json"))

	online := false
	svc, _ := newTestService(t,
		WithOfflineQueue(queue),
		WithOnlineCheck(func() bool { return online }),
	)
	ctx := context.Background()

	_, err := svc.AddTask(ctx, "queued task #later", DifficultyEasy, nil, false)
	var queued OfflineQueuedError
	if !errors.As(err, &queued) {
		t.Fatalf("err=%v, want OfflineQueuedError", err)
	}
	if queued.LocalID == "" {
		t.Fatalf("missing local id")
	}
	if len(svc.Tasks()) != 0 {
		t.Fatalf("offline add must not hit the store")
	}

	online = true
	flushed, err := svc.DrainOffline(ctx)
	if err != nil {
		t.Fatalf("DrainOffline: %v", err)
	}
	if flushed != 1 {
		t.Fatalf("flushed=%d, want 1", flushed)
	}
	if len(svc.Tasks()) != 1 {
		t.Fatalf("tasks=%d after drain, want 1", len(svc.Tasks()))
	}
	if n, _ := queue.Len(); n != 0 {
		t.Fatalf("queue len=%d after drain, want 0", n)
	}
}
