package root

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/victordelrosal/epictaskquest/internal/alarm"
	"github.com/victordelrosal/epictaskquest/internal/engine"
	"github.com/victordelrosal/epictaskquest/internal/storage"
	"github.com/victordelrosal/epictaskquest/internal/ui"
)

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	path, err := storage.ResolveDBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	svc, _, cleanup, err := openServiceWithConfig(ctx)
	return svc, cleanup, err
}

func openServiceWithConfig(ctx context.Context) (*engine.Service, *storage.ConfigRepo, func(), error) {
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	queuePath, err := storage.ResolveQueuePath()
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	sched := alarm.NewScheduler(func(taskID int64, text string) {
		fmt.Fprintln(os.Stderr, ui.Warn.Render(fmt.Sprintf("%s task %d: %s", ui.IconAlarm, taskID, text)))
	})

	svc := engine.NewService(
		storage.NewTaskRepo(db),
		storage.NewCreditRepo(db),
		engine.WithAlarms(sched),
		engine.WithOfflineQueue(storage.NewOfflineQueue(queuePath)),
	)
	cfg := storage.NewConfigRepo(db, storage.DefaultUserKey)
	closeAll := func() {
		sched.Stop()
		cleanup()
	}
	return svc, cfg, closeAll, nil
}
