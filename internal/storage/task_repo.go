package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) CreateTask(ctx context.Context, in TaskInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (text, difficulty, custom_points, completed, is_wishlist, position)
		VALUES (?, ?, ?, ?, ?, ?)
	`, in.Text, in.Difficulty, in.CustomPoints, boolToInt(in.Completed), boolToInt(in.Wishlist), in.Position)
	if err != nil {
		return 0, fmt.Errorf("task insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	return id, nil
}

func (r *TaskRepo) GetTask(ctx context.Context, id int64) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, text, difficulty, custom_points, completed, is_wishlist, position, created_at
		FROM tasks
		WHERE id = ?
	`, id)
	return scanTask(row)
}

func (r *TaskRepo) ListTasks(ctx context.Context) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, text, difficulty, custom_points, completed, is_wishlist, position, created_at
		FROM tasks
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

func (r *TaskRepo) UpdateTask(ctx context.Context, id int64, patch TaskPatch) error {
	set, args := patchClauses(patch)
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("task update: %w", err)
	}
	return nil
}

func (r *TaskRepo) DeleteTask(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("task delete: %w", err)
	}
	return nil
}

// BatchUpdate applies all patches in a single transaction. Either every
// patch lands or none of them do.
func (r *TaskRepo) BatchUpdate(ctx context.Context, updates []TaskUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, u := range updates {
			set, args := patchClauses(u.Patch)
			if len(set) == 0 {
				continue
			}
			args = append(args, u.ID)
			if _, err := tx.ExecContext(ctx, `UPDATE tasks SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...); err != nil {
				return fmt.Errorf("batch update task %d: %w", u.ID, err)
			}
		}
		return nil
	})
}

// BatchDelete removes all given tasks in a single transaction.
func (r *TaskRepo) BatchDelete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
				return fmt.Errorf("batch delete task %d: %w", id, err)
			}
		}
		return nil
	})
}

func patchClauses(p TaskPatch) ([]string, []any) {
	var set []string
	var args []any
	if p.Text != nil {
		set = append(set, "text = ?")
		args = append(args, *p.Text)
	}
	if p.Difficulty != nil {
		set = append(set, "difficulty = ?")
		args = append(args, *p.Difficulty)
	}
	switch {
	case p.ClearCustomPoints:
		set = append(set, "custom_points = NULL")
	case p.CustomPoints != nil:
		set = append(set, "custom_points = ?")
		args = append(args, *p.CustomPoints)
	}
	if p.Completed != nil {
		set = append(set, "completed = ?")
		args = append(args, boolToInt(*p.Completed))
	}
	if p.Wishlist != nil {
		set = append(set, "is_wishlist = ?")
		args = append(args, boolToInt(*p.Wishlist))
	}
	if p.Position != nil {
		set = append(set, "position = ?")
		args = append(args, *p.Position)
	}
	return set, args
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*Task, error) {
	var (
		id           int64
		text         string
		difficulty   int
		customPoints sql.NullInt64
		completed    int
		wishlist     int
		position     sql.NullInt64
		createdAt    time.Time
	)

	if err := row.Scan(&id, &text, &difficulty, &customPoints, &completed, &wishlist, &position, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}

	var custom *int
	if customPoints.Valid {
		v := int(customPoints.Int64)
		custom = &v
	}
	var pos *int
	if position.Valid {
		v := int(position.Int64)
		pos = &v
	}

	return &Task{
		ID:           id,
		Text:         text,
		Difficulty:   difficulty,
		CustomPoints: custom,
		Completed:    completed != 0,
		Wishlist:     wishlist != 0,
		Position:     pos,
		CreatedAt:    createdAt,
	}, nil
}
