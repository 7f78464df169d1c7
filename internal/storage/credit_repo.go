package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreditRepo is the ledger of points credited by repeating tasks.
type CreditRepo struct {
	db *sql.DB
}

func NewCreditRepo(db *sql.DB) *CreditRepo {
	return &CreditRepo{db: db}
}

func (r *CreditRepo) AddCredit(ctx context.Context, taskID int64, points int, creditedAt time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO repeat_credits (task_id, points, credited_at)
		VALUES (?, ?, ?)
	`, taskID, points, creditedAt)
	if err != nil {
		return 0, fmt.Errorf("credit insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("credit last insert id: %w", err)
	}
	return id, nil
}

func (r *CreditRepo) TotalCredits(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(points), 0) FROM repeat_credits`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("credit total: %w", err)
	}
	return n, nil
}

func (r *CreditRepo) ListByTask(ctx context.Context, taskID int64) ([]RepeatCredit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, points, credited_at
		FROM repeat_credits
		WHERE task_id = ?
		ORDER BY credited_at ASC
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("credit list: %w", err)
	}
	defer rows.Close()

	var out []RepeatCredit
	for rows.Next() {
		var c RepeatCredit
		if err := rows.Scan(&c.ID, &c.TaskID, &c.Points, &c.CreditedAt); err != nil {
			return nil, fmt.Errorf("credit scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("credit rows: %w", err)
	}
	return out, nil
}

// Reset clears the ledger (used by the bulk progress reset).
func (r *CreditRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM repeat_credits`); err != nil {
		return fmt.Errorf("credit reset: %w", err)
	}
	return nil
}
