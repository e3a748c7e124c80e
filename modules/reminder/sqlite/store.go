package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mobais/mobais/internal/reminder"
)

var _ reminder.Store = (*Store)(nil)

// Store is a reminder.Store backed by a SQLite database.
type Store struct {
	db *sql.DB
}

// Add implements reminder.Store. The row is committed before Add returns.
func (s *Store) Add(ctx context.Context, task, time string) (reminder.Reminder, error) {
	task, err := reminder.ValidateTask(task)
	if err != nil {
		return reminder.Reminder{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return reminder.Reminder{}, fmt.Errorf("reminder.sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, "INSERT INTO reminders (task, time) VALUES (?, ?)", task, time)
	if err != nil {
		return reminder.Reminder{}, fmt.Errorf("reminder.sqlite: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return reminder.Reminder{}, fmt.Errorf("reminder.sqlite: last insert id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return reminder.Reminder{}, fmt.Errorf("reminder.sqlite: commit: %w", err)
	}

	return reminder.Reminder{ID: id, Task: task, Time: time}, nil
}

// List implements reminder.Store.
func (s *Store) List(ctx context.Context) ([]reminder.Reminder, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, task, time FROM reminders ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("reminder.sqlite: list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []reminder.Reminder
	for rows.Next() {
		var r reminder.Reminder
		if err := rows.Scan(&r.ID, &r.Task, &r.Time); err != nil {
			return nil, fmt.Errorf("reminder.sqlite: scan: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reminder.sqlite: list: %w", err)
	}
	return out, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
