package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/lib/pq"
	"github.com/mobais/mobais/internal/reminder"
)

var _ reminder.Store = (*Store)(nil)

// Store is a reminder.Store backed by PostgreSQL.
//
// Writers take a transaction-scoped advisory lock before inserting, so ids
// drawn from the BIGSERIAL sequence are committed in allocation order and
// List's ORDER BY id equals insertion order.
type Store struct {
	db      *sql.DB
	table   string
	lockKey int64

	insertSQL string
	listSQL   string
}

// Open connects to the database, verifies it with a ping and creates the
// table if needed.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	cfg.defaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("reminder.postgres: open: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("reminder.postgres: ping: %w", err)
	}

	s := newStore(db, cfg.Table)
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func newStore(db *sql.DB, table string) *Store {
	quoted := pq.QuoteIdentifier(table)
	h := fnv.New64a()
	_, _ = h.Write([]byte("mobais:" + table))

	return &Store{
		db:        db,
		table:     quoted,
		lockKey:   int64(h.Sum64()), //nolint:gosec // wraparound is fine for a lock key
		insertSQL: "INSERT INTO " + quoted + " (task, time) VALUES ($1, $2) RETURNING id",
		listSQL:   "SELECT id, task, time FROM " + quoted + " ORDER BY id",
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmt := `CREATE TABLE IF NOT EXISTS ` + s.table + ` (
		id   BIGSERIAL PRIMARY KEY,
		task TEXT NOT NULL CHECK (task <> ''),
		time TEXT NOT NULL
	)`
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("reminder.postgres: migrate: %w", err)
	}
	return nil
}

// Add implements reminder.Store. The row is committed before Add returns.
func (s *Store) Add(ctx context.Context, task, time string) (reminder.Reminder, error) {
	task, err := reminder.ValidateTask(task)
	if err != nil {
		return reminder.Reminder{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return reminder.Reminder{}, fmt.Errorf("reminder.postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", s.lockKey); err != nil {
		return reminder.Reminder{}, fmt.Errorf("reminder.postgres: lock: %w", describe(err))
	}

	var id int64
	if err := tx.QueryRowContext(ctx, s.insertSQL, task, time).Scan(&id); err != nil {
		return reminder.Reminder{}, fmt.Errorf("reminder.postgres: insert: %w", describe(err))
	}
	if err := tx.Commit(); err != nil {
		return reminder.Reminder{}, fmt.Errorf("reminder.postgres: commit: %w", describe(err))
	}

	return reminder.Reminder{ID: id, Task: task, Time: time}, nil
}

// List implements reminder.Store.
func (s *Store) List(ctx context.Context) ([]reminder.Reminder, error) {
	rows, err := s.db.QueryContext(ctx, s.listSQL)
	if err != nil {
		return nil, fmt.Errorf("reminder.postgres: list: %w", describe(err))
	}
	defer func() { _ = rows.Close() }()

	var out []reminder.Reminder
	for rows.Next() {
		var r reminder.Reminder
		if err := rows.Scan(&r.ID, &r.Task, &r.Time); err != nil {
			return nil, fmt.Errorf("reminder.postgres: scan: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reminder.postgres: list: %w", describe(err))
	}
	return out, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// describe adds the SQLSTATE condition name to server errors, keeping the
// original error in the chain.
func describe(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	return fmt.Errorf("%s (%s): %w", pqErr.Code.Name(), pqErr.Code, err)
}
