// Package reminder defines the append-only reminder record and the store
// contract shared by the persistent backends.
package reminder

import (
	"context"
	"errors"
	"strings"
)

// TimeLayout is the fixed format of Reminder.Time.
const TimeLayout = "2006-01-02 15:04:05"

// ServiceName is the AppContext key under which the configured store
// module publishes its Store.
const ServiceName = "reminder.store"

// ErrEmptyTask is returned by Add when the task is blank.
var ErrEmptyTask = errors.New("reminder: task must not be empty")

// Reminder is a stored (task, scheduled time) record.
type Reminder struct {
	ID   int64  `json:"id"`
	Task string `json:"task"`
	Time string `json:"time"`
}

// Store is an append-only collection of reminders.
// Implementations must be safe for concurrent use and serialize writes so
// that identifiers are strictly increasing in insertion order.
type Store interface {
	// Add durably commits a reminder and returns it with its assigned ID.
	// It must not return nil error unless the record is committed.
	Add(ctx context.Context, task, time string) (Reminder, error)

	// List returns every reminder in insertion order.
	List(ctx context.Context) ([]Reminder, error)

	// Ping reports whether the store can currently be reached.
	Ping(ctx context.Context) error
}

// ValidateTask trims task and rejects blank values.
func ValidateTask(task string) (string, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return "", ErrEmptyTask
	}
	return task, nil
}
