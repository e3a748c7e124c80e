// Package remindertest provides test helpers for the reminder package.
package remindertest

import (
	"context"
	"sync"

	"github.com/mobais/mobais/internal/reminder"
)

// MockStore is a configurable test double for reminder.Store.
// Unset funcs panic on call, except PingFunc which defaults to success.
// All methods are safe for concurrent use.
type MockStore struct {
	AddFunc  func(ctx context.Context, task, time string) (reminder.Reminder, error)
	ListFunc func(ctx context.Context) ([]reminder.Reminder, error)
	PingFunc func(ctx context.Context) error

	mu        sync.Mutex
	AddCalls  int
	ListCalls int
}

// Add delegates to AddFunc and tracks call count.
func (m *MockStore) Add(ctx context.Context, task, time string) (reminder.Reminder, error) {
	m.mu.Lock()
	m.AddCalls++
	m.mu.Unlock()
	return m.AddFunc(ctx, task, time)
}

// List delegates to ListFunc and tracks call count.
func (m *MockStore) List(ctx context.Context) ([]reminder.Reminder, error) {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()
	return m.ListFunc(ctx)
}

// Ping delegates to PingFunc.
func (m *MockStore) Ping(ctx context.Context) error {
	if m.PingFunc == nil {
		return nil
	}
	return m.PingFunc(ctx)
}

// Calls returns the current Add and List call counts.
func (m *MockStore) Calls() (add, list int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.AddCalls, m.ListCalls
}
