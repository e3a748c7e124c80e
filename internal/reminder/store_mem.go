package reminder

import (
	"context"
	"slices"
	"sync"
)

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-process Store. Records live as long as the value.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	items  []Reminder
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Add implements Store.
func (s *MemoryStore) Add(_ context.Context, task, time string) (Reminder, error) {
	task, err := ValidateTask(task)
	if err != nil {
		return Reminder{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := Reminder{ID: s.nextID, Task: task, Time: time}
	s.nextID++
	s.items = append(s.items, r)
	return r, nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context) ([]Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items), nil
}

// Ping implements Store. An in-memory store is always reachable.
func (s *MemoryStore) Ping(_ context.Context) error { return nil }

// Len returns the number of stored reminders.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
