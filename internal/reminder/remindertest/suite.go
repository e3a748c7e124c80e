package remindertest

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/mobais/mobais/internal/reminder"
)

// RunStoreSuite exercises the reminder.Store contract against the store
// returned by newStore. Each subtest gets a fresh, empty store.
func RunStoreSuite(t *testing.T, newStore func(t *testing.T) reminder.Store) {
	t.Helper()

	t.Run("EmptyList", func(t *testing.T) {
		s := newStore(t)
		got, err := s.List(context.Background())
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("List on empty store = %v, want none", got)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		if err := newStore(t).Ping(context.Background()); err != nil {
			t.Errorf("Ping on fresh store: %v", err)
		}
	})

	t.Run("InsertionOrderAndIDs", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		tasks := []string{"call mom", "buy milk", "water the plants"}

		var added []reminder.Reminder
		for i, task := range tasks {
			r, err := s.Add(ctx, task, fmt.Sprintf("2026-10-17 09:00:0%d", i))
			if err != nil {
				t.Fatalf("Add(%q): %v", task, err)
			}
			if r.Task != task {
				t.Errorf("Add returned task %q, want %q", r.Task, task)
			}
			if len(added) > 0 && r.ID <= added[len(added)-1].ID {
				t.Errorf("id %d not greater than previous %d", r.ID, added[len(added)-1].ID)
			}
			added = append(added, r)
		}

		got, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if !slices.Equal(got, added) {
			t.Errorf("List = %+v, want %+v", got, added)
		}
	})

	t.Run("ListIsIdempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		if _, err := s.Add(ctx, "stretch", "2026-10-17 10:00:00"); err != nil {
			t.Fatalf("Add: %v", err)
		}

		first, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		second, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if !slices.Equal(first, second) {
			t.Errorf("List not idempotent: %+v vs %+v", first, second)
		}
	})

	t.Run("EmptyTaskRejected", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		for _, task := range []string{"", "   "} {
			if _, err := s.Add(ctx, task, "2026-10-17 10:00:00"); !errors.Is(err, reminder.ErrEmptyTask) {
				t.Errorf("Add(%q) err = %v, want ErrEmptyTask", task, err)
			}
		}
		got, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("rejected adds must not persist, got %+v", got)
		}
	})

	t.Run("ConcurrentAdds", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		const n = 20

		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := s.Add(ctx, fmt.Sprintf("task %d", i), "2026-10-17 11:00:00"); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Fatalf("concurrent Add: %v", err)
		}

		got, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(got) != n {
			t.Fatalf("List returned %d reminders, want %d", len(got), n)
		}
		for i := 1; i < len(got); i++ {
			if got[i].ID <= got[i-1].ID {
				t.Errorf("ids not strictly increasing at %d: %d then %d", i, got[i-1].ID, got[i].ID)
			}
		}
	})
}
