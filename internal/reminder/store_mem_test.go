package reminder_test

import (
	"context"
	"testing"

	"github.com/mobais/mobais/internal/reminder"
	"github.com/mobais/mobais/internal/reminder/remindertest"
)

func TestMemoryStore_Contract(t *testing.T) {
	remindertest.RunStoreSuite(t, func(_ *testing.T) reminder.Store {
		return reminder.NewMemoryStore()
	})
}

func TestMemoryStore_ListReturnsCopy(t *testing.T) {
	s := reminder.NewMemoryStore()
	ctx := context.Background()
	if _, err := s.Add(ctx, "call mom", "2026-10-17 09:00:00"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, _ := s.List(ctx)
	got[0].Task = "mutated"

	again, _ := s.List(ctx)
	if again[0].Task != "call mom" {
		t.Errorf("List exposed internal storage: %q", again[0].Task)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestMemoryStore_TrimsTask(t *testing.T) {
	s := reminder.NewMemoryStore()
	r, err := s.Add(context.Background(), "  call mom  ", "2026-10-17 09:00:00")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if r.Task != "call mom" || r.ID != 1 {
		t.Errorf("Add = %+v, want id 1 task %q", r, "call mom")
	}
}
