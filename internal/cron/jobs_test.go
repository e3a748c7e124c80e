package cron

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mobais/mobais/internal/reminder"
	"github.com/mobais/mobais/internal/reminder/remindertest"
)

func TestReminderDigestJob_Defaults(t *testing.T) {
	t.Parallel()

	j := &ReminderDigestJob{}
	if j.Name() != "reminder_digest" {
		t.Errorf("Name() = %q", j.Name())
	}
	if j.Schedule() != DefaultDigestSchedule {
		t.Errorf("Schedule() = %q", j.Schedule())
	}

	j.ScheduleExpr = "*/30 * * * *"
	if j.Schedule() != "*/30 * * * *" {
		t.Errorf("Schedule() = %q", j.Schedule())
	}
}

func TestReminderDigestJob_Notifies(t *testing.T) {
	t.Parallel()

	store := reminder.NewMemoryStore()
	ctx := context.Background()
	if _, err := store.Add(ctx, "buy milk", "2026-01-01 10:00:00"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Add(ctx, "call mom", "2026-01-01 11:00:00"); err != nil {
		t.Fatal(err)
	}

	var got string
	j := &ReminderDigestJob{
		Store: store,
		Notify: func(_ context.Context, digest string) error {
			got = digest
			return nil
		},
	}
	if err := j.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "You have 2 reminders:\n1. buy milk (set 2026-01-01 10:00:00)\n2. call mom (set 2026-01-01 11:00:00)"
	if got != want {
		t.Errorf("digest = %q, want %q", got, want)
	}
}

func TestReminderDigestJob_EmptyStoreIsSilent(t *testing.T) {
	t.Parallel()

	called := false
	j := &ReminderDigestJob{
		Store:  reminder.NewMemoryStore(),
		Notify: func(context.Context, string) error { called = true; return nil },
	}
	if err := j.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("Notify should not be called without reminders")
	}
}

func TestReminderDigestJob_ListError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk gone")
	store := &remindertest.MockStore{
		ListFunc: func(context.Context) ([]reminder.Reminder, error) { return nil, boom },
	}
	j := &ReminderDigestJob{Store: store, Logger: slog.Default()}

	if err := j.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Run() = %v, want wrapped %v", err, boom)
	}
}

func TestDigest_Singular(t *testing.T) {
	t.Parallel()

	got := Digest([]reminder.Reminder{{ID: 1, Task: "stretch", Time: "2026-01-01 08:00:00"}})
	if got != "You have 1 reminder:\n1. stretch (set 2026-01-01 08:00:00)" {
		t.Errorf("Digest = %q", got)
	}
}
