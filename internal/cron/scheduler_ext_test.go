package cron_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mobais/mobais/internal/cron"
	"github.com/mobais/mobais/internal/cron/crontest"
)

func TestScheduler_RunNowWithMockJob(t *testing.T) {
	t.Parallel()

	s := cron.NewScheduler(slog.New(slog.DiscardHandler))
	ok := &crontest.MockJob{NameVal: "ok", ScheduleVal: "@hourly"}
	failing := &crontest.MockJob{
		NameVal:     "failing",
		ScheduleVal: "@daily",
		RunFunc:     func(context.Context) error { return errors.New("boom") },
	}
	for _, j := range []cron.Job{ok, failing} {
		if err := s.RegisterJob(j); err != nil {
			t.Fatalf("RegisterJob(%s): %v", j.Name(), err)
		}
	}

	ctx := context.Background()
	if !s.RunNow(ctx, "ok") || !s.RunNow(ctx, "failing") {
		t.Fatal("RunNow returned false for a registered idle job")
	}
	if s.RunNow(ctx, "missing") {
		t.Error("RunNow returned true for an unknown job")
	}

	if ok.CallCount() != 1 || failing.CallCount() != 1 {
		t.Errorf("calls = %d/%d, want 1/1", ok.CallCount(), failing.CallCount())
	}
}
