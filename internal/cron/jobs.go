package cron

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mobais/mobais/internal/reminder"
)

// DefaultDigestSchedule runs the digest every morning at 09:00.
const DefaultDigestSchedule = "0 9 * * *"

// Lister is the read side of a reminder store.
type Lister interface {
	List(ctx context.Context) ([]reminder.Reminder, error)
}

// ReminderDigestJob periodically summarizes every stored reminder and
// hands the text to Notify.
type ReminderDigestJob struct {
	Store        Lister
	Logger       *slog.Logger
	ScheduleExpr string // empty = DefaultDigestSchedule

	// Notify receives the digest. When nil the digest is logged.
	Notify func(ctx context.Context, digest string) error

	// Quiet suppresses delivery inside the window; nil never suppresses.
	Quiet *QuietHours
	Now   func() time.Time
}

var _ Job = (*ReminderDigestJob)(nil)

// Name implements Job.
func (j *ReminderDigestJob) Name() string { return "reminder_digest" }

// Schedule implements Job.
func (j *ReminderDigestJob) Schedule() string {
	if j.ScheduleExpr != "" {
		return j.ScheduleExpr
	}
	return DefaultDigestSchedule
}

// Run lists the reminders and delivers the digest. Nothing is delivered
// when there are no reminders or during quiet hours.
func (j *ReminderDigestJob) Run(ctx context.Context) error {
	if j.Quiet != nil {
		now := time.Now
		if j.Now != nil {
			now = j.Now
		}
		if j.Quiet.Contains(now()) {
			if j.Logger != nil {
				j.Logger.Debug("cron: reminder digest skipped, quiet hours", "window", j.Quiet.String())
			}
			return nil
		}
	}

	items, err := j.Store.List(ctx)
	if err != nil {
		return fmt.Errorf("cron: reminder digest: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	digest := Digest(items)
	if j.Notify != nil {
		return j.Notify(ctx, digest)
	}
	if j.Logger != nil {
		j.Logger.Info("cron: reminder digest", "count", len(items), "digest", digest)
	}
	return nil
}

// Digest renders reminders as a numbered, one-per-line summary.
func Digest(items []reminder.Reminder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You have %d reminder", len(items))
	if len(items) != 1 {
		b.WriteByte('s')
	}
	b.WriteString(":")
	for i, r := range items {
		fmt.Fprintf(&b, "\n%d. %s (set %s)", i+1, r.Task, r.Time)
	}
	return b.String()
}
