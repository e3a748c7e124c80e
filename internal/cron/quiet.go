package cron

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidQuiet reports a malformed quiet-hours window.
var ErrInvalidQuiet = errors.New("cron: invalid quiet hours")

// QuietHours is a daily window, as offsets from local midnight, during
// which digests are not delivered. Start after End wraps past midnight.
type QuietHours struct {
	Start time.Duration
	End   time.Duration
}

// ParseQuietHours parses "HH:MM-HH:MM" (24-hour clock), e.g. "22:30-07:00".
func ParseQuietHours(s string) (QuietHours, error) {
	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return QuietHours{}, fmt.Errorf("%w: expected HH:MM-HH:MM, got %q", ErrInvalidQuiet, s)
	}
	start, err := clockOffset(from)
	if err != nil {
		return QuietHours{}, fmt.Errorf("%w: start: %w", ErrInvalidQuiet, err)
	}
	end, err := clockOffset(to)
	if err != nil {
		return QuietHours{}, fmt.Errorf("%w: end: %w", ErrInvalidQuiet, err)
	}
	if start == end {
		return QuietHours{}, fmt.Errorf("%w: empty window %q", ErrInvalidQuiet, s)
	}
	return QuietHours{Start: start, End: end}, nil
}

func clockOffset(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// Contains reports whether t's wall clock falls inside the window.
func (q QuietHours) Contains(t time.Time) bool {
	offset := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second

	if q.Start < q.End {
		return offset >= q.Start && offset < q.End
	}
	return offset >= q.Start || offset < q.End
}

// String renders the window in the form ParseQuietHours accepts.
func (q QuietHours) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		int(q.Start.Hours()), int(q.Start.Minutes())%60,
		int(q.End.Hours()), int(q.End.Minutes())%60)
}
