package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mobais/mobais/internal/intent"
	"github.com/mobais/mobais/internal/reminder"
)

// Deps are the collaborators of the default command table.
type Deps struct {
	Weather   WeatherReporter
	Search    WebSearcher
	Reminders reminder.Store

	// Now defaults to time.Now.
	Now func() time.Time

	// TimeLayout formats reminder timestamps. Defaults to reminder.TimeLayout.
	TimeLayout string
}

// DefaultCommands returns the command table for the default intents.
func DefaultCommands(d Deps) []Command {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	layout := d.TimeLayout
	if layout == "" {
		layout = reminder.TimeLayout
	}

	return []Command{
		{
			Intent:   intent.SetAlarm,
			Required: []string{intent.ParamTime},
			Run: func(_ context.Context, p map[string]string) (string, error) {
				return fmt.Sprintf("Alarm set for %s.", p[intent.ParamTime]), nil
			},
		},
		{
			Intent: intent.Weather,
			Run: func(ctx context.Context, _ map[string]string) (string, error) {
				return d.Weather.Weather(ctx), nil
			},
		},
		{
			Intent:   intent.OpenApp,
			Required: []string{intent.ParamApp},
			Run: func(_ context.Context, p map[string]string) (string, error) {
				return fmt.Sprintf("Opening %s... (Not really, just a demo!)", p[intent.ParamApp]), nil
			},
		},
		{
			Intent:   intent.Reminder,
			Required: []string{intent.ParamTask},
			Run: func(ctx context.Context, p map[string]string) (string, error) {
				r, err := d.Reminders.Add(ctx, p[intent.ParamTask], now().Format(layout))
				if err != nil {
					return "", fmt.Errorf("%w: %w", ErrStoreWrite, err)
				}
				return "Reminder set: " + r.Task, nil
			},
		},
		{
			Intent:   intent.SearchWeb,
			Required: []string{intent.ParamQuery},
			Run: func(ctx context.Context, p map[string]string) (string, error) {
				return d.Search.Search(ctx, p[intent.ParamQuery]), nil
			},
		},
	}
}

// NewDefaultExecutor builds an Executor over DefaultCommands.
func NewDefaultExecutor(d Deps) (*Executor, error) {
	if d.Weather == nil || d.Search == nil || d.Reminders == nil {
		return nil, errors.New("command: weather, search and reminder collaborators are required")
	}
	return NewExecutor(DefaultCommands(d)...)
}
