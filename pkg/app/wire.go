package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mobais/mobais/internal/assistant"
	"github.com/mobais/mobais/internal/command"
	"github.com/mobais/mobais/internal/core"
	"github.com/mobais/mobais/internal/cron"
	"github.com/mobais/mobais/internal/intent"
	"github.com/mobais/mobais/internal/provider"
	"github.com/mobais/mobais/internal/reminder"
	"github.com/mobais/mobais/internal/security"
	"github.com/mobais/mobais/modules/search/serpapi"
	"github.com/mobais/mobais/modules/weather/openweathermap"
)

// digestModule wraps the cron scheduler so it participates in the App
// lifecycle.
type digestModule struct {
	scheduler *cron.Scheduler
}

func (m *digestModule) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{ID: "cron.digest"}
}

func (m *digestModule) Start() error { return m.scheduler.Start() }

func (m *digestModule) Stop(ctx context.Context) error { return m.scheduler.Stop(ctx) }

// wire resolves collaborators from the loaded modules, builds the
// assistant and registers it for the gateway and other late binders.
// Must be called after LoadModules and before Start.
func (rt *Runtime) wire(appCtx *core.AppContext, ids []string) error {
	logger := rt.Logger
	cfg := rt.Config

	store := resolveStore(appCtx, logger)
	weather := resolveWeather(appCtx, logger)
	search := resolveSearch(appCtx, logger)

	exec, err := command.NewDefaultExecutor(command.Deps{
		Weather:    weather,
		Search:     search,
		Reminders:  store,
		TimeLayout: cfg.Assistant.TimeLayout,
	})
	if err != nil {
		return err
	}

	var fallback assistant.Fallback
	if p := rt.findProvider(ids); p != nil {
		fallback = &assistant.LLMFallback{Provider: p}
		logger.Info("language model fallback enabled", "model", p.ModelName())
	} else {
		logger.Warn("no provider module configured, general questions will get an apology")
	}

	sinks := []assistant.Sink{&assistant.LogSink{Logger: logger.With("component", "history")}}
	if cfg.Logging.File != "" {
		sink, err := rt.historySink(cfg.Logging.File)
		if err != nil {
			return err
		}
		sinks = append(sinks, sink)
	}

	a, err := assistant.New(assistant.Config{
		Router:    intent.NewDefaultRouter(),
		Executor:  exec,
		Reminders: store,
		Fallback:  fallback,
		Character: cfg.Assistant.Character,
		Sinks:     sinks,
		Metrics:   rt.Metrics,
		Logger:    logger.With("component", "assistant"),
	})
	if err != nil {
		return err
	}
	rt.Assistant = a
	appCtx.RegisterService(assistant.ServiceName, a)

	if cfg.Digest.Schedule != "" {
		job := &cron.ReminderDigestJob{
			Store:        store,
			Logger:       logger,
			ScheduleExpr: cfg.Digest.Schedule,
		}
		if cfg.Digest.QuietHours != "" {
			q, err := cron.ParseQuietHours(cfg.Digest.QuietHours)
			if err != nil {
				return err
			}
			job.Quiet = &q
		}
		s := cron.NewScheduler(logger.With("component", "cron"))
		if err := s.RegisterJob(job); err != nil {
			return err
		}
		rt.Scheduler = s
		rt.app.AppendModule("cron.digest", &digestModule{scheduler: s})
	}
	return nil
}

func (rt *Runtime) findProvider(ids []string) provider.Provider {
	for _, id := range ids {
		mod, ok := rt.app.Module(id)
		if !ok {
			continue
		}
		if p, ok := mod.(provider.Provider); ok {
			return p
		}
	}
	return nil
}

// historySink appends one JSON record per turn to path. Values pass
// through the redactor like every other log line.
func (rt *Runtime) historySink(path string) (assistant.Sink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := ensureDir(dir); err != nil {
			return nil, fmt.Errorf("app: history dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("app: open history file: %w", err)
	}
	rt.closers = append(rt.closers, func(context.Context) error { return f.Close() })

	logger := security.NewLogger(slog.NewJSONHandler(f, nil), rt.Redactor)
	return &assistant.LogSink{Logger: logger}, nil
}

func resolveStore(appCtx *core.AppContext, logger *slog.Logger) reminder.Store {
	if svc, ok := appCtx.Service(reminder.ServiceName); ok {
		if s, ok := svc.(reminder.Store); ok {
			return s
		}
	}
	logger.Warn("no reminder store module loaded, reminders are kept in memory")
	return reminder.NewMemoryStore()
}

func resolveWeather(appCtx *core.AppContext, logger *slog.Logger) command.WeatherReporter {
	if svc, ok := appCtx.Service(command.WeatherService); ok {
		if w, ok := svc.(command.WeatherReporter); ok {
			return w
		}
	}
	return openweathermap.New(openweathermap.Config{}, logger)
}

func resolveSearch(appCtx *core.AppContext, logger *slog.Logger) command.WebSearcher {
	if svc, ok := appCtx.Service(command.SearchService); ok {
		if s, ok := svc.(command.WebSearcher); ok {
			return s
		}
	}
	return serpapi.New(serpapi.Config{}, logger)
}
