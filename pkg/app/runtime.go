// Package app wires configuration, modules and the assistant into a
// runnable process. The CLI and the OS service share it.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mobais/mobais/internal/assistant"
	"github.com/mobais/mobais/internal/config"
	"github.com/mobais/mobais/internal/core"
	"github.com/mobais/mobais/internal/cron"
	"github.com/mobais/mobais/internal/security"
	"github.com/mobais/mobais/internal/telemetry"

	// The default reminder store must always be available, and the
	// fallback provider must be loadable from OPENAI_API_KEY alone.
	_ "github.com/mobais/mobais/modules/provider/openai"
	_ "github.com/mobais/mobais/modules/reminder/sqlite"
)

// Params configures Build and Run.
type Params struct {
	// ConfigPath is an explicit configuration file. Empty searches the
	// standard locations and falls back to built-in defaults.
	ConfigPath string

	// DataDir overrides config.DefaultDataDir.
	DataDir string

	// Version, Commit and Date are injected at build time via ldflags.
	Version string
	Commit  string
	Date    string

	// LogLevel overrides logging.level when set.
	LogLevel string

	// LogOutput receives process logs. Defaults to os.Stderr.
	LogOutput io.Writer

	// Ephemeral keeps reminders in memory and ignores configured stores.
	Ephemeral bool
}

// Runtime is a fully wired assistant and the modules behind it.
type Runtime struct {
	Config      *config.Config
	ConfigPath  string
	Logger      *slog.Logger
	Redactor    *security.Redactor
	Credentials *security.CredentialStore
	Metrics     *telemetry.Metrics
	Assistant   *assistant.Assistant
	WakeWord    assistant.WakeWord

	// Scheduler runs the reminder digest; nil when digest.schedule is empty.
	Scheduler *cron.Scheduler

	app     *core.App
	closers []func(context.Context) error
}

// Build loads the configuration and provisions every module. Modules are
// not started; call Start for that, and Close in every case.
func Build(ctx context.Context, p Params) (*Runtime, error) {
	cfg, cfgPath, err := LoadConfig(p.ConfigPath)
	if err != nil {
		return nil, err
	}

	levelName := cfg.Logging.Level
	if p.LogLevel != "" {
		levelName = p.LogLevel
	}
	level, err := config.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	out := p.LogOutput
	if out == nil {
		out = os.Stderr
	}

	// Security foundation: every credential a module registers is redacted
	// from logs from then on.
	redactor := security.NewRedactor()
	creds := security.NewCredentialStore()
	creds.Bind(redactor)
	logger := security.NewLogger(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}), redactor)

	rt := &Runtime{
		Config:      cfg,
		ConfigPath:  cfgPath,
		Logger:      logger,
		Redactor:    redactor,
		Credentials: creds,
		Metrics:     telemetry.NewMetrics(),
		WakeWord:    assistant.NewWakeWord(cfg.Assistant.WakeWord),
	}

	shutdown, err := telemetry.SetupTracing(ctx, telemetry.TracingConfig{
		Enabled:     cfg.Telemetry.Tracing.Enabled,
		Endpoint:    cfg.Telemetry.Tracing.Endpoint,
		Insecure:    cfg.Telemetry.Tracing.Insecure,
		ServiceName: "mobais",
		Version:     p.Version,
	})
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, shutdown)

	dataDir := p.DataDir
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}
	if err := ensureDir(dataDir); err != nil {
		_ = rt.closeAll(ctx)
		return nil, fmt.Errorf("app: data dir: %w", err)
	}

	appCtx := core.NewAppContext(logger, dataDir).WithModuleConfigs(moduleConfigs(cfg))
	appCtx.RegisterService(security.CredentialsService, creds)
	appCtx.RegisterService(security.RedactorService, redactor)
	appCtx.RegisterService(telemetry.MetricsService, rt.Metrics)
	appCtx.RegisterService("config.path", cfgPath)

	rt.app = core.NewApp(appCtx)
	ids := moduleIDs(cfg, p.Ephemeral)
	if err := rt.app.LoadModules(ids); err != nil {
		_ = rt.closeAll(ctx)
		return nil, err
	}

	if err := rt.wire(appCtx, ids); err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}

	logger.Info("mobais ready",
		"version", p.Version,
		"config", cfgPath,
		"character", rt.Assistant.Character().Name,
		"modules", len(ids),
	)
	return rt, nil
}

// Start starts every module, in configuration order.
func (rt *Runtime) Start() error {
	return rt.app.Start()
}

// Close stops modules in reverse order and releases tracing and history
// resources. It is safe to call on a runtime that was never started.
func (rt *Runtime) Close(ctx context.Context) error {
	if rt.app != nil {
		rt.app.Stop()
	}
	return rt.closeAll(ctx)
}

func (rt *Runtime) closeAll(ctx context.Context) error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}
