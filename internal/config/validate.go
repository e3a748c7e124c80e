package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mobais/mobais/internal/assistant"
	"github.com/mobais/mobais/internal/core"
	"github.com/mobais/mobais/internal/cron"
	"gopkg.in/yaml.v3"
)

// Validate checks the structural validity of a Config: version, module
// IDs against the registry, assistant settings and the digest schedule.
// All problems are reported together.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Version == "" {
		errs = append(errs, errors.New("config: version field is required"))
	} else if cfg.Version != "1" {
		errs = append(errs, fmt.Errorf("config: unsupported version %q (supported: \"1\")", cfg.Version))
	}

	errs = append(errs, validateModules(cfg.Modules)...)
	errs = append(errs, validateAssistant(cfg.Assistant)...)

	if _, err := ParseLevel(cfg.Logging.Level); err != nil {
		errs = append(errs, err)
	}

	if cfg.Digest.Schedule != "" {
		if err := cron.ValidateSchedule(cfg.Digest.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("config: digest.schedule: %w", err))
		}
	}
	if cfg.Digest.QuietHours != "" {
		if _, err := cron.ParseQuietHours(cfg.Digest.QuietHours); err != nil {
			errs = append(errs, fmt.Errorf("config: digest.quiet_hours: %w", err))
		}
	}

	if cfg.Telemetry.Tracing.Enabled && cfg.Telemetry.Tracing.Endpoint == "" {
		errs = append(errs, errors.New("config: telemetry.tracing.endpoint is required when tracing is enabled"))
	}

	return errors.Join(errs...)
}

func validateModules(modules map[string]yaml.Node) []error {
	var errs []error
	for _, id := range Resolve(&Config{Modules: modules}) {
		if _, ok := core.GetModule(id); !ok {
			errs = append(errs, fmt.Errorf("config: unknown module %q", id))
		}
	}

	var stores []string
	for _, info := range core.GetModulesByNamespace("reminder") {
		if _, ok := modules[string(info.ID)]; ok {
			stores = append(stores, string(info.ID))
		}
	}
	if len(stores) > 1 {
		errs = append(errs, fmt.Errorf("config: at most one reminder store may be configured, got %s", strings.Join(stores, ", ")))
	}
	return errs
}

func validateAssistant(a AssistantConfig) []error {
	var errs []error
	if _, ok := assistant.LookupCharacter(a.Character); !ok {
		errs = append(errs, fmt.Errorf("config: assistant.character: unknown mode %q (known: %s)",
			a.Character, strings.Join(assistant.CharacterNames(), ", ")))
	}
	if strings.TrimSpace(a.WakeWord) == "" {
		errs = append(errs, errors.New("config: assistant.wake_word must not be blank"))
	}
	return errs
}

// ParseLevel maps a config level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: logging.level: %w", err)
	}
	return l, nil
}
