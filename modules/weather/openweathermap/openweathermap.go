// Package openweathermap implements the weather.openweathermap module.
// Real lookups are out of scope: with an API key configured it answers
// with a fixed mock forecast, without one it says so.
package openweathermap

import (
	"context"
	"log/slog"

	"github.com/mobais/mobais/internal/command"
	"github.com/mobais/mobais/internal/core"
	"github.com/mobais/mobais/internal/security"
	"gopkg.in/yaml.v3"
)

func init() {
	core.RegisterModule(&Module{})
}

var (
	_ command.WeatherReporter = (*Reporter)(nil)
	_ core.Configurable       = (*Module)(nil)
	_ core.Provisioner        = (*Module)(nil)
)

// Replies.
const (
	MissingKeyReply = "Weather API key not set."
	MockReply       = "The weather is sunny and pleasant! (This is a mock response.)"
)

// Config holds the weather collaborator configuration.
type Config struct {
	APIKey string `yaml:"api_key"`
	City   string `yaml:"city"`
}

// Reporter answers weather questions.
type Reporter struct {
	config Config
	logger *slog.Logger
}

// New returns a Reporter. A nil logger discards debug output.
func New(cfg Config, logger *slog.Logger) *Reporter {
	if cfg.City == "" {
		cfg.City = "London"
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reporter{config: cfg, logger: logger}
}

// Weather implements command.WeatherReporter.
func (r *Reporter) Weather(_ context.Context) string {
	if r.config.APIKey == "" {
		return MissingKeyReply
	}
	r.logger.Debug("weather lookup", "city", r.config.City, "mock", true)
	return MockReply
}

// Module wires a Reporter into the application.
type Module struct {
	config Config
}

// ModuleInfo implements core.Module.
func (m *Module) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "weather.openweathermap",
		New: func() core.Module { return &Module{} },
	}
}

// Configure implements core.Configurable.
func (m *Module) Configure(node *yaml.Node) error {
	return node.Decode(&m.config)
}

// Provision implements core.Provisioner.
func (m *Module) Provision(ctx *core.AppContext) error {
	if svc, ok := ctx.Service(security.CredentialsService); ok {
		if creds, ok := svc.(*security.CredentialStore); ok {
			creds.Set("weather.api_key", m.config.APIKey)
		}
	}
	if m.config.APIKey == "" {
		ctx.Logger.Warn("weather api_key not set, weather requests will say so")
	}
	ctx.RegisterService(command.WeatherService, New(m.config, ctx.Logger))
	return nil
}
