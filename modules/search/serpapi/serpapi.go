// Package serpapi implements the search.serpapi module. Like the weather
// collaborator it returns mock results; the key only switches the wording.
package serpapi

import (
	"context"
	"fmt"
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
	_ command.WebSearcher = (*Searcher)(nil)
	_ core.Configurable   = (*Module)(nil)
	_ core.Provisioner    = (*Module)(nil)
)

// Config holds the search collaborator configuration.
type Config struct {
	APIKey string `yaml:"api_key"`
}

// Searcher answers web search requests.
type Searcher struct {
	apiKey string
	logger *slog.Logger
}

// New returns a Searcher. A nil logger discards debug output.
func New(cfg Config, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Searcher{apiKey: cfg.APIKey, logger: logger}
}

// Search implements command.WebSearcher.
func (s *Searcher) Search(_ context.Context, query string) string {
	if s.apiKey == "" {
		return fmt.Sprintf("Search API key not set. Here is a mock result for: %s", query)
	}
	s.logger.Debug("web search", "query", query, "mock", true)
	return fmt.Sprintf("Here are the search results for: %s (This is a mock response.)", query)
}

// Module wires a Searcher into the application.
type Module struct {
	config Config
}

// ModuleInfo implements core.Module.
func (m *Module) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "search.serpapi",
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
			creds.Set("search.api_key", m.config.APIKey)
		}
	}
	ctx.RegisterService(command.SearchService, New(m.config, ctx.Logger))
	return nil
}
