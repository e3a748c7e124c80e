// Package openai implements the provider.openai module, the language-model
// fallback for utterances that match no structured command. It speaks the
// OpenAI Chat Completions API.
package openai

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mobais/mobais/internal/core"
	"github.com/mobais/mobais/internal/provider"
	"github.com/mobais/mobais/internal/security"
	"gopkg.in/yaml.v3"
)

func init() {
	core.RegisterModule(&Provider{})
}

// Compile-time interface guards.
var (
	_ provider.Provider      = (*Provider)(nil)
	_ provider.HealthChecker = (*Provider)(nil)
	_ core.Module            = (*Provider)(nil)
	_ core.Configurable      = (*Provider)(nil)
	_ core.Provisioner       = (*Provider)(nil)
	_ core.Validator         = (*Provider)(nil)
)

// ServiceName is the AppContext service key the provider registers under.
const ServiceName = "provider.openai"

// Provider implements the OpenAI Chat Completions API as a mobais provider module.
type Provider struct {
	config Config
	logger *slog.Logger
	client *http.Client
}

// ModuleInfo implements core.Module.
func (p *Provider) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "provider.openai",
		New: func() core.Module { return &Provider{} },
	}
}

// Configure implements core.Configurable.
func (p *Provider) Configure(node *yaml.Node) error {
	if err := node.Decode(&p.config); err != nil {
		return err
	}
	p.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (p *Provider) Provision(ctx *core.AppContext) error {
	p.config.defaults()
	p.logger = ctx.Logger
	p.client = &http.Client{
		Timeout: p.config.parsedTimeout(),
	}

	// Make the key visible to the log redactor.
	if svc, ok := ctx.Service(security.CredentialsService); ok {
		if creds, ok := svc.(*security.CredentialStore); ok {
			creds.Set("openai.api_key", p.config.APIKey)
		}
	}

	ctx.RegisterService(ServiceName, p)
	return nil
}

// Validate implements core.Validator.
func (p *Provider) Validate() error {
	if p.config.APIKey == "" {
		return errors.New("provider.openai: api_key is required")
	}
	if p.config.Model == "" {
		return errors.New("provider.openai: model is required")
	}
	return p.config.validateTimeout()
}
