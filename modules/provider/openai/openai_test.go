package openai

import (
	"testing"

	"github.com/mobais/mobais/internal/core"
	"github.com/mobais/mobais/internal/security"
	"gopkg.in/yaml.v3"
)

func TestModuleInfo(t *testing.T) {
	p := &Provider{}
	info := p.ModuleInfo()

	if info.ID != "provider.openai" {
		t.Errorf("expected ID provider.openai, got %s", info.ID)
	}
	if info.New == nil {
		t.Fatal("New function must not be nil")
	}
	if _, ok := info.New().(*Provider); !ok {
		t.Errorf("New() returned %T, want *Provider", info.New())
	}
}

func TestConfigure_Defaults(t *testing.T) {
	p := &Provider{}
	if err := p.Configure(yamlNode(t, "api_key: sk-test")); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	if p.config.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("base_url = %q", p.config.BaseURL)
	}
	if p.config.Model != "gpt-4" {
		t.Errorf("model = %q, want gpt-4", p.config.Model)
	}
	if p.config.Timeout != "30s" {
		t.Errorf("timeout = %q, want 30s", p.config.Timeout)
	}
}

func TestConfigure_InvalidYAML(t *testing.T) {
	p := &Provider{}
	if err := p.Configure(yamlNode(t, "- not\n- a\n- map")); err == nil {
		t.Error("expected error for non-mapping config")
	}
}

func TestProvision_RegistersServiceAndCredential(t *testing.T) {
	p := &Provider{}
	if err := p.Configure(yamlNode(t, "api_key: sk-secretvalue\nmodel: gpt-4o-mini")); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	creds := security.NewCredentialStore()
	ctx := core.NewAppContext(nil, t.TempDir())
	ctx.RegisterService(security.CredentialsService, creds)

	if err := p.Provision(ctx); err != nil {
		t.Fatalf("Provision: %v", err)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	svc, ok := ctx.Service(ServiceName)
	if !ok || svc != p {
		t.Errorf("service %q = %v, want provider", ServiceName, svc)
	}
	if v, _ := creds.Get("openai.api_key"); v != "sk-secretvalue" {
		t.Errorf("credential = %q, want api key", v)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"ok", Config{APIKey: "k", Model: "gpt-4", Timeout: "10s"}, false},
		{"missing key", Config{Model: "gpt-4", Timeout: "10s"}, true},
		{"missing model", Config{APIKey: "k", Timeout: "10s"}, true},
		{"bad timeout", Config{APIKey: "k", Model: "gpt-4", Timeout: "soon"}, true},
		{"negative timeout", Config{APIKey: "k", Model: "gpt-4", Timeout: "-1s"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Provider{config: tt.config}
			if err := p.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func yamlNode(t *testing.T, s string) *yaml.Node {
	t.Helper()
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(s), &node); err != nil {
		t.Fatalf("failed to parse test YAML: %v", err)
	}
	// yaml.Unmarshal wraps the document in a document node.
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		return node.Content[0]
	}
	return &node
}
