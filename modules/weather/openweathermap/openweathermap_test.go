package openweathermap

import (
	"context"
	"testing"

	"github.com/mobais/mobais/internal/command"
	"github.com/mobais/mobais/internal/core"
	"github.com/mobais/mobais/internal/security"
	"gopkg.in/yaml.v3"
)

func TestReporter_Weather(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"no key", Config{}, "Weather API key not set."},
		{"key", Config{APIKey: "abc"}, "The weather is sunny and pleasant! (This is a mock response.)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.cfg, nil).Weather(context.Background()); got != tt.want {
				t.Errorf("Weather() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModule_Provision(t *testing.T) {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte("api_key: owm-key-123\ncity: Paris\n"), &node); err != nil {
		t.Fatal(err)
	}

	creds := security.NewCredentialStore()
	ctx := core.NewAppContext(nil, t.TempDir())
	ctx.RegisterService(security.CredentialsService, creds)

	m := &Module{}
	if err := m.Configure(node.Content[0]); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := m.Provision(ctx); err != nil {
		t.Fatalf("Provision: %v", err)
	}

	svc, ok := ctx.Service(command.WeatherService)
	if !ok {
		t.Fatal("weather service not registered")
	}
	rep, ok := svc.(command.WeatherReporter)
	if !ok {
		t.Fatalf("service has type %T", svc)
	}
	if got := rep.Weather(context.Background()); got != MockReply {
		t.Errorf("Weather() = %q", got)
	}
	if v, _ := creds.Get("weather.api_key"); v != "owm-key-123" {
		t.Errorf("credential = %q", v)
	}
}
