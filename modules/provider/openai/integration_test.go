//go:build integration

package openai

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/mobais/mobais/internal/core"
	"github.com/mobais/mobais/internal/provider"
)

func TestIntegration_Complete(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY not set, skipping integration test")
	}

	p := &Provider{}
	if err := p.Configure(yamlNode(t, "api_key: "+apiKey+"\nmodel: gpt-4o-mini")); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := p.Provision(core.NewAppContext(nil, t.TempDir())); err != nil {
		t.Fatalf("Provision: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := p.Complete(ctx, provider.CompletionRequest{
		Messages: []provider.LLMMessage{
			{Role: provider.MessageRoleUser, Content: "Reply with the single word: pong"},
		},
		MaxTokens: 5,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content == "" {
		t.Error("expected non-empty content")
	}
}
