package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/mobais/mobais/internal/provider"
)

// Fallback answers utterances that no command handled.
type Fallback interface {
	Reply(ctx context.Context, utterance string, c Character) (string, error)
}

// FallbackFunc adapts a function to Fallback.
type FallbackFunc func(ctx context.Context, utterance string, c Character) (string, error)

// Reply implements Fallback.
func (f FallbackFunc) Reply(ctx context.Context, utterance string, c Character) (string, error) {
	return f(ctx, utterance, c)
}

// LLMFallback asks a language model, with the character's prompt as the
// system message.
type LLMFallback struct {
	Provider  provider.Provider
	MaxTokens int
}

// Reply implements Fallback.
func (f *LLMFallback) Reply(ctx context.Context, utterance string, c Character) (string, error) {
	if f == nil || f.Provider == nil {
		return "", provider.ErrNoProvider
	}

	resp, err := f.Provider.Complete(ctx, provider.CompletionRequest{
		Messages: []provider.LLMMessage{
			{Role: provider.MessageRoleSystem, Content: c.Prompt},
			{Role: provider.MessageRoleUser, Content: utterance},
		},
		MaxTokens: f.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("assistant: fallback via %s: %w", f.Provider.ModelName(), err)
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", fmt.Errorf("assistant: fallback via %s: %w", f.Provider.ModelName(), provider.ErrEmptyResponse)
	}
	return text, nil
}
