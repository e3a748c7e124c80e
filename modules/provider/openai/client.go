package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mobais/mobais/internal/provider"
)

// maxResponseSize is the maximum response body size (10 MB).
const maxResponseSize = 10 * 1024 * 1024

// buildChatRequest creates an OpenAI API chat request from a provider
// CompletionRequest, merging request-level overrides with config defaults.
func (p *Provider) buildChatRequest(req provider.CompletionRequest) chatRequest {
	cr := chatRequest{
		Model:    p.config.Model,
		Messages: toMessages(req.Messages),
	}

	switch {
	case req.MaxTokens > 0:
		cr.MaxTokens = req.MaxTokens
	case p.config.MaxTokens > 0:
		cr.MaxTokens = p.config.MaxTokens
	}

	switch {
	case req.Temperature != nil:
		cr.Temperature = req.Temperature
	case p.config.Temperature != nil:
		cr.Temperature = p.config.Temperature
	}

	return cr
}

// doPost sends an authenticated POST request and returns the response body
// and status code. The response body is limited to maxResponseSize bytes.
func (p *Provider) doPost(ctx context.Context, path string, payload any) ([]byte, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("openai: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("openai: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, 0, transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("openai: read response: %w", err)
	}

	return respBody, resp.StatusCode, nil
}

// Complete sends a completion request and returns the full response.
func (p *Provider) Complete(ctx context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error) {
	body, statusCode, err := p.doPost(ctx, "/chat/completions", p.buildChatRequest(req))
	if err != nil {
		return provider.CompletionResponse{}, err
	}

	if httpErr := statusError(statusCode, body); httpErr != nil {
		return provider.CompletionResponse{}, httpErr
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return provider.CompletionResponse{}, fmt.Errorf("openai: unmarshal response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return provider.CompletionResponse{}, fmt.Errorf("openai: %w", provider.ErrEmptyResponse)
	}

	return fromResponse(&resp), nil
}

// HealthCheck validates the provider is functional by sending a minimal
// 1-token completion. This tests authentication, model access and quota.
func (p *Provider) HealthCheck(ctx context.Context) error {
	_, err := p.Complete(ctx, provider.CompletionRequest{
		Messages:  []provider.LLMMessage{{Role: provider.MessageRoleUser, Content: "hi"}},
		MaxTokens: 1,
	})
	return err
}

// ModelName returns the configured model identifier.
func (p *Provider) ModelName() string {
	return p.config.Model
}
