// Package providertest provides test helpers for the provider package.
package providertest

import (
	"context"
	"sync"

	"github.com/mobais/mobais/internal/provider"
)

// MockProvider is a configurable test double for provider.Provider.
// Set the Func fields to control behavior. Unset funcs panic on call,
// except ModelNameFunc which defaults to "mock".
// All methods are safe for concurrent use.
type MockProvider struct {
	CompleteFunc    func(ctx context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error)
	ModelNameFunc   func() string
	HealthCheckFunc func(ctx context.Context) error

	mu            sync.Mutex
	CompleteCalls int
	HealthCalls   int
	LastRequest   provider.CompletionRequest
}

// Complete delegates to CompleteFunc and tracks call count.
func (m *MockProvider) Complete(ctx context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error) {
	m.mu.Lock()
	m.CompleteCalls++
	m.LastRequest = req
	m.mu.Unlock()
	return m.CompleteFunc(ctx, req)
}

// ModelName delegates to ModelNameFunc.
func (m *MockProvider) ModelName() string {
	if m.ModelNameFunc == nil {
		return "mock"
	}
	return m.ModelNameFunc()
}

// HealthCheck delegates to HealthCheckFunc and tracks call count.
func (m *MockProvider) HealthCheck(ctx context.Context) error {
	m.mu.Lock()
	m.HealthCalls++
	m.mu.Unlock()
	return m.HealthCheckFunc(ctx)
}

// Calls returns the number of Complete calls made so far.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CompleteCalls
}

// Request returns the last request passed to Complete.
func (m *MockProvider) Request() provider.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LastRequest
}
