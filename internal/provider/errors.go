package provider

import "errors"

// Sentinel errors for provider operations.
var (
	// ErrRateLimit indicates the provider returned a rate limit response.
	ErrRateLimit = errors.New("provider rate limited")

	// ErrContextLength indicates the request exceeded the model's context window.
	ErrContextLength = errors.New("context length exceeded")

	// ErrProviderDown indicates the provider is temporarily unavailable.
	ErrProviderDown = errors.New("provider unavailable")

	// ErrNoProvider indicates no provider is configured.
	ErrNoProvider = errors.New("no provider configured")

	// ErrEmptyResponse indicates the provider answered without content.
	ErrEmptyResponse = errors.New("provider returned no content")

	// ErrAuth indicates the provider rejected the configured credentials.
	ErrAuth = errors.New("provider rejected credentials")
)

// IsRetryable reports whether a fallback reply may succeed on a later turn.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimit) || errors.Is(err, ErrProviderDown)
}
