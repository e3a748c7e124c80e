package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/mobais/mobais/internal/provider"
)

// maxErrorDetail bounds how much of an error body ends up in logs.
const maxErrorDetail = 256

// statusError turns a non-2xx response into an error wrapping the
// matching provider sentinel. It returns nil for 2xx responses.
func statusError(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	detail := errorDetail(body)
	var sentinel error
	switch {
	case status == http.StatusTooManyRequests:
		sentinel = provider.ErrRateLimit
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		sentinel = provider.ErrAuth
	case status == http.StatusBadRequest && strings.Contains(strings.ToLower(detail), "context_length"):
		sentinel = provider.ErrContextLength
	case status >= 500:
		sentinel = provider.ErrProviderDown
	default:
		return fmt.Errorf("openai: status %d: %s", status, detail)
	}
	return fmt.Errorf("openai: %w: %s", sentinel, detail)
}

// errorDetail prefers the API's error message and falls back to the raw
// body, truncated.
func errorDetail(body []byte) string {
	var apiErr apiError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	detail := strings.TrimSpace(string(body))
	if len(detail) > maxErrorDetail {
		detail = detail[:maxErrorDetail] + "..."
	}
	return detail
}

// transportError classifies a failed round trip. Context errors pass through
// so callers can tell cancellation from an outage.
func transportError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("openai: %w: %w", provider.ErrProviderDown, err)
	}
	return fmt.Errorf("openai: %w", err)
}
