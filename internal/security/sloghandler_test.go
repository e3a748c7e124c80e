package security

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer, r *Redactor) *slog.Logger {
	return NewLogger(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}), r)
}

func TestRedactingHandler_Message(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newTestLogger(&buf, NewRedactor()).Info("key is sk-abcdefghijklmnopqrstuvwxyz")

	out := buf.String()
	if strings.Contains(out, "sk-abcdefghijklmnopqrstuvwxyz") {
		t.Errorf("secret found in log output: %s", out)
	}
	if !strings.Contains(out, RedactPlaceholder) {
		t.Errorf("expected placeholder in output: %s", out)
	}
}

func TestRedactingHandler_CredentialAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewRedactor()
	creds := NewCredentialStore()
	creds.Bind(r)
	creds.Set("weather.api_key", "owm-secret-value")

	newTestLogger(&buf, r).Info("weather lookup", "key", "owm-secret-value", "city", "London")

	out := buf.String()
	if strings.Contains(out, "owm-secret-value") {
		t.Errorf("credential leaked: %s", out)
	}
	if !strings.Contains(out, "London") {
		t.Errorf("safe value missing: %s", out)
	}
}

func TestRedactingHandler_WithAttrsAndGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewRedactor()
	r.AddLiteral("persistent-secret")

	logger := newTestLogger(&buf, r).With("dsn", "persistent-secret").WithGroup("req")
	logger.Info("turn", slog.Group("auth", slog.String("token", "persistent-secret")))

	if strings.Contains(buf.String(), "persistent-secret") {
		t.Errorf("secret leaked: %s", buf.String())
	}
}

func TestRedactingHandler_Errors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := errors.New("dial postgres://mobais:hunter2@db/mobais failed")
	newTestLogger(&buf, NewRedactor()).Error("store unavailable", "error", err)

	if strings.Contains(buf.String(), "hunter2") {
		t.Errorf("password leaked through error attr: %s", buf.String())
	}
}

func TestRedactingHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := NewRedactingHandler(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}), NewRedactor())
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}
