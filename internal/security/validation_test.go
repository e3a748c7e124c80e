package security

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateUtterance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		limit   int
		wantErr error
	}{
		{"ok", "what's the weather today", 0, nil},
		{"empty is fine", "", 0, nil},
		{"too long", strings.Repeat("a", 11), 10, ErrUtteranceTooLarge},
		{"invalid utf8", "remind me to \xff", 0, ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUtterance(tt.text, tt.limit)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateUtterance = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadBody(t *testing.T) {
	t.Parallel()

	data, err := ReadBody(strings.NewReader(`{"text":"open notes"}`), 0)
	if err != nil {
		t.Fatalf("ReadBody: %v", err)
	}
	if string(data) != `{"text":"open notes"}` {
		t.Errorf("data = %s", data)
	}

	if _, err := ReadBody(strings.NewReader(`{"text":"0123456789"}`), 5); !errors.Is(err, ErrBodyTooLarge) {
		t.Errorf("expected ErrBodyTooLarge, got %v", err)
	}

	deep := strings.Repeat("[", 9) + strings.Repeat("]", 9)
	if _, err := ReadBody(strings.NewReader(deep), 0); !errors.Is(err, ErrJSONTooDeep) {
		t.Errorf("expected ErrJSONTooDeep, got %v", err)
	}

	if _, err := ReadBody(strings.NewReader(`{"text":`), 0); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("expected ErrInvalidJSON, got %v", err)
	}
}

func TestValidateJSONDepth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"object", `{"text":"hi","character":"funny"}`, nil},
		{"at limit", strings.Repeat("[", 8) + strings.Repeat("]", 8), nil},
		{"too deep", strings.Repeat("[", 9) + strings.Repeat("]", 9), ErrJSONTooDeep},
		{"truncated value", `{"text":`, ErrInvalidJSON},
		{"unclosed object", `{"text":"hi"`, ErrInvalidJSON},
		{"unbalanced", `{"text":"hi"}}`, ErrInvalidJSON},
		{"empty", ``, ErrInvalidJSON},
		{"syntax", `{text}`, ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONDepth([]byte(tt.data), 0)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateJSONDepth(%q) = %v, want %v", tt.data, err, tt.wantErr)
			}
		})
	}
}
