package security

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// Request limits for the gateway and the MCP tools.
const (
	DefaultMaxBodySize      = 64 << 10 // 64 KiB
	DefaultMaxUtteranceSize = 4 << 10  // 4 KiB
	DefaultMaxJSONDepth     = 8
)

// Validation errors.
var (
	ErrBodyTooLarge      = errors.New("request body too large")
	ErrUtteranceTooLarge = errors.New("utterance too long")
	ErrInvalidUTF8       = errors.New("utterance is not valid UTF-8")
	ErrJSONTooDeep       = errors.New("JSON nesting exceeds maximum depth")
	ErrInvalidJSON       = errors.New("invalid JSON")
)

// ValidateUtterance checks that text is valid UTF-8 and at most limit bytes.
// A non-positive limit means DefaultMaxUtteranceSize.
func ValidateUtterance(text string, limit int) error {
	if limit <= 0 {
		limit = DefaultMaxUtteranceSize
	}
	if len(text) > limit {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrUtteranceTooLarge, len(text), limit)
	}
	if !utf8.ValidString(text) {
		return ErrInvalidUTF8
	}
	return nil
}

// ReadBody reads at most limit bytes from r and rejects anything larger,
// not valid JSON, or nested deeper than DefaultMaxJSONDepth.
func ReadBody(r io.Reader, limit int) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	data, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if len(data) > limit {
		return nil, fmt.Errorf("%w (max %d bytes)", ErrBodyTooLarge, limit)
	}
	if err := ValidateJSONDepth(data, DefaultMaxJSONDepth); err != nil {
		return nil, err
	}
	return data, nil
}

// ValidateJSONDepth rejects malformed or truncated JSON and documents nested
// deeper than limit.
func ValidateJSONDepth(data []byte, limit int) error {
	if limit <= 0 {
		limit = DefaultMaxJSONDepth
	}
	if !json.Valid(data) {
		return ErrInvalidJSON
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	depth := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
		}
		switch tok {
		case json.Delim('{'), json.Delim('['):
			depth++
			if depth > limit {
				return fmt.Errorf("%w: depth %d (max %d)", ErrJSONTooDeep, depth, limit)
			}
		case json.Delim('}'), json.Delim(']'):
			depth--
		}
	}
}
