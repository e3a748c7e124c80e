package gateway

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/mobais/mobais/internal/security"
)

// Config holds HTTP gateway configuration.
type Config struct {
	Bind            string                   `yaml:"bind"`
	Auth            AuthConfig               `yaml:"auth"`
	CORS            CORSConfig               `yaml:"cors"`
	RateLimit       security.RateLimitConfig `yaml:"rate_limit"`
	MaxBodyBytes    int                      `yaml:"max_body_bytes"`
	MaxUtterance    int                      `yaml:"max_utterance_bytes"`
	ReadTimeout     time.Duration            `yaml:"read_timeout"`
	WriteTimeout    time.Duration            `yaml:"write_timeout"`
	ShutdownTimeout time.Duration            `yaml:"shutdown_timeout"`
}

// defaults fills zero values with sensible defaults.
func (c *Config) defaults() {
	if c.Bind == "" {
		c.Bind = "127.0.0.1:8080"
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = security.DefaultMaxBodySize
	}
	if c.MaxUtterance <= 0 {
		c.MaxUtterance = security.DefaultMaxUtteranceSize
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
}

func (c *Config) validate() error {
	var errs []error
	if _, err := net.ResolveTCPAddr("tcp", c.Bind); err != nil {
		errs = append(errs, fmt.Errorf("invalid bind address %q", c.Bind))
	}
	if (c.Auth.BasicUser == "") != (c.Auth.BasicPass == "") {
		errs = append(errs, errors.New("auth: basic_user and basic_pass must be set together"))
	}
	if c.MaxUtterance > c.MaxBodyBytes {
		errs = append(errs, errors.New("max_utterance_bytes exceeds max_body_bytes"))
	}
	return errors.Join(errs...)
}

// AuthConfig configures authentication for the /api endpoints.
type AuthConfig struct {
	BearerToken string `yaml:"bearer_token"`
	BasicUser   string `yaml:"basic_user"`
	BasicPass   string `yaml:"basic_pass"`
}

// IsConfigured returns true if any auth method is configured.
func (a AuthConfig) IsConfigured() bool {
	return a.BearerToken != "" || (a.BasicUser != "" && a.BasicPass != "")
}

// CORSConfig lists the browser origins allowed to call the API.
// Empty disables CORS handling entirely.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}
