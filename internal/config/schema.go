// Package config handles YAML configuration loading, environment variable
// expansion and structural validation for mobais.
package config

import "gopkg.in/yaml.v3"

// Config is the top-level configuration structure.
type Config struct {
	// Version is the config format version. Currently only "1" is supported.
	Version string `yaml:"version"`

	Assistant AssistantConfig `yaml:"assistant"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Digest    DigestConfig    `yaml:"digest"`

	// Modules maps module IDs to their raw YAML configuration.
	// Keys must match registered module IDs (e.g. "reminder.sqlite").
	Modules map[string]yaml.Node `yaml:"modules"`
}

// AssistantConfig controls how turns are answered.
type AssistantConfig struct {
	// Character selects the personality used for language-model replies.
	Character string `yaml:"character"`
	// WakeWord gates transcribed speech; text input is never gated.
	WakeWord string `yaml:"wake_word"`
	Language string `yaml:"language,omitempty"`
	// TimeLayout formats reminder timestamps (Go reference time).
	TimeLayout string `yaml:"time_layout,omitempty"`
}

// LoggingConfig configures the process logger and the turn history file.
type LoggingConfig struct {
	Level string `yaml:"level"`
	// File, when set, receives one JSON line per conversation turn.
	File string `yaml:"file,omitempty"`
}

// TelemetryConfig groups observability settings.
type TelemetryConfig struct {
	Tracing TracingConfig `yaml:"tracing"`
}

// TracingConfig configures OTLP/HTTP trace export.
type TracingConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	Insecure bool   `yaml:"insecure"`
}

// DigestConfig schedules the periodic reminder digest. An empty schedule
// disables it.
type DigestConfig struct {
	Schedule string `yaml:"schedule"`
	// QuietHours ("22:00-07:00") suppresses digests inside the window.
	QuietHours string `yaml:"quiet_hours,omitempty"`
}

// Defaults applied by ApplyDefaults.
const (
	DefaultCharacter  = "helpful"
	DefaultWakeWord   = "hey pratham"
	DefaultLanguage   = "en-US"
	DefaultTimeLayout = "2006-01-02 15:04:05"
	DefaultLogLevel   = "info"
	DefaultEndpoint   = "localhost:4318"
)

// ApplyDefaults fills zero-valued top-level settings.
func (c *Config) ApplyDefaults() {
	if c.Assistant.Character == "" {
		c.Assistant.Character = DefaultCharacter
	}
	if c.Assistant.WakeWord == "" {
		c.Assistant.WakeWord = DefaultWakeWord
	}
	if c.Assistant.Language == "" {
		c.Assistant.Language = DefaultLanguage
	}
	if c.Assistant.TimeLayout == "" {
		c.Assistant.TimeLayout = DefaultTimeLayout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Telemetry.Tracing.Endpoint == "" {
		c.Telemetry.Tracing.Endpoint = DefaultEndpoint
	}
}
