package postgres

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultTable          = "reminders"
	defaultConnectTimeout = 5 * time.Second
)

// Config holds the PostgreSQL reminder store configuration.
type Config struct {
	// DSN is a lib/pq connection string or postgres:// URL.
	DSN string `yaml:"dsn"`

	// Table is the reminders table name. Defaults to "reminders".
	Table string `yaml:"table"`

	// MaxOpenConns caps the pool. Defaults to 4.
	MaxOpenConns int `yaml:"max_open_conns"`

	// ConnectTimeout bounds the startup ping. Defaults to 5s.
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

func (c *Config) defaults() {
	if c.Table == "" {
		c.Table = defaultTable
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 4
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
}

func (c *Config) validate() error {
	var errs []error
	if c.DSN == "" {
		errs = append(errs, errors.New("reminder.postgres: dsn is required"))
	}
	if c.MaxOpenConns < 0 {
		errs = append(errs, fmt.Errorf("reminder.postgres: max_open_conns must be non-negative, got %d", c.MaxOpenConns))
	}
	if c.ConnectTimeout < 0 {
		errs = append(errs, fmt.Errorf("reminder.postgres: connect_timeout must be non-negative, got %s", c.ConnectTimeout))
	}
	return errors.Join(errs...)
}
