// Package postgres implements the reminder.postgres module, a reminder
// store for deployments that already run PostgreSQL. It uses lib/pq.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mobais/mobais/internal/core"
	"github.com/mobais/mobais/internal/reminder"
	"github.com/mobais/mobais/internal/security"
	"gopkg.in/yaml.v3"
)

func init() {
	core.RegisterModule(&Module{})
}

var (
	_ core.Configurable = (*Module)(nil)
	_ core.Provisioner  = (*Module)(nil)
	_ core.Validator    = (*Module)(nil)
	_ core.Stopper      = (*Module)(nil)
)

// Module provides a PostgreSQL-backed reminder.Store.
type Module struct {
	config Config
	logger *slog.Logger
	store  *Store
}

// ModuleInfo implements core.Module.
func (m *Module) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "reminder.postgres",
		New: func() core.Module { return &Module{} },
	}
}

// Configure implements core.Configurable.
func (m *Module) Configure(node *yaml.Node) error {
	if err := node.Decode(&m.config); err != nil {
		return fmt.Errorf("reminder.postgres: decode config: %w", err)
	}
	m.config.defaults()
	return m.config.validate()
}

// Provision implements core.Provisioner.
func (m *Module) Provision(ctx *core.AppContext) error {
	m.logger = ctx.Logger

	if svc, ok := ctx.Service(security.CredentialsService); ok {
		if creds, ok := svc.(*security.CredentialStore); ok {
			creds.Set("reminder.postgres.dsn", m.config.DSN)
		}
	}

	store, err := Open(context.Background(), m.config)
	if err != nil {
		return err
	}
	m.store = store
	ctx.RegisterService(reminder.ServiceName, store)

	m.logger.Info("postgres reminder store provisioned", "table", m.config.Table)
	return nil
}

// Validate implements core.Validator.
func (m *Module) Validate() error {
	if err := m.store.Ping(context.Background()); err != nil {
		return fmt.Errorf("reminder.postgres: ping failed: %w", err)
	}
	return nil
}

// Stop implements core.Stopper.
func (m *Module) Stop(_ context.Context) error {
	if m.store == nil {
		return nil
	}
	m.logger.Info("postgres reminder store stopping")
	return m.store.Close()
}
