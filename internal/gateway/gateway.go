// Package gateway serves the assistant over HTTP and WebSocket.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/mobais/mobais/internal/assistant"
	"github.com/mobais/mobais/internal/core"
	"github.com/mobais/mobais/internal/security"
	"github.com/mobais/mobais/internal/telemetry"
	"gopkg.in/yaml.v3"
)

func init() {
	core.RegisterModule(&Gateway{})
}

// Gateway is the HTTP gateway module. It is a leaf module: nothing imports it.
type Gateway struct {
	config  Config
	appCtx  *core.AppContext
	logger  *slog.Logger
	limiter *security.RateLimiter

	mu     sync.Mutex
	server *http.Server
	addr   net.Addr

	// Resolved lazily at Start() via service registry.
	responder Responder
	metrics   *telemetry.Metrics
}

// ModuleInfo implements core.Module.
func (g *Gateway) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "gateway.http",
		New: func() core.Module { return &Gateway{} },
	}
}

// Configure implements core.Configurable.
func (g *Gateway) Configure(node *yaml.Node) error {
	if err := node.Decode(&g.config); err != nil {
		return err
	}
	g.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (g *Gateway) Provision(ctx *core.AppContext) error {
	g.config.defaults()
	g.appCtx = ctx
	g.logger = ctx.Logger
	g.limiter = security.NewRateLimiter(g.config.RateLimit)

	if svc, ok := ctx.Service(security.CredentialsService); ok {
		if creds, ok := svc.(*security.CredentialStore); ok {
			creds.Set("gateway.bearer_token", g.config.Auth.BearerToken)
			creds.Set("gateway.basic_pass", g.config.Auth.BasicPass)
		}
	}
	return nil
}

// Validate implements core.Validator.
func (g *Gateway) Validate() error {
	if err := g.config.validate(); err != nil {
		return fmt.Errorf("gateway: %w", err)
	}
	return nil
}

// Start implements core.Starter. It resolves dependencies from the service
// registry (lazy binding) and starts the HTTP server.
func (g *Gateway) Start() error {
	if svc, ok := g.appCtx.Service(assistant.ServiceName); ok {
		if r, ok := svc.(Responder); ok {
			g.responder = r
		}
	}
	if svc, ok := g.appCtx.Service(telemetry.MetricsService); ok {
		if m, ok := svc.(*telemetry.Metrics); ok {
			g.metrics = m
		}
	}
	if g.responder == nil {
		g.logger.Warn("assistant service not found, only /health is served")
	}
	if !g.config.Auth.IsConfigured() && !isLoopback(g.config.Bind) {
		g.logger.Warn("gateway exposed without authentication", "addr", g.config.Bind)
	}

	server := &http.Server{
		Addr:         g.config.Bind,
		Handler:      g.buildRouter(),
		ReadTimeout:  g.config.ReadTimeout,
		WriteTimeout: g.config.WriteTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", g.config.Bind)
	if err != nil {
		return errors.New("gateway: listen failed: " + err.Error())
	}

	g.mu.Lock()
	g.server = server
	g.addr = ln.Addr()
	g.mu.Unlock()

	go func() {
		g.logger.Info("gateway listening", "addr", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("gateway serve error", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound listener address, or nil before Start.
func (g *Gateway) Addr() net.Addr {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addr
}

// Stop implements core.Stopper. Graceful shutdown with configured timeout.
func (g *Gateway) Stop(ctx context.Context) error {
	g.mu.Lock()
	server := g.server
	g.mu.Unlock()
	if server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, g.config.ShutdownTimeout)
	defer cancel()

	g.logger.Info("gateway shutting down")
	return server.Shutdown(shutdownCtx)
}

func isLoopback(bind string) bool {
	host, _, err := net.SplitHostPort(bind)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
