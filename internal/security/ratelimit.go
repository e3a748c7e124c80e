package security

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when a client exceeds its request budget.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimitConfig configures per-client limits on the gateway turn endpoints.
type RateLimitConfig struct {
	PerMinute  int           `yaml:"per_minute"`
	Burst      int           `yaml:"burst"`
	MaxClients int           `yaml:"max_clients"`
	IdleTTL    time.Duration `yaml:"idle_ttl"`
}

func (c *RateLimitConfig) defaults() {
	if c.PerMinute <= 0 {
		c.PerMinute = 60
	}
	if c.Burst <= 0 {
		c.Burst = max(1, c.PerMinute/10)
	}
	if c.MaxClients <= 0 {
		c.MaxClients = 1000
	}
	if c.IdleTTL <= 0 {
		c.IdleTTL = 5 * time.Minute
	}
}

// RateLimiter keeps one token bucket per client key. Idle clients expire
// from an LRU so the limiter's memory stays bounded.
type RateLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewRateLimiter creates a limiter. Zero fields in cfg take defaults.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	cfg.defaults()
	return &RateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](cfg.MaxClients, nil, cfg.IdleTTL),
		limit:    rate.Limit(float64(cfg.PerMinute) / 60.0),
		burst:    cfg.Burst,
		now:      time.Now,
	}
}

// Allow consumes one token for key, or returns ErrRateLimited.
func (rl *RateLimiter) Allow(key string) error {
	rl.mu.Lock()
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	rl.mu.Unlock()

	if !limiter.AllowN(rl.now(), 1) {
		return fmt.Errorf("%w for %s", ErrRateLimited, key)
	}
	return nil
}

// Clients returns the number of tracked client keys.
func (rl *RateLimiter) Clients() int {
	return rl.limiters.Len()
}

// ClientKey derives the rate-limit key of a request: the first
// X-Forwarded-For hop, then X-Real-IP, then the remote host.
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
