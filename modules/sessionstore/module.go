package sessionstore

import (
	"context"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/redis/go-redis/v9"
)

// Module owns the Redis connection behind the session store.
type Module struct {
	client    *redis.Client
	store     *Store
	redisAddr string
	prefix    string
	ttl       time.Duration
	logger    types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates the module. The client connects lazily, so Store can be
// handed to other modules before Start.
func NewModule(redisAddr, prefix string, ttl time.Duration, logger types.Logger) *Module {
	client := redis.NewClient(&redis.Options{
		Addr:         redisAddr,
		PoolSize:     20,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return &Module{
		client:    client,
		store:     New(client, prefix, ttl),
		redisAddr: redisAddr,
		prefix:    prefix,
		ttl:       ttl,
		logger:    logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "sessionstore"
}

// Store returns the session store.
func (m *Module) Store() *Store {
	return m.store
}

// Start verifies the Redis connection.
func (m *Module) Start(ctx context.Context) error {
	if err := m.store.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	m.logger.Info("Module started", "addr", m.redisAddr, "prefix", m.prefix, "ttl", m.ttl.String())
	return nil
}

// Stop closes the Redis connection.
func (m *Module) Stop(_ context.Context) error {
	if err := m.store.Close(); err != nil {
		m.logger.Error("Error closing Redis connection", "error", err)
		return fmt.Errorf("failed to close Redis connection: %w", err)
	}
	m.logger.Info("Module stopped")
	return nil
}

// Health pings Redis and reports the store counters.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if err := m.store.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("redis ping failed: %v", err),
		}
	}

	stats := m.store.GetStats()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"addr":   m.redisAddr,
			"hits":   stats.Hits,
			"misses": stats.Misses,
			"saves":  stats.Saves,
			"errors": stats.Errors,
		},
	}
}
