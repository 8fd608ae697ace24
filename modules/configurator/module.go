// Package configurator hosts server-side configurator sessions: one
// customization per browsing context, priced against the live catalog.
package configurator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"golang.org/x/sync/singleflight"

	"github.com/example/furniture-configurator/domain/catalog"
	"github.com/example/furniture-configurator/events"
)

// Config controls session lifetime.
type Config struct {
	// IdleTimeout is how long an untouched session stays in memory.
	IdleTimeout time.Duration
	// SweepInterval is how often idle sessions are collected. Zero disables
	// the sweeper.
	SweepInterval time.Duration
}

// DefaultConfig returns the default session lifetime settings.
func DefaultConfig() Config {
	return Config{
		IdleTimeout:   2 * time.Hour,
		SweepInterval: 5 * time.Minute,
	}
}

// Module provides configurator session services.
type Module struct {
	registry *Registry
	store    SessionStore
	eventBus mono.EventBus
	cfg      Config
	logger   types.Logger
	restores singleflight.Group // collapses concurrent restores of one id

	stopSweep chan struct{}
	wg        sync.WaitGroup
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a configurator module. Sessions resolve products,
// materials and parts through source. store may be nil, in which case
// sessions live only in memory.
func NewModule(source catalog.Source, store SessionStore, cfg Config, logger types.Logger) *Module {
	return &Module{
		registry: NewRegistry(source),
		store:    store,
		cfg:      cfg,
		logger:   logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "configurator"
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.CustomizationChangedV1.ToBase(),
		events.SessionResetV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-session", json.Unmarshal, json.Marshal, m.createSession,
	); err != nil {
		return fmt.Errorf("failed to register create-session service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-session", json.Unmarshal, json.Marshal, m.getSession,
	); err != nil {
		return fmt.Errorf("failed to register get-session service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "select-product", json.Unmarshal, json.Marshal, m.selectProduct,
	); err != nil {
		return fmt.Errorf("failed to register select-product service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "set-material", json.Unmarshal, json.Marshal, m.setMaterial,
	); err != nil {
		return fmt.Errorf("failed to register set-material service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "set-part", json.Unmarshal, json.Marshal, m.setPart,
	); err != nil {
		return fmt.Errorf("failed to register set-part service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "clear-part", json.Unmarshal, json.Marshal, m.clearPart,
	); err != nil {
		return fmt.Errorf("failed to register clear-part service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "reset-session", json.Unmarshal, json.Marshal, m.resetSession,
	); err != nil {
		return fmt.Errorf("failed to register reset-session service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "set-ar", json.Unmarshal, json.Marshal, m.setAR,
	); err != nil {
		return fmt.Errorf("failed to register set-ar service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-scene", json.Unmarshal, json.Marshal, m.updateScene,
	); err != nil {
		return fmt.Errorf("failed to register update-scene service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "snapshot-session", json.Unmarshal, json.Marshal, m.snapshotSession,
	); err != nil {
		return fmt.Errorf("failed to register snapshot-session service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-session", json.Unmarshal, json.Marshal, m.deleteSession,
	); err != nil {
		return fmt.Errorf("failed to register delete-session service: %w", err)
	}

	m.logger.Info("Registered services", "count", 11)
	return nil
}

// Start launches the idle-session sweeper.
func (m *Module) Start(_ context.Context) error {
	if m.eventBus == nil {
		m.logger.Warn("EventBus not set, events will not be published")
	}

	if m.cfg.SweepInterval > 0 && m.cfg.IdleTimeout > 0 {
		m.stopSweep = make(chan struct{})
		m.wg.Add(1)
		go m.sweepLoop()
	}

	m.logger.Info("Module started",
		"persistence", m.store != nil,
		"idleTimeout", m.cfg.IdleTimeout.String(),
		"sweepInterval", m.cfg.SweepInterval.String())
	return nil
}

// Stop halts the sweeper.
func (m *Module) Stop(_ context.Context) error {
	if m.stopSweep != nil {
		close(m.stopSweep)
		m.wg.Wait()
		m.stopSweep = nil
	}
	m.logger.Info("Module stopped", "sessions", m.registry.Len())
	return nil
}

// Health reports the number of live sessions.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"sessions":    m.registry.Len(),
			"persistence": m.store != nil,
		},
	}
}

func (m *Module) sweepLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopSweep:
			return
		case now := <-ticker.C:
			m.sweep(now)
		}
	}
}
