// Package cart turns configurator sessions into cart lines.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	kvjetstream "github.com/go-monolith/mono/plugin/kv-jetstream"

	"github.com/example/furniture-configurator/events"
	"github.com/example/furniture-configurator/modules/configurator"
)

// BucketName is the KV bucket carts are stored in.
const BucketName = "carts"

// Module provides cart services. Carts live in the "kv" plugin when it is
// registered and in memory otherwise.
type Module struct {
	kv        *kvjetstream.PluginModule
	store     Store
	snapshots SnapshotSource
	service   *Service
	eventBus  mono.EventBus
	ttl       time.Duration
	logger    types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.UsePluginModule       = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a cart module. ttl bounds how long an untouched cart is
// kept in the KV bucket.
func NewModule(ttl time.Duration, logger types.Logger) *Module {
	return &Module{
		ttl:    ttl,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "cart"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"configurator"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "configurator" {
		m.snapshots = configurator.NewConfiguratorAdapter(container)
	}
}

// SetPlugin receives the KV plugin from the framework.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != "kv" {
		return
	}
	kv, ok := plugin.(*kvjetstream.PluginModule)
	if !ok {
		m.logger.Error("Invalid plugin type for kv",
			"alias", alias,
			"expected", "*kvjetstream.PluginModule")
		return
	}
	m.kv = kv
	m.logger.Info("Received KV plugin", "alias", alias)
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.CartItemAddedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "add-cart-item", json.Unmarshal, json.Marshal, m.addItem,
	); err != nil {
		return fmt.Errorf("failed to register add-cart-item service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-cart", json.Unmarshal, json.Marshal, m.getCart,
	); err != nil {
		return fmt.Errorf("failed to register get-cart service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "remove-cart-item", json.Unmarshal, json.Marshal, m.removeItem,
	); err != nil {
		return fmt.Errorf("failed to register remove-cart-item service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-cart-quantity", json.Unmarshal, json.Marshal, m.updateQuantity,
	); err != nil {
		return fmt.Errorf("failed to register update-cart-quantity service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "clear-cart", json.Unmarshal, json.Marshal, m.clearCart,
	); err != nil {
		return fmt.Errorf("failed to register clear-cart service: %w", err)
	}

	m.logger.Info("Registered services", "count", 5)
	return nil
}

// Start picks the cart store and creates the service.
func (m *Module) Start(_ context.Context) error {
	if m.snapshots == nil {
		return fmt.Errorf("configurator dependency not set")
	}

	if m.store == nil {
		if m.kv != nil {
			bucket := m.kv.Bucket(BucketName)
			if bucket == nil {
				return fmt.Errorf("bucket '%s' not found in KV plugin", BucketName)
			}
			m.store = NewKVStore(bucket, m.ttl)
		} else {
			m.logger.Warn("KV plugin not registered, carts are kept in memory")
			m.store = NewMemoryStore()
		}
	}

	svc, err := NewService(m.store, m.snapshots, m.logger)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	m.service = svc

	if m.eventBus == nil {
		m.logger.Warn("EventBus not set, events will not be published")
	}
	m.logger.Info("Module started", "kv", m.kv != nil, "ttl", m.ttl.String())
	return nil
}

// Stop gracefully shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Module stopped")
	return nil
}

// Health reports whether the module is serving.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{Healthy: false, Message: "not started"}
	}
	backend := "memory"
	if m.kv != nil {
		backend = "kv-jetstream"
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"backend": backend},
	}
}
