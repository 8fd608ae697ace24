// Package analytics keeps storefront counters fed by configurator and cart
// events.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/furniture-configurator/events"
)

// Module implements the analytics consumer module.
type Module struct {
	store  *Store
	logger types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
)

// NewModule creates a new analytics module.
func NewModule(logger types.Logger) *Module {
	return &Module{
		store:  NewStore(),
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "analytics"
}

// RegisterEventConsumers subscribes to cart and configurator events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(
		registry, events.CartItemAddedV1, m.handleCartItemAdded, m,
	); err != nil {
		return fmt.Errorf("failed to register CartItemAdded consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.CustomizationChangedV1, m.handleCustomizationChanged, m,
	); err != nil {
		return fmt.Errorf("failed to register CustomizationChanged consumer: %w", err)
	}

	m.logger.Info("Registered event consumers",
		"events", []string{"CartItemAdded.v1", "CustomizationChanged.v1"})
	return nil
}

func (m *Module) handleCartItemAdded(_ context.Context, event events.CartItemAddedEvent, _ *mono.Msg) error {
	partIDs := make([]string, 0, len(event.Parts))
	for _, id := range event.Parts {
		partIDs = append(partIDs, id)
	}
	m.store.RecordItemAdded(event.ProductID, event.MaterialID, partIDs, event.Quantity, event.UnitPrice, event.AddedAt)

	m.logger.Debug("Recorded cart addition",
		"cartID", event.CartID,
		"productID", event.ProductID,
		"quantity", event.Quantity)
	return nil
}

// handleCustomizationChanged counts the choice carried by the event. Scene,
// AR and restore changes carry no choice and are skipped.
func (m *Module) handleCustomizationChanged(_ context.Context, event events.CustomizationChangedEvent, _ *mono.Msg) error {
	switch event.Change {
	case events.ChangeProduct:
		m.store.RecordCustomization(event.ProductID, "", "", event.ChangedAt)
	case events.ChangeMaterial:
		m.store.RecordCustomization("", event.MaterialID, "", event.ChangedAt)
	case events.ChangePart:
		m.store.RecordCustomization("", "", event.PartID, event.ChangedAt)
	}
	return nil
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "get-analytics", json.Unmarshal, json.Marshal, m.getAnalytics,
	); err != nil {
		return fmt.Errorf("failed to register get-analytics service: %w", err)
	}

	m.logger.Info("Registered analytics services", "services", []string{"get-analytics"})
	return nil
}

// GetAnalyticsRequest is the request for get-analytics.
type GetAnalyticsRequest struct{}

func (m *Module) getAnalytics(_ context.Context, _ GetAnalyticsRequest, _ *mono.Msg) (Summary, error) {
	return m.store.Summary(), nil
}

// Start initializes the analytics module.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Analytics module started")
	return nil
}

// Stop gracefully shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Analytics module stopped")
	return nil
}

// Store returns the analytics store.
func (m *Module) Store() *Store {
	return m.store
}
