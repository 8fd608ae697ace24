// Package broadcast pushes configurator session changes to WebSocket
// viewers.
package broadcast

import (
	"context"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/furniture-configurator/domain/configurator"
	"github.com/example/furniture-configurator/events"
)

// Update types sent to viewers.
const (
	UpdateCustomization = "customization"
	UpdateReset         = "reset"
)

// Update is the message sent to viewers of a session.
type Update struct {
	Type          string                      `json:"type"`
	SessionID     string                      `json:"session_id"`
	Change        string                      `json:"change,omitempty"`
	TotalPrice    int64                       `json:"total_price"`
	Visual        *configurator.VisualConfig  `json:"visual,omitempty"`
	Scene         *configurator.SceneConfig   `json:"scene,omitempty"`
	Customization *configurator.Customization `json:"customization,omitempty"`
	Timestamp     time.Time                   `json:"timestamp"`
}

// Module consumes configurator events and relays them through the hub.
type Module struct {
	hub       *Hub
	cancelHub context.CancelFunc
	logger    types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new broadcast module.
func NewModule(logger types.Logger) *Module {
	return &Module{
		hub:    NewHub(logger),
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "broadcast"
}

// Start starts the hub.
func (m *Module) Start(_ context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelHub = cancel
	go m.hub.Run(ctx)
	m.logger.Info("Module started - WebSocket hub running")
	return nil
}

// Stop shuts the hub down and disconnects every viewer.
func (m *Module) Stop(_ context.Context) error {
	clientCount := m.hub.ClientCount()
	if m.cancelHub != nil {
		m.cancelHub()
		m.hub.Wait()
	}
	m.logger.Info("Module stopped", "clients", clientCount)
	return nil
}

// Health returns the health status.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"connected_clients": m.hub.ClientCount(),
		},
	}
}

// RegisterEventConsumers registers event handlers.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(
		registry, events.CustomizationChangedV1, m.handleCustomizationChanged, m,
	); err != nil {
		return fmt.Errorf("failed to register CustomizationChanged consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.SessionResetV1, m.handleSessionReset, m,
	); err != nil {
		return fmt.Errorf("failed to register SessionReset consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", []string{"CustomizationChanged.v1", "SessionReset.v1"})
	return nil
}

func (m *Module) handleCustomizationChanged(_ context.Context, event events.CustomizationChangedEvent, _ *mono.Msg) error {
	scene := event.Scene
	m.hub.Broadcast(event.SessionID, Update{
		Type:          UpdateCustomization,
		SessionID:     event.SessionID,
		Change:        event.Change,
		TotalPrice:    event.TotalPrice,
		Visual:        event.Visual,
		Scene:         &scene,
		Customization: event.Customization,
		Timestamp:     event.ChangedAt,
	})
	return nil
}

func (m *Module) handleSessionReset(_ context.Context, event events.SessionResetEvent, _ *mono.Msg) error {
	m.hub.Broadcast(event.SessionID, Update{
		Type:      UpdateReset,
		SessionID: event.SessionID,
		Timestamp: event.ResetAt,
	})
	return nil
}

// GetHub returns the WebSocket hub for the API module to use.
func (m *Module) GetHub() *Hub {
	return m.hub
}
