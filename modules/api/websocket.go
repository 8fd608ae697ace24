package api

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	domain "github.com/example/furniture-configurator/domain/configurator"
	"github.com/example/furniture-configurator/modules/broadcast"
)

// handleWebSocket serves /ws/sessions/:id. The viewer first receives the
// current session view, then every change pushed through the hub.
func (m *Module) handleWebSocket(c *websocket.Conn) {
	sessionID := c.Params("id")

	v, err := m.configurator.GetSession(context.Background(), sessionID)
	if err != nil {
		_ = c.WriteJSON(ErrorResponse{Error: "not_found", Message: err.Error()})
		_ = c.Close()
		return
	}

	scene := v.Scene
	_ = c.WriteJSON(broadcast.Update{
		Type:          broadcast.UpdateCustomization,
		SessionID:     sessionID,
		Visual:        v.Visual,
		Scene:         &scene,
		Customization: v.Customization,
		TotalPrice:    totalOf(v.Customization),
		Timestamp:     v.UpdatedAt,
	})

	// The hub is the only writer from here on.
	client := &broadcast.Client{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Conn:      c,
	}
	m.hub.Register(client)
	defer func() {
		m.hub.Unregister(client)
		m.logger.Debug("WebSocket viewer disconnected", "clientID", client.ID, "sessionID", sessionID)
	}()

	// Viewers only listen; reading detects the disconnect.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

func totalOf(c *domain.Customization) int64 {
	if c == nil {
		return 0
	}
	return c.TotalPrice
}
