package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"

	"github.com/example/furniture-configurator/domain/configurator"
)

// Change kinds carried by CustomizationChangedEvent.
const (
	ChangeProduct  = "product"
	ChangeMaterial = "material"
	ChangePart     = "part"
	ChangeScene    = "scene"
	ChangeAR       = "ar"
	ChangeRestore  = "restore"
)

// CustomizationChangedEvent is emitted after every successful mutation of a
// configurator session.
type CustomizationChangedEvent struct {
	SessionID     string                      `json:"session_id"`
	Change        string                      `json:"change"`
	ProductID     string                      `json:"product_id,omitempty"`
	MaterialID    string                      `json:"material_id,omitempty"`
	PartType      string                      `json:"part_type,omitempty"`
	PartID        string                      `json:"part_id,omitempty"`
	TotalPrice    int64                       `json:"total_price"`
	Visual        *configurator.VisualConfig  `json:"visual,omitempty"`
	Scene         configurator.SceneConfig    `json:"scene"`
	Customization *configurator.Customization `json:"customization,omitempty"`
	ChangedAt     time.Time                   `json:"changed_at"`
}

// CustomizationChangedV1 is the typed event definition for session changes.
// Subject: events.configurator.v1.customization-changed
var CustomizationChangedV1 = helper.EventDefinition[CustomizationChangedEvent](
	"configurator", "CustomizationChanged", "v1",
)

// SessionResetEvent is emitted when a session goes back to empty.
type SessionResetEvent struct {
	SessionID string    `json:"session_id"`
	ResetAt   time.Time `json:"reset_at"`
}

// SessionResetV1 is the typed event definition for session resets.
// Subject: events.configurator.v1.session-reset
var SessionResetV1 = helper.EventDefinition[SessionResetEvent](
	"configurator", "SessionReset", "v1",
)
