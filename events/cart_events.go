package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// CartItemAddedEvent is emitted when a customized product lands in a cart.
type CartItemAddedEvent struct {
	CartID     string            `json:"cart_id"`
	ItemID     string            `json:"item_id"`
	ProductID  string            `json:"product_id"`
	MaterialID string            `json:"material_id,omitempty"`
	Parts      map[string]string `json:"parts"`
	Quantity   int               `json:"quantity"`
	UnitPrice  int64             `json:"unit_price"`
	AddedAt    time.Time         `json:"added_at"`
}

// CartItemAddedV1 is the typed event definition for cart additions.
// Subject: events.cart.v1.cart-item-added
var CartItemAddedV1 = helper.EventDefinition[CartItemAddedEvent](
	"cart", "CartItemAdded", "v1",
)
