package cart

import (
	"context"

	"github.com/example/furniture-configurator/domain/apperr"
	domain "github.com/example/furniture-configurator/domain/cart"
	"github.com/example/furniture-configurator/domain/configurator"
)

// SnapshotSource provides detached customizations of configurator sessions.
type SnapshotSource interface {
	SnapshotSession(ctx context.Context, sessionID string) (*configurator.Snapshot, error)
}

// CartPort is the typed client other modules use to manage carts.
type CartPort interface {
	AddItem(ctx context.Context, cartID, sessionID string, quantity int) (*CartView, *domain.Item, error)
	GetCart(ctx context.Context, cartID string) (*CartView, error)
	RemoveItem(ctx context.Context, cartID, itemID string) (*CartView, error)
	UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) (*CartView, error)
	ClearCart(ctx context.Context, cartID string) (*CartView, error)
}

// CartView is a cart with its derived totals.
type CartView struct {
	*domain.Cart
	Total     int64 `json:"total"`
	ItemCount int   `json:"item_count"`
}

func newCartView(c *domain.Cart) *CartView {
	return &CartView{Cart: c, Total: c.Total(), ItemCount: c.ItemCount()}
}

// AddItemRequest is the request for add-cart-item. An empty CartID opens a
// new cart.
type AddItemRequest struct {
	CartID    string `json:"cart_id,omitempty"`
	SessionID string `json:"session_id"`
	Quantity  int    `json:"quantity"`
}

// AddItemResponse is the response for add-cart-item.
type AddItemResponse struct {
	Cart *CartView    `json:"cart,omitempty"`
	Item *domain.Item `json:"item,omitempty"`
	apperr.Fault
}

// CartRequest addresses one cart.
type CartRequest struct {
	CartID string `json:"cart_id"`
}

// RemoveItemRequest is the request for remove-cart-item.
type RemoveItemRequest struct {
	CartID string `json:"cart_id"`
	ItemID string `json:"item_id"`
}

// UpdateQuantityRequest is the request for update-cart-quantity.
type UpdateQuantityRequest struct {
	CartID   string `json:"cart_id"`
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// CartResponse carries a cart.
type CartResponse struct {
	Cart *CartView `json:"cart,omitempty"`
	apperr.Fault
}
