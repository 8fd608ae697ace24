package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	domain "github.com/example/furniture-configurator/domain/cart"
)

// cartAdapter wraps ServiceContainer for type-safe cross-module
// communication. It implements CartPort.
type cartAdapter struct {
	container mono.ServiceContainer
}

// NewCartAdapter creates a new adapter for cart services.
func NewCartAdapter(container mono.ServiceContainer) CartPort {
	if container == nil {
		panic("cart adapter requires non-nil ServiceContainer")
	}
	return &cartAdapter{container: container}
}

func callService[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

// AddItem adds a session's customization to a cart.
func (a *cartAdapter) AddItem(ctx context.Context, cartID, sessionID string, quantity int) (*CartView, *domain.Item, error) {
	req := AddItemRequest{CartID: cartID, SessionID: sessionID, Quantity: quantity}
	var resp AddItemResponse
	if err := callService(ctx, a.container, "add-cart-item", &req, &resp); err != nil {
		return nil, nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, nil, err
	}
	return resp.Cart, resp.Item, nil
}

// GetCart returns a cart.
func (a *cartAdapter) GetCart(ctx context.Context, cartID string) (*CartView, error) {
	return a.cart(ctx, "get-cart", &CartRequest{CartID: cartID})
}

// RemoveItem deletes a cart line.
func (a *cartAdapter) RemoveItem(ctx context.Context, cartID, itemID string) (*CartView, error) {
	return a.cart(ctx, "remove-cart-item", &RemoveItemRequest{CartID: cartID, ItemID: itemID})
}

// UpdateQuantity changes a line's quantity.
func (a *cartAdapter) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) (*CartView, error) {
	return a.cart(ctx, "update-cart-quantity", &UpdateQuantityRequest{CartID: cartID, ItemID: itemID, Quantity: quantity})
}

// ClearCart empties a cart.
func (a *cartAdapter) ClearCart(ctx context.Context, cartID string) (*CartView, error) {
	return a.cart(ctx, "clear-cart", &CartRequest{CartID: cartID})
}

func (a *cartAdapter) cart(ctx context.Context, service string, req any) (*CartView, error) {
	var resp CartResponse
	if err := callService(ctx, a.container, service, &req, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Cart, nil
}
