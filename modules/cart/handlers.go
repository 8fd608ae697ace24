package cart

import (
	"context"
	"time"

	"github.com/go-monolith/mono"

	"github.com/example/furniture-configurator/domain/apperr"
	domain "github.com/example/furniture-configurator/domain/cart"
	"github.com/example/furniture-configurator/events"
)

// addItem handles the add-cart-item service request.
func (m *Module) addItem(ctx context.Context, req AddItemRequest, _ *mono.Msg) (AddItemResponse, error) {
	c, item, err := m.service.AddItem(ctx, req.CartID, req.SessionID, req.Quantity)
	if err != nil {
		m.logger.Debug("Add to cart rejected", "cartID", req.CartID, "sessionID", req.SessionID, "error", err)
		return AddItemResponse{Fault: apperr.NewFault(err)}, nil
	}

	m.logger.Info("Item added to cart",
		"cartID", c.ID,
		"itemID", item.ID,
		"productID", item.ProductID,
		"quantity", req.Quantity)
	m.publishItemAdded(c.ID, item, req.Quantity)

	return AddItemResponse{Cart: newCartView(c), Item: &item}, nil
}

// getCart handles the get-cart service request.
func (m *Module) getCart(ctx context.Context, req CartRequest, _ *mono.Msg) (CartResponse, error) {
	c, err := m.service.Get(ctx, req.CartID)
	if err != nil {
		return CartResponse{Fault: apperr.NewFault(err)}, nil
	}
	return CartResponse{Cart: newCartView(c)}, nil
}

// removeItem handles the remove-cart-item service request.
func (m *Module) removeItem(ctx context.Context, req RemoveItemRequest, _ *mono.Msg) (CartResponse, error) {
	c, err := m.service.RemoveItem(ctx, req.CartID, req.ItemID)
	if err != nil {
		return CartResponse{Fault: apperr.NewFault(err)}, nil
	}
	return CartResponse{Cart: newCartView(c)}, nil
}

// updateQuantity handles the update-cart-quantity service request.
func (m *Module) updateQuantity(ctx context.Context, req UpdateQuantityRequest, _ *mono.Msg) (CartResponse, error) {
	c, err := m.service.UpdateQuantity(ctx, req.CartID, req.ItemID, req.Quantity)
	if err != nil {
		return CartResponse{Fault: apperr.NewFault(err)}, nil
	}
	return CartResponse{Cart: newCartView(c)}, nil
}

// clearCart handles the clear-cart service request.
func (m *Module) clearCart(ctx context.Context, req CartRequest, _ *mono.Msg) (CartResponse, error) {
	c, err := m.service.Clear(ctx, req.CartID)
	if err != nil {
		return CartResponse{Fault: apperr.NewFault(err)}, nil
	}
	m.logger.Info("Cart cleared", "cartID", req.CartID)
	return CartResponse{Cart: newCartView(c)}, nil
}

func (m *Module) publishItemAdded(cartID string, item domain.Item, quantity int) {
	if m.eventBus == nil {
		return
	}

	parts := make(map[string]string, len(item.Customization.SelectedParts))
	for partType, partID := range item.Customization.SelectedParts {
		parts[string(partType)] = partID
	}

	event := events.CartItemAddedEvent{
		CartID:     cartID,
		ItemID:     item.ID,
		ProductID:  item.ProductID,
		MaterialID: item.Customization.SelectedMaterial,
		Parts:      parts,
		Quantity:   quantity,
		UnitPrice:  item.UnitPrice,
		AddedAt:    time.Now(),
	}
	if err := events.CartItemAddedV1.Publish(m.eventBus, event, nil); err != nil {
		// Event publishing is best-effort; log but don't fail the operation
		m.logger.Warn("Failed to publish CartItemAdded event", "cartID", cartID, "error", err)
	}
}
