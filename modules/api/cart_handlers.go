package api

import (
	"github.com/gofiber/fiber/v2"
)

// addCartItem handles POST /api/v1/carts/:cartId/items.
func (m *Module) addCartItem(c *fiber.Ctx) error {
	var body AddCartItemBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if body.SessionID == "" {
		return badRequest(c, "session_id is required")
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	view, item, err := m.carts.AddItem(c.UserContext(), c.Params("cartId"), body.SessionID, body.Quantity)
	if err != nil {
		return m.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"cart": view,
		"item": item,
	})
}

// getCart handles GET /api/v1/carts/:cartId.
func (m *Module) getCart(c *fiber.Ctx) error {
	view, err := m.carts.GetCart(c.UserContext(), c.Params("cartId"))
	if err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(view)
}

// clearCart handles DELETE /api/v1/carts/:cartId.
func (m *Module) clearCart(c *fiber.Ctx) error {
	view, err := m.carts.ClearCart(c.UserContext(), c.Params("cartId"))
	if err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(view)
}

// updateCartItem handles PUT /api/v1/carts/:cartId/items/:itemId.
func (m *Module) updateCartItem(c *fiber.Ctx) error {
	var body UpdateQuantityBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	view, err := m.carts.UpdateQuantity(c.UserContext(), c.Params("cartId"), c.Params("itemId"), body.Quantity)
	if err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(view)
}

// removeCartItem handles DELETE /api/v1/carts/:cartId/items/:itemId.
func (m *Module) removeCartItem(c *fiber.Ctx) error {
	view, err := m.carts.RemoveItem(c.UserContext(), c.Params("cartId"), c.Params("itemId"))
	if err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(view)
}
