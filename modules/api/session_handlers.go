package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/furniture-configurator/domain/catalog"
	domain "github.com/example/furniture-configurator/domain/configurator"
)

// createSession handles POST /api/v1/sessions.
func (m *Module) createSession(c *fiber.Ctx) error {
	v, err := m.configurator.CreateSession(c.UserContext())
	if err != nil {
		return m.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

// getSession handles GET /api/v1/sessions/:id.
func (m *Module) getSession(c *fiber.Ctx) error {
	v, err := m.configurator.GetSession(c.UserContext(), c.Params("id"))
	return m.writeView(c, v, err)
}

// deleteSession handles DELETE /api/v1/sessions/:id.
func (m *Module) deleteSession(c *fiber.Ctx) error {
	if err := m.configurator.DeleteSession(c.UserContext(), c.Params("id")); err != nil {
		return m.writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// selectProduct handles PUT /api/v1/sessions/:id/product.
func (m *Module) selectProduct(c *fiber.Ctx) error {
	var body SelectProductBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if body.ProductID == "" {
		return badRequest(c, "product_id is required")
	}
	v, err := m.configurator.SelectProduct(c.UserContext(), c.Params("id"), body.ProductID)
	return m.writeView(c, v, err)
}

// setMaterial handles PUT /api/v1/sessions/:id/material.
func (m *Module) setMaterial(c *fiber.Ctx) error {
	var body SetMaterialBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	v, err := m.configurator.SetMaterial(c.UserContext(), c.Params("id"), body.MaterialID)
	return m.writeView(c, v, err)
}

// setPart handles PUT /api/v1/sessions/:id/parts/:type.
func (m *Module) setPart(c *fiber.Ctx) error {
	var body SetPartBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if body.PartID == "" {
		return badRequest(c, "part_id is required")
	}
	v, err := m.configurator.SetPart(c.UserContext(), c.Params("id"), catalog.PartType(c.Params("type")), body.PartID)
	return m.writeView(c, v, err)
}

// clearPart handles DELETE /api/v1/sessions/:id/parts/:type.
func (m *Module) clearPart(c *fiber.Ctx) error {
	v, err := m.configurator.ClearPart(c.UserContext(), c.Params("id"), catalog.PartType(c.Params("type")))
	return m.writeView(c, v, err)
}

// setAR handles PUT /api/v1/sessions/:id/ar.
func (m *Module) setAR(c *fiber.Ctx) error {
	var body SetARBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	v, err := m.configurator.SetAR(c.UserContext(), c.Params("id"), body.Active, body.FurnitureScale)
	return m.writeView(c, v, err)
}

// updateScene handles PUT /api/v1/sessions/:id/scene.
func (m *Module) updateScene(c *fiber.Ctx) error {
	var body SceneBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	v, err := m.configurator.UpdateScene(c.UserContext(), c.Params("id"), body)
	return m.writeView(c, v, err)
}

// resetSession handles POST /api/v1/sessions/:id/reset.
func (m *Module) resetSession(c *fiber.Ctx) error {
	v, err := m.configurator.ResetSession(c.UserContext(), c.Params("id"))
	return m.writeView(c, v, err)
}

// getVisual handles GET /api/v1/sessions/:id/visual.
func (m *Module) getVisual(c *fiber.Ctx) error {
	v, err := m.configurator.GetSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return m.writeError(c, err)
	}
	if v.Visual == nil {
		return m.writeError(c, domain.ErrNoProductSelected)
	}
	return c.JSON(v.Visual)
}

func (m *Module) writeView(c *fiber.Ctx, v *domain.View, err error) error {
	if err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(v)
}
