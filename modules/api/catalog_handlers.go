package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	domain "github.com/example/furniture-configurator/domain/catalog"
	"github.com/example/furniture-configurator/modules/catalog"
)

// listProducts handles GET /api/v1/products.
func (m *Module) listProducts(c *fiber.Ctx) error {
	req := &catalog.ListProductsRequest{
		Category:  c.Query("category"),
		Materials: splitList(c.Query("material")),
		Tags:      splitList(c.Query("tag")),
	}

	if v := c.Query("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "featured must be a boolean")
		}
		req.FeaturedOnly = featured
	}
	if v := c.Query("eco"); v != "" {
		eco, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "eco must be a boolean")
		}
		req.EcoFriendly = &eco
	}
	for name, dst := range map[string]**int64{"min_price": &req.MinPrice, "max_price": &req.MaxPrice} {
		v := c.Query(name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return badRequest(c, name+" must be an integer")
		}
		*dst = &n
	}

	resp, err := m.catalog.ListProducts(c.UserContext(), req)
	if err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(resp)
}

// getProduct handles GET /api/v1/products/:id.
func (m *Module) getProduct(c *fiber.Ctx) error {
	p, err := m.catalog.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(p)
}

// listProductParts handles GET /api/v1/products/:id/parts?type=.
func (m *Module) listProductParts(c *fiber.Ctx) error {
	resp, err := m.catalog.ListPartsOfType(c.UserContext(), c.Params("id"), domain.PartType(c.Query("type")))
	if err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(resp)
}

// listMaterials handles GET /api/v1/materials.
func (m *Module) listMaterials(c *fiber.Ctx) error {
	materials, err := m.catalog.ListMaterials(c.UserContext())
	if err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(fiber.Map{"materials": materials})
}

// getMaterial handles GET /api/v1/materials/:id.
func (m *Module) getMaterial(c *fiber.Ctx) error {
	mat, err := m.catalog.GetMaterial(c.UserContext(), c.Params("id"))
	if err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(mat)
}

// getPart handles GET /api/v1/parts/:id.
func (m *Module) getPart(c *fiber.Ctx) error {
	p, err := m.catalog.GetPart(c.UserContext(), c.Params("id"))
	if err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(p)
}

// reloadCatalog handles POST /api/v1/catalog/reload.
func (m *Module) reloadCatalog(c *fiber.Ctx) error {
	res, err := m.catalog.Reload(c.UserContext())
	if err != nil {
		return m.writeError(c, err)
	}
	m.logger.Info("Catalog reloaded", "products", res.Products)
	return c.JSON(res)
}

// deletePart handles DELETE /api/v1/parts/:id. The catalog reloads before
// the response is written.
func (m *Module) deletePart(c *fiber.Ctx) error {
	id := c.Params("id")
	res, err := m.catalog.DeletePart(c.UserContext(), id)
	if err != nil {
		return m.writeError(c, err)
	}
	m.logger.Info("Part deleted", "part_id", id, "parts", res.Parts)
	return c.JSON(res)
}

// getAnalytics handles GET /api/v1/analytics.
func (m *Module) getAnalytics(c *fiber.Ctx) error {
	summary, err := m.analytics.GetSummary(c.UserContext())
	if err != nil {
		return m.writeError(c, err)
	}
	return c.JSON(summary)
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
