package api

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"github.com/gofiber/fiber/v2/utils"
)

// setupRoutes configures all HTTP routes.
func (m *Module) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	// WebSocket feed of one session
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/sessions/:id", websocket.New(m.handleWebSocket))

	v1 := app.Group("/api/v1")

	// Catalog
	cached := m.catalogCache()
	v1.Get("/products", cached, m.listProducts)
	v1.Get("/products/:id", cached, m.getProduct)
	v1.Get("/products/:id/parts", cached, m.listProductParts)
	v1.Get("/materials", cached, m.listMaterials)
	v1.Get("/materials/:id", cached, m.getMaterial)
	v1.Get("/parts/:id", cached, m.getPart)
	v1.Post("/catalog/reload", m.reloadCatalog)
	v1.Delete("/parts/:id", m.deletePart)

	// Configurator sessions
	v1.Post("/sessions", m.createSession)
	v1.Get("/sessions/:id", m.getSession)
	v1.Delete("/sessions/:id", m.deleteSession)
	v1.Put("/sessions/:id/product", m.selectProduct)
	v1.Put("/sessions/:id/material", m.setMaterial)
	v1.Put("/sessions/:id/parts/:type", m.setPart)
	v1.Delete("/sessions/:id/parts/:type", m.clearPart)
	v1.Put("/sessions/:id/ar", m.setAR)
	v1.Put("/sessions/:id/scene", m.updateScene)
	v1.Post("/sessions/:id/reset", m.resetSession)
	v1.Get("/sessions/:id/visual", m.getVisual)

	// Carts
	v1.Post("/carts/:cartId/items", m.addCartItem)
	v1.Get("/carts/:cartId", m.getCart)
	v1.Delete("/carts/:cartId", m.clearCart)
	v1.Put("/carts/:cartId/items/:itemId", m.updateCartItem)
	v1.Delete("/carts/:cartId/items/:itemId", m.removeCartItem)

	// Analytics
	v1.Get("/analytics", m.getAnalytics)
}

// catalogCache caches catalog reads keyed by full URL, query included.
// Reloads become visible once cached entries expire.
func (m *Module) catalogCache() fiber.Handler {
	if m.cfg.CacheTTL <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return cache.New(cache.Config{
		Expiration:   m.cfg.CacheTTL,
		CacheControl: true,
		KeyGenerator: func(c *fiber.Ctx) string {
			return utils.CopyString(c.OriginalURL())
		},
		Storage: m.cfg.CacheStorage,
	})
}

// healthHandler handles GET /health.
func (m *Module) healthHandler(c *fiber.Ctx) error {
	details := map[string]any{"module": "api"}
	if m.hub != nil {
		details["connected_clients"] = m.hub.ClientCount()
	}
	return c.JSON(HealthResponse{Status: "healthy", Details: details})
}
