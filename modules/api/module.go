// Package api exposes the catalog, configurator sessions, carts and
// analytics over HTTP, plus a WebSocket feed per session.
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/furniture-configurator/modules/analytics"
	"github.com/example/furniture-configurator/modules/broadcast"
	"github.com/example/furniture-configurator/modules/cart"
	"github.com/example/furniture-configurator/modules/catalog"
	"github.com/example/furniture-configurator/modules/configurator"
)

// Config controls the HTTP server.
type Config struct {
	Port        string
	CORSOrigins string
	// CacheTTL is how long catalog GET responses are cached. Zero disables
	// response caching.
	CacheTTL time.Duration
	// CacheStorage backs the response cache. Nil keeps it in memory.
	CacheStorage fiber.Storage
}

// Module is the driving adapter that exposes REST and WebSocket endpoints.
type Module struct {
	app          *fiber.App
	cfg          Config
	catalog      catalog.CatalogPort
	configurator configurator.ConfiguratorPort
	carts        cart.CartPort
	analytics    analytics.AnalyticsPort
	hub          *broadcast.Hub
	logger       types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new API module.
func NewModule(cfg Config, logger types.Logger) *Module {
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.CORSOrigins == "" {
		cfg.CORSOrigins = "*"
	}
	return &Module{
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"catalog", "configurator", "cart", "analytics"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "catalog":
		m.catalog = catalog.NewCatalogAdapter(container)
	case "configurator":
		m.configurator = configurator.NewConfiguratorAdapter(container)
	case "cart":
		m.carts = cart.NewCartAdapter(container)
	case "analytics":
		m.analytics = analytics.NewAnalyticsAdapter(container)
	}
}

// SetHub sets the broadcast hub (called from main.go).
func (m *Module) SetHub(hub *broadcast.Hub) {
	m.hub = hub
}

// Start initializes the Fiber HTTP server.
func (m *Module) Start(_ context.Context) error {
	switch {
	case m.catalog == nil:
		return fmt.Errorf("catalog dependency not set")
	case m.configurator == nil:
		return fmt.Errorf("configurator dependency not set")
	case m.carts == nil:
		return fmt.Errorf("cart dependency not set")
	case m.analytics == nil:
		return fmt.Errorf("analytics dependency not set")
	case m.hub == nil:
		return fmt.Errorf("broadcast hub dependency not set")
	}

	m.app = m.newApp()

	// Server availability is verified via Health().
	go func() {
		if err := m.app.Listen(":" + m.cfg.Port); err != nil {
			m.logger.Error("HTTP server error", "error", err)
		}
	}()

	m.logger.Info("HTTP server started", "port", m.cfg.Port, "cacheTTL", m.cfg.CacheTTL.String())
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *Module) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	m.logger.Info("Shutting down HTTP server")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	details := map[string]any{"port": m.cfg.Port}
	if m.hub != nil {
		details["connected_clients"] = m.hub.ClientCount()
	}
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: details,
	}
}

// newApp builds the Fiber application with middleware and routes.
func (m *Module) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          60 * time.Second,
		IdleTimeout:           120 * time.Second,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Get(fiber.HeaderUpgrade) == "websocket"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: m.cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	m.setupRoutes(app)
	return app
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
