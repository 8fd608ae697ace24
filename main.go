package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	kvjetstream "github.com/go-monolith/mono/plugin/kv-jetstream"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/redis/v3"

	"github.com/example/furniture-configurator/modules/analytics"
	"github.com/example/furniture-configurator/modules/api"
	"github.com/example/furniture-configurator/modules/broadcast"
	"github.com/example/furniture-configurator/modules/cart"
	"github.com/example/furniture-configurator/modules/catalog"
	"github.com/example/furniture-configurator/modules/configurator"
	"github.com/example/furniture-configurator/modules/sessionstore"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := loadConfig()

	log.Println("=== Furniture Configurator ===")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Catalog DB: %s (seed demo: %t)", cfg.DBPath, cfg.SeedDemo)
	log.Printf("JetStream Dir: %s", cfg.JetStreamDir)
	if cfg.RedisAddr != "" {
		log.Printf("Redis: %s", cfg.RedisAddr)
	} else {
		log.Println("Redis: disabled (sessions in memory only)")
	}

	// Create mono application with embedded NATS JetStream
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
		mono.WithJetStreamStorageDir(cfg.JetStreamDir),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Carts live in a JetStream KV bucket and expire after CART_TTL
	kv, err := kvjetstream.New(kvjetstream.Config{
		Buckets: []kvjetstream.BucketConfig{
			{
				Name:        cart.BucketName,
				Description: "Shopping carts",
				TTL:         cfg.CartTTL,
				Storage:     kvjetstream.FileStorage,
			},
		},
	})
	if err != nil {
		log.Fatalf("Failed to create KV plugin: %v", err)
	}
	// The framework will call SetPlugin("kv", kv) on modules that implement
	// UsePluginModule
	if err := app.RegisterPlugin(kv, "kv"); err != nil {
		log.Fatalf("Failed to register KV plugin: %v", err)
	}

	logger := app.Logger()

	catalogModule := catalog.NewModule(cfg.DBPath, cfg.SeedDemo, logger.WithModule("catalog"))

	// A nil interface keeps sessions in memory; never pass a typed nil here.
	var sessions configurator.SessionStore
	var storeModule *sessionstore.Module
	if cfg.RedisAddr != "" {
		storeModule = sessionstore.NewModule(cfg.RedisAddr, cfg.SessionPrefix, cfg.SessionTTL, logger.WithModule("sessionstore"))
		sessions = storeModule.Store()
	}

	configuratorModule := configurator.NewModule(
		catalogModule.Holder(),
		sessions,
		configurator.Config{IdleTimeout: cfg.IdleTimeout, SweepInterval: cfg.SweepInterval},
		logger.WithModule("configurator"),
	)

	// Catalog responses are cached in Redis when it is available, otherwise
	// in process memory.
	var cacheStorage fiber.Storage
	var redisStorage *redis.Storage
	if cfg.RedisAddr != "" {
		host, port := parseRedisAddr(cfg.RedisAddr)
		redisStorage = redis.New(redis.Config{
			Host:     host,
			Port:     port,
			PoolSize: 20,
		})
		cacheStorage = redisStorage
	}

	broadcastModule := broadcast.NewModule(logger.WithModule("broadcast"))
	apiModule := api.NewModule(api.Config{
		Port:         strconv.Itoa(cfg.HTTPPort),
		CORSOrigins:  cfg.CORSOrigins,
		CacheTTL:     cfg.CatalogCacheTTL,
		CacheStorage: cacheStorage,
	}, logger.WithModule("api"))
	apiModule.SetHub(broadcastModule.GetHub())

	// Register modules with the framework.
	// Order: independent modules first, then modules with dependencies
	// - catalog: products, materials and parts (SQLite)
	// - sessionstore: Redis persistence for sessions (optional)
	// - configurator: sessions, emits customization events
	// - cart: JetStream KV storage, depends on configurator
	// - analytics, broadcast: event consumers
	// - api: driving adapter (Fiber HTTP + WebSocket)
	app.Register(catalogModule)
	if storeModule != nil {
		app.Register(storeModule)
	}
	app.Register(configuratorModule)
	app.Register(cart.NewModule(cfg.CartTTL, logger.WithModule("cart")))
	app.Register(analytics.NewModule(logger.WithModule("analytics")))
	app.Register(broadcastModule)
	app.Register(apiModule)

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	operations := map[string]gfshutdown.Operation{
		"mono-app": func(ctx context.Context) error {
			log.Println("Graceful shutdown initiated...")
			return app.Stop(ctx)
		},
	}
	if redisStorage != nil {
		operations["catalog-cache"] = func(_ context.Context) error {
			return redisStorage.Close()
		}
	}

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(context.Background(), shutdownTimeout, operations)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("Architecture:")
	log.Println("  - HTTP Framework: Fiber (REST + WebSocket)")
	log.Println("  - Catalog: SQLite via GORM")
	log.Println("  - Carts: NATS JetStream KV Store")
	if cfg.RedisAddr != "" {
		log.Println("  - Sessions and catalog cache: Redis")
	}
	log.Println("")
	log.Println("Event-Driven Modules:")
	log.Println("  - CustomizationChanged events -> analytics, broadcast")
	log.Println("  - CartItemAdded events -> analytics")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.HTTPPort)
	log.Println("  GET    /api/v1/products                 - List products (filterable)")
	log.Println("  GET    /api/v1/products/:id             - Get a product")
	log.Println("  GET    /api/v1/products/:id/parts?type= - Part options with compatible materials")
	log.Println("  GET    /api/v1/materials                - List materials")
	log.Println("  POST   /api/v1/sessions                 - Start a configurator session")
	log.Println("  PUT    /api/v1/sessions/:id/product     - Select a product")
	log.Println("  PUT    /api/v1/sessions/:id/material    - Select a material")
	log.Println("  PUT    /api/v1/sessions/:id/parts/:type - Select a part")
	log.Println("  POST   /api/v1/sessions/:id/reset       - Reset a session")
	log.Println("  POST   /api/v1/carts/:cartId/items      - Add the session's design to a cart")
	log.Println("  GET    /api/v1/analytics                - Popularity and sales summary")
	log.Println("  GET    /ws/sessions/:id                 - Live session updates")
	log.Println("  GET    /health                          - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
