// Package catalog serves the furniture catalog from SQLite. The catalog is
// loaded into an immutable snapshot at start and on reload; reads never
// touch the database.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/furniture-configurator/domain/catalog"
)

// Module provides catalog services via GORM + SQLite.
type Module struct {
	db       *gorm.DB
	repo     *Repository
	service  *Service
	holder   *domain.Holder
	dbPath   string
	seedDemo bool
	logger   types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a catalog module. When seedDemo is set an empty database
// is filled with the demo catalog on start.
func NewModule(dbPath string, seedDemo bool, logger types.Logger) *Module {
	return &Module{
		holder:   domain.NewHolder(nil),
		dbPath:   dbPath,
		seedDemo: seedDemo,
		logger:   logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "catalog"
}

// Holder returns the published catalog. It is empty until Start has loaded
// the database.
func (m *Module) Holder() *domain.Holder {
	return m.holder
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "get-product", json.Unmarshal, json.Marshal, m.getProduct,
	); err != nil {
		return fmt.Errorf("failed to register get-product service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-products", json.Unmarshal, json.Marshal, m.listProducts,
	); err != nil {
		return fmt.Errorf("failed to register list-products service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-material", json.Unmarshal, json.Marshal, m.getMaterial,
	); err != nil {
		return fmt.Errorf("failed to register get-material service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-part", json.Unmarshal, json.Marshal, m.getPart,
	); err != nil {
		return fmt.Errorf("failed to register get-part service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-parts-of-type", json.Unmarshal, json.Marshal, m.listPartsOfType,
	); err != nil {
		return fmt.Errorf("failed to register list-parts-of-type service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-materials", json.Unmarshal, json.Marshal, m.listMaterials,
	); err != nil {
		return fmt.Errorf("failed to register list-materials service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "reload-catalog", json.Unmarshal, json.Marshal, m.reloadCatalog,
	); err != nil {
		return fmt.Errorf("failed to register reload-catalog service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-part", json.Unmarshal, json.Marshal, m.deletePart,
	); err != nil {
		return fmt.Errorf("failed to register delete-part service: %w", err)
	}

	m.logger.Info("Registered services",
		"services", []string{"get-product", "list-products", "get-material", "get-part", "list-parts-of-type", "list-materials", "reload-catalog", "delete-part"})
	return nil
}

// Start opens the database, runs migrations, seeds if asked and loads the
// first snapshot.
func (m *Module) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db
	m.repo = NewRepository(db)
	m.service = NewService(m.repo, m.holder, m.logger)

	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if m.seedDemo {
		if _, err := m.service.SeedIfEmpty(domain.DemoData()); err != nil {
			return err
		}
	}

	if _, err := m.service.Reload(); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	m.logger.Info("Module started", "path", m.dbPath, "products", m.holder.Current().Len())
	return nil
}

// Stop closes the database connection.
func (m *Module) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	m.logger.Info("Module stopped")
	return nil
}

// Health reports database connectivity and the size of the loaded catalog.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver":   "sqlite",
			"path":     m.dbPath,
			"products": m.holder.Current().Len(),
		},
	}
}
