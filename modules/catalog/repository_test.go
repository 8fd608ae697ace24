package catalog

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/furniture-configurator/domain/catalog"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Each connection to :memory: is a separate database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	repo := NewRepository(db)
	if err := repo.Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func TestRepository_SaveAndLoad(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	if err := repo.Save(domain.DemoData()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	n, err := repo.CountProducts()
	if err != nil {
		t.Fatalf("CountProducts() error = %v", err)
	}
	if n != 6 {
		t.Errorf("expected 6 products, got %d", n)
	}

	data, err := repo.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(data.Materials) != 16 {
		t.Errorf("expected 16 materials, got %d", len(data.Materials))
	}
	if len(data.Parts) != 11 {
		t.Errorf("expected 11 parts, got %d", len(data.Parts))
	}

	want := []string{"sofa-modern-1", "sofa-classic-1", "bed-platform-1", "dressingtable-1", "tvtable-1", "chair-accent-1"}
	for i, id := range want {
		if data.Products[i].ID != id {
			t.Errorf("products[%d] = %s, want %s", i, data.Products[i].ID, id)
		}
	}

	sofa := data.Products[0]
	if sofa.BasePrice != 1299 {
		t.Errorf("expected base price 1299, got %d", sofa.BasePrice)
	}
	if len(sofa.AvailableParts) != 7 || sofa.AvailableParts[0].ID != "modern-metal" {
		t.Errorf("unexpected parts %+v", sofa.AvailableParts)
	}
	if len(sofa.AvailableParts[0].Materials) != 3 {
		t.Errorf("expected part materials to round-trip, got %v", sofa.AvailableParts[0].Materials)
	}
	if len(sofa.Tags) != 4 || sofa.Tags[0] != "modern" {
		t.Errorf("unexpected tags %v", sofa.Tags)
	}

	pine := data.Materials[4]
	if pine.ID != "pine" || pine.PriceModifier != -50 || !pine.EcoFriendly {
		t.Errorf("unexpected material %+v", pine)
	}
}

func TestRepository_SaveIsIdempotent(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	for i := 0; i < 2; i++ {
		if err := repo.Save(domain.DemoData()); err != nil {
			t.Fatalf("Save() #%d error = %v", i, err)
		}
	}

	n, err := repo.CountProducts()
	if err != nil {
		t.Fatalf("CountProducts() error = %v", err)
	}
	if n != 6 {
		t.Errorf("expected 6 products after double save, got %d", n)
	}
}

func TestRepository_DeletePart(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	if err := repo.Save(domain.DemoData()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := repo.DeletePart("tufted-buttons"); err != nil {
		t.Fatalf("DeletePart() error = %v", err)
	}

	data, err := repo.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for _, p := range data.Products {
		for _, part := range p.AvailableParts {
			if part.ID == "tufted-buttons" {
				t.Errorf("product %s still lists deleted part", p.ID)
			}
		}
	}

	err = repo.DeletePart("tufted-buttons")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_LoadRejectsDanglingReference(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	rec := ProductRecord{ID: "p", Name: "P", Category: "sofa", PartIDs: []string{"ghost"}}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("failed to insert product: %v", err)
	}

	_, err := repo.Load()
	if !errors.Is(err, ErrDanglingReference) {
		t.Errorf("expected ErrDanglingReference, got %v", err)
	}
}
