package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/furniture-configurator/domain/apperr"
	domain "github.com/example/furniture-configurator/domain/catalog"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any) {}
func (m *mockLogger) Info(_ string, _ ...any)  {}
func (m *mockLogger) Warn(_ string, _ ...any)  {}
func (m *mockLogger) Error(_ string, _ ...any) {}
func (m *mockLogger) With(_ ...any) types.Logger {
	return m
}
func (m *mockLogger) WithModule(_ string) types.Logger {
	return m
}
func (m *mockLogger) WithError(_ error) types.Logger {
	return m
}

// newTestModule wires a module against an in-memory database without going
// through Start.
func newTestModule(t *testing.T) *Module {
	t.Helper()

	m := NewModule(":memory:", true, &mockLogger{})
	m.db = setupTestDB(t)
	m.repo = NewRepository(m.db)
	m.service = NewService(m.repo, m.holder, m.logger)

	if _, err := m.service.SeedIfEmpty(domain.DemoData()); err != nil {
		t.Fatalf("SeedIfEmpty() error = %v", err)
	}
	if _, err := m.service.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	return m
}

func TestService_SeedIfEmpty(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	svc := NewService(repo, domain.NewHolder(nil), &mockLogger{})

	seeded, err := svc.SeedIfEmpty(domain.DemoData())
	if err != nil {
		t.Fatalf("SeedIfEmpty() error = %v", err)
	}
	if !seeded {
		t.Error("expected first call to seed")
	}

	seeded, err = svc.SeedIfEmpty(domain.DemoData())
	if err != nil {
		t.Fatalf("SeedIfEmpty() error = %v", err)
	}
	if seeded {
		t.Error("expected second call to skip seeding")
	}
}

func TestService_ReloadSwapsSnapshot(t *testing.T) {
	m := newTestModule(t)

	before := m.holder.Current()
	if _, err := before.GetPart("tufted-buttons"); err != nil {
		t.Fatalf("expected part before reload: %v", err)
	}

	if err := m.repo.DeletePart("tufted-buttons"); err != nil {
		t.Fatalf("DeletePart() error = %v", err)
	}
	res, err := m.service.Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if res.Parts != 10 {
		t.Errorf("expected 10 parts, got %d", res.Parts)
	}

	if _, err := m.holder.GetPart("tufted-buttons"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected part to be gone after reload, got %v", err)
	}
	// Old snapshots stay intact for readers holding them.
	if _, err := before.GetPart("tufted-buttons"); err != nil {
		t.Errorf("old snapshot changed: %v", err)
	}
}

func TestService_DeletePartPublishesSnapshot(t *testing.T) {
	m := newTestModule(t)

	res, err := m.service.DeletePart("tufted-buttons")
	if err != nil {
		t.Fatalf("DeletePart() error = %v", err)
	}
	if res.Parts != 10 {
		t.Errorf("expected 10 parts, got %d", res.Parts)
	}
	if _, err := m.holder.GetPart("tufted-buttons"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected part to be gone, got %v", err)
	}
	for _, p := range m.holder.Current().ProductsByCategory(domain.AllCategories) {
		for _, part := range p.AvailableParts {
			if part.ID == "tufted-buttons" {
				t.Errorf("product %s still offers the deleted part", p.ID)
			}
		}
	}

	if _, err := m.service.DeletePart("tufted-buttons"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestService_ReloadFailureKeepsSnapshot(t *testing.T) {
	m := newTestModule(t)

	rec := ProductRecord{ID: "broken", Name: "Broken", Category: "sofa", MaterialIDs: []string{"ghost"}}
	if err := m.db.Create(&rec).Error; err != nil {
		t.Fatalf("failed to insert product: %v", err)
	}

	if _, err := m.service.Reload(); err == nil {
		t.Fatal("expected reload to fail")
	}
	if m.holder.Current().Len() != 6 {
		t.Errorf("expected previous snapshot to remain, got %d products", m.holder.Current().Len())
	}
}

func TestService_ConcurrentReloads(t *testing.T) {
	m := newTestModule(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.service.Reload(); err != nil {
				t.Errorf("Reload() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if m.holder.Current().Len() != 6 {
		t.Errorf("expected 6 products, got %d", m.holder.Current().Len())
	}
}

func TestHandlers(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	t.Run("get-product", func(t *testing.T) {
		resp, err := m.getProduct(ctx, GetProductRequest{ProductID: "bed-platform-1"}, nil)
		if err != nil {
			t.Fatalf("getProduct() error = %v", err)
		}
		if resp.Product == nil || resp.Product.BasePrice != 899 {
			t.Errorf("unexpected response %+v", resp)
		}

		resp, _ = m.getProduct(ctx, GetProductRequest{ProductID: "missing"}, nil)
		if resp.ErrorCode != apperr.CodeNotFound {
			t.Errorf("expected not_found, got %q", resp.ErrorCode)
		}
		if !errors.Is(resp.Err(), domain.ErrNotFound) {
			t.Errorf("expected fault to rebuild ErrNotFound, got %v", resp.Err())
		}
	})

	t.Run("list-products", func(t *testing.T) {
		resp, err := m.listProducts(ctx, ListProductsRequest{Category: "sofa"}, nil)
		if err != nil {
			t.Fatalf("listProducts() error = %v", err)
		}
		if resp.Total != 2 {
			t.Errorf("expected 2 sofas, got %d", resp.Total)
		}

		resp, _ = m.listProducts(ctx, ListProductsRequest{Category: "unknown"}, nil)
		if resp.Total != 0 || resp.Products == nil {
			t.Errorf("expected empty non-nil list, got %+v", resp)
		}
	})

	t.Run("list-parts-of-type", func(t *testing.T) {
		resp, err := m.listPartsOfType(ctx, ListPartsOfTypeRequest{ProductID: "tvtable-1", PartType: domain.PartArt}, nil)
		if err != nil {
			t.Fatalf("listPartsOfType() error = %v", err)
		}
		if resp.ErrorCode != "" {
			t.Fatalf("unexpected fault %+v", resp.Fault)
		}
		if resp.Options == nil || len(resp.Options) != 0 {
			t.Errorf("expected empty options, got %+v", resp.Options)
		}

		resp, _ = m.listPartsOfType(ctx, ListPartsOfTypeRequest{ProductID: "sofa-classic-1", PartType: domain.PartLeg}, nil)
		if len(resp.Options) != 2 {
			t.Fatalf("expected 2 leg options, got %d", len(resp.Options))
		}
		if got := len(resp.Options[0].CompatibleMaterials); got != 4 {
			t.Errorf("expected carved legs to accept 4 materials, got %d", got)
		}
	})

	t.Run("get-material and get-part", func(t *testing.T) {
		mat, _ := m.getMaterial(ctx, GetMaterialRequest{MaterialID: "velvet-gray"}, nil)
		if mat.Material == nil || mat.Material.PriceModifier != 250 {
			t.Errorf("unexpected material %+v", mat)
		}
		part, _ := m.getPart(ctx, GetPartRequest{PartID: "nope"}, nil)
		if part.ErrorCode != apperr.CodeNotFound {
			t.Errorf("expected not_found, got %q", part.ErrorCode)
		}
	})

	t.Run("list-materials", func(t *testing.T) {
		resp, _ := m.listMaterials(ctx, ListMaterialsRequest{}, nil)
		if len(resp.Materials) != 16 {
			t.Errorf("expected 16 materials, got %d", len(resp.Materials))
		}
	})

	t.Run("reload-catalog", func(t *testing.T) {
		resp, _ := m.reloadCatalog(ctx, ReloadCatalogRequest{}, nil)
		if resp.Result == nil || resp.Result.Products != 6 {
			t.Errorf("unexpected reload response %+v", resp)
		}
	})

	t.Run("delete-part", func(t *testing.T) {
		resp, _ := m.deletePart(ctx, DeletePartRequest{PartID: "hairpin"}, nil)
		if resp.ErrorCode != "" || resp.Result == nil {
			t.Fatalf("unexpected delete response %+v", resp)
		}
		if _, err := m.holder.GetPart("hairpin"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected hairpin to be gone, got %v", err)
		}

		resp, _ = m.deletePart(ctx, DeletePartRequest{PartID: "hairpin"}, nil)
		if !errors.Is(resp.Err(), domain.ErrNotFound) {
			t.Errorf("expected fault to rebuild ErrNotFound, got %v", resp.Err())
		}
	})
}

func TestModule_HealthBeforeStart(t *testing.T) {
	m := NewModule(":memory:", false, &mockLogger{})
	if m.Health(context.Background()).Healthy {
		t.Error("expected unhealthy before start")
	}
	if m.Holder().Current().Len() != 0 {
		t.Error("expected empty catalog before start")
	}
}
