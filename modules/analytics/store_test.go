package analytics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/furniture-configurator/events"
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

func TestStore_RecordItemAdded(t *testing.T) {
	store := NewStore()
	now := time.Now()

	store.RecordItemAdded("sofa-modern-1", "velvet-gray", []string{"hairpin", "tufted-buttons"}, 2, 1849, now)
	store.RecordItemAdded("tvtable-1", "", nil, 1, 599, now)

	s := store.Summary()
	if s.TotalSales != 2*1849+599 {
		t.Errorf("Expected TotalSales = %d, got %d", 2*1849+599, s.TotalSales)
	}
	if s.ItemsAdded != 3 {
		t.Errorf("Expected ItemsAdded = 3, got %d", s.ItemsAdded)
	}
	if len(s.PopularProducts) != 2 || s.PopularProducts[0].ID != "sofa-modern-1" {
		t.Errorf("Expected sofa-modern-1 to lead popular products, got %+v", s.PopularProducts)
	}
	if len(s.PopularMaterials) != 1 {
		t.Errorf("Expected empty material to be skipped, got %+v", s.PopularMaterials)
	}
	if !s.LastItemAddedAt.Equal(now) {
		t.Errorf("Expected LastItemAddedAt = %v, got %v", now, s.LastItemAddedAt)
	}
}

func TestStore_IgnoresNonPositiveQuantity(t *testing.T) {
	store := NewStore()
	store.RecordItemAdded("sofa-modern-1", "oak", nil, 0, 1000, time.Now())

	if s := store.Summary(); s.ItemsAdded != 0 || s.TotalSales != 0 {
		t.Errorf("Expected no change, got %+v", s)
	}
}

func TestStore_RankingOrderAndLimit(t *testing.T) {
	store := NewStoreWithLimit(2)
	for _, id := range []string{"b", "a", "c", "c", "a", "c"} {
		store.RecordCustomization("", id, "", time.Now())
	}

	got := store.Summary().PopularMaterials
	want := []Count{{ID: "c", Count: 3}, {ID: "a", Count: 2}}
	if len(got) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.RecordItemAdded("chair-accent-1", "oak", []string{"tapered"}, 1, 100, time.Now())
		}()
		go func() {
			defer wg.Done()
			_ = store.Summary()
		}()
	}
	wg.Wait()

	if s := store.Summary(); s.ItemsAdded != 50 || s.TotalSales != 5000 {
		t.Errorf("Expected 50 items worth 5000, got %d worth %d", s.ItemsAdded, s.TotalSales)
	}
}

func TestModule_EventHandlers(t *testing.T) {
	m := NewModule(&mockLogger{})
	ctx := context.Background()

	changes := []events.CustomizationChangedEvent{
		{Change: events.ChangeProduct, ProductID: "bed-platform-1"},
		{Change: events.ChangeMaterial, ProductID: "bed-platform-1", MaterialID: "walnut"},
		{Change: events.ChangePart, ProductID: "bed-platform-1", PartType: "leg", PartID: "turned"},
		{Change: events.ChangeScene, ProductID: "bed-platform-1"},
	}
	for _, ev := range changes {
		if err := m.handleCustomizationChanged(ctx, ev, nil); err != nil {
			t.Fatalf("handleCustomizationChanged() error = %v", err)
		}
	}

	err := m.handleCartItemAdded(ctx, events.CartItemAddedEvent{
		CartID:     "cart-1",
		ProductID:  "bed-platform-1",
		MaterialID: "walnut",
		Parts:      map[string]string{"leg": "turned"},
		Quantity:   1,
		UnitPrice:  1599,
		AddedAt:    time.Now(),
	}, nil)
	if err != nil {
		t.Fatalf("handleCartItemAdded() error = %v", err)
	}

	resp, err := m.getAnalytics(ctx, GetAnalyticsRequest{}, nil)
	if err != nil {
		t.Fatalf("getAnalytics() error = %v", err)
	}
	if resp.Customizations != 3 {
		t.Errorf("Expected 3 customizations, got %d", resp.Customizations)
	}
	if resp.TotalSales != 1599 {
		t.Errorf("Expected TotalSales = 1599, got %d", resp.TotalSales)
	}
	if len(resp.PopularParts) != 1 || resp.PopularParts[0].Count != 2 {
		t.Errorf("Expected turned legs counted twice, got %+v", resp.PopularParts)
	}
}
