package cart

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/furniture-configurator/domain/apperr"
	domain "github.com/example/furniture-configurator/domain/cart"
	"github.com/example/furniture-configurator/domain/catalog"
	"github.com/example/furniture-configurator/domain/configurator"
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

// fakeSessions serves snapshots from in-process sessions.
type fakeSessions struct {
	sessions map[string]*configurator.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]*configurator.Session)}
}

func (f *fakeSessions) add(t *testing.T, id, productID string) *configurator.Session {
	t.Helper()
	s := configurator.NewSession(id, catalog.MustDemo())
	if productID != "" {
		_, err := s.SelectProduct(productID)
		require.NoError(t, err)
	}
	f.sessions[id] = s
	return s
}

func (f *fakeSessions) SnapshotSession(_ context.Context, id string) (*configurator.Snapshot, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, configurator.ErrSessionNotFound)
	}
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func newTestService(t *testing.T, sessions *fakeSessions) *Service {
	t.Helper()
	svc, err := NewService(NewMemoryStore(), sessions, &mockLogger{})
	require.NoError(t, err)
	return svc
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()
	sessions := newFakeSessions()
	s := sessions.add(t, "s1", "sofa-modern-1")
	_, err := s.SetPart(catalog.PartLeg, "hairpin")
	require.NoError(t, err)

	svc := newTestService(t, sessions)
	c, item, err := svc.AddItem(ctx, "", "s1", 2)
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID, "expected a generated cart id")
	assert.Len(t, item.ID, 12)
	assert.Equal(t, int64(1299+120), item.UnitPrice)
	assert.Equal(t, int64(2*(1299+120)), c.Total())

	stored, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "hairpin", stored.Items[0].Customization.SelectedParts[catalog.PartLeg])
}

func TestService_AddItemDetachesFromSession(t *testing.T) {
	ctx := context.Background()
	sessions := newFakeSessions()
	s := sessions.add(t, "s1", "sofa-modern-1")

	svc := newTestService(t, sessions)
	c, _, err := svc.AddItem(ctx, "cart-1", "s1", 1)
	require.NoError(t, err)

	_, err = s.SetMaterial("velvet-gray")
	require.NoError(t, err)

	stored, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "linen-beige", stored.Items[0].Customization.SelectedMaterial)
	assert.Equal(t, int64(1299), stored.Items[0].UnitPrice)

	v := s.View()
	assert.Equal(t, configurator.StatusConfiguring, v.Status, "session should be untouched")
}

func TestService_AddItemMergesSameConfiguration(t *testing.T) {
	ctx := context.Background()
	sessions := newFakeSessions()
	sessions.add(t, "s1", "tvtable-1")

	svc := newTestService(t, sessions)
	_, first, err := svc.AddItem(ctx, "cart-1", "s1", 1)
	require.NoError(t, err)
	c, second, err := svc.AddItem(ctx, "cart-1", "s1", 3)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, 4, c.ItemCount())
}

func TestService_AddItemErrors(t *testing.T) {
	ctx := context.Background()
	sessions := newFakeSessions()
	sessions.add(t, "empty", "")
	bad := sessions.add(t, "bad", "sofa-modern-1")
	_, err := bad.SetPart(catalog.PartLeg, "modern-metal")
	require.NoError(t, err)

	svc := newTestService(t, sessions)

	tests := []struct {
		name      string
		sessionID string
		quantity  int
		wantCode  apperr.Code
	}{
		{"unknown session", "missing", 1, apperr.CodeNotFound},
		{"no product", "empty", 1, apperr.CodeNoProductSelected},
		{"zero quantity", "bad", 0, apperr.CodeInvalidQuantity},
		{"incompatible", "bad", 1, apperr.CodeIncompatible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.AddItem(ctx, "cart-1", tt.sessionID, tt.quantity)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperr.CodeOf(err))
		})
	}

	c, err := svc.Get(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestService_UpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	sessions := newFakeSessions()
	sessions.add(t, "s1", "bed-platform-1")
	sessions.add(t, "s2", "chair-accent-1")

	svc := newTestService(t, sessions)
	_, a, err := svc.AddItem(ctx, "cart-1", "s1", 1)
	require.NoError(t, err)
	_, b, err := svc.AddItem(ctx, "cart-1", "s2", 1)
	require.NoError(t, err)

	c, err := svc.UpdateQuantity(ctx, "cart-1", a.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 6, c.ItemCount())

	c, err = svc.UpdateQuantity(ctx, "cart-1", b.ID, 0)
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)

	_, err = svc.RemoveItem(ctx, "cart-1", "nope")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	c, err = svc.RemoveItem(ctx, "cart-1", a.ID)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestService_Clear(t *testing.T) {
	ctx := context.Background()
	sessions := newFakeSessions()
	sessions.add(t, "s1", "dressingtable-1")

	svc := newTestService(t, sessions)
	_, _, err := svc.AddItem(ctx, "cart-1", "s1", 1)
	require.NoError(t, err)

	c, err := svc.Clear(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	c, err = svc.Get(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Equal(t, int64(0), c.Total())
}

func TestService_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	sessions := newFakeSessions()
	sessions.add(t, "s1", "tvtable-1")

	svc := newTestService(t, sessions)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = svc.AddItem(ctx, "cart-1", "s1", 1)
		}()
	}
	wg.Wait()

	c, err := svc.Get(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, 20, c.ItemCount())
}

func TestService_LocksAreReleased(t *testing.T) {
	ctx := context.Background()
	sessions := newFakeSessions()
	sessions.add(t, "s1", "tvtable-1")

	svc := newTestService(t, sessions)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cartID := fmt.Sprintf("cart-%d", i%5)
			_, _, _ = svc.AddItem(ctx, cartID, "s1", 1)
			if i%3 == 0 {
				_, _ = svc.Clear(ctx, cartID)
			}
		}(i)
	}
	wg.Wait()

	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.Empty(t, svc.locks)
}

func TestModule_Handlers(t *testing.T) {
	ctx := context.Background()
	sessions := newFakeSessions()
	sessions.add(t, "s1", "sofa-classic-1")

	m := NewModule(0, &mockLogger{})
	m.snapshots = sessions
	require.NoError(t, m.Start(ctx))
	assert.True(t, m.Health(ctx).Healthy)

	added, err := m.addItem(ctx, AddItemRequest{SessionID: "s1", Quantity: 2}, nil)
	require.NoError(t, err)
	require.NoError(t, added.Err())
	require.NotNil(t, added.Cart)
	assert.Equal(t, int64(2*1099), added.Cart.Total)
	assert.Equal(t, 2, added.Cart.ItemCount)

	cartID := added.Cart.ID

	got, err := m.getCart(ctx, CartRequest{CartID: cartID}, nil)
	require.NoError(t, err)
	assert.Len(t, got.Cart.Items, 1)

	updated, err := m.updateQuantity(ctx, UpdateQuantityRequest{CartID: cartID, ItemID: added.Item.ID, Quantity: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1099), updated.Cart.Total)

	removed, err := m.removeItem(ctx, RemoveItemRequest{CartID: cartID, ItemID: "missing"}, nil)
	require.NoError(t, err)
	assert.Equal(t, apperr.CodeNotFound, removed.ErrorCode)

	cleared, err := m.clearCart(ctx, CartRequest{CartID: cartID}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, cleared.Cart.ItemCount)

	require.NoError(t, m.Stop(ctx))
}

func TestModule_StartRequiresConfigurator(t *testing.T) {
	m := NewModule(0, &mockLogger{})
	assert.Error(t, m.Start(context.Background()))
	assert.False(t, m.Health(context.Background()).Healthy)
}
