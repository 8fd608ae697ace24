package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-monolith/mono/pkg/types"
	nanoid "github.com/jaevor/go-nanoid"

	domain "github.com/example/furniture-configurator/domain/cart"
)

// Service applies cart operations. Operations on one cart serialize.
type Service struct {
	store     Store
	snapshots SnapshotSource
	newID     func() string
	logger    types.Logger

	mu    sync.Mutex
	locks map[string]*cartLock
}

// cartLock serializes writers of one cart. refs counts holders and waiters
// so the entry can go once nobody needs it.
type cartLock struct {
	mu   sync.Mutex
	refs int
}

// NewService creates a cart service.
func NewService(store Store, snapshots SnapshotSource, logger types.Logger) (*Service, error) {
	gen, err := nanoid.Standard(12)
	if err != nil {
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}
	return &Service{
		store:     store,
		snapshots: snapshots,
		newID:     gen,
		logger:    logger,
		locks:     make(map[string]*cartLock),
	}, nil
}

// AddItem snapshots a configurator session into a cart. The session itself
// is left as it was.
func (s *Service) AddItem(ctx context.Context, cartID, sessionID string, quantity int) (*domain.Cart, domain.Item, error) {
	if quantity < 1 {
		return nil, domain.Item{}, fmt.Errorf("quantity %d: %w", quantity, domain.ErrInvalidQuantity)
	}
	snap, err := s.snapshots.SnapshotSession(ctx, sessionID)
	if err != nil {
		return nil, domain.Item{}, err
	}
	if cartID == "" {
		cartID = s.newID()
	}

	var item domain.Item
	c, err := s.update(ctx, cartID, func(c *domain.Cart) error {
		var err error
		item, err = c.AddItem(*snap, quantity, s.newID)
		return err
	})
	if err != nil {
		return nil, domain.Item{}, err
	}
	return c, item, nil
}

// Get returns a cart. Unknown carts are returned empty.
func (s *Service) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	c, found, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !found {
		return domain.New(cartID), nil
	}
	return c, nil
}

// RemoveItem deletes a cart line.
func (s *Service) RemoveItem(ctx context.Context, cartID, itemID string) (*domain.Cart, error) {
	return s.update(ctx, cartID, func(c *domain.Cart) error {
		return c.RemoveItem(itemID)
	})
}

// UpdateQuantity changes a line's quantity; zero or less removes it.
func (s *Service) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) (*domain.Cart, error) {
	return s.update(ctx, cartID, func(c *domain.Cart) error {
		return c.UpdateQuantity(itemID, quantity)
	})
}

// Clear empties a cart and drops it from the store.
func (s *Service) Clear(ctx context.Context, cartID string) (*domain.Cart, error) {
	unlock := s.lock(cartID)
	defer unlock()

	if err := s.store.Delete(ctx, cartID); err != nil {
		return nil, err
	}
	return domain.New(cartID), nil
}

// update loads a cart, applies op and saves the result. A failing op leaves
// the stored cart untouched.
func (s *Service) update(ctx context.Context, cartID string, op func(*domain.Cart) error) (*domain.Cart, error) {
	unlock := s.lock(cartID)
	defer unlock()

	c, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := op(c); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// lock takes the write lock of cartID and returns its release.
func (s *Service) lock(cartID string) func() {
	s.mu.Lock()
	l, ok := s.locks[cartID]
	if !ok {
		l = &cartLock{}
		s.locks[cartID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		defer s.mu.Unlock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, cartID)
		}
	}
}
