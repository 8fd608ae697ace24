package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	kvjetstream "github.com/go-monolith/mono/plugin/kv-jetstream"

	domain "github.com/example/furniture-configurator/domain/cart"
)

// Store persists carts.
type Store interface {
	Load(ctx context.Context, cartID string) (*domain.Cart, bool, error)
	Save(ctx context.Context, c *domain.Cart) error
	Delete(ctx context.Context, cartID string) error
}

// KVStore keeps carts as JSON documents in a JetStream KV bucket.
type KVStore struct {
	bucket kvjetstream.KVStoragePort
	ttl    time.Duration
}

// NewKVStore creates a store backed by bucket. Every save refreshes the
// cart's TTL.
func NewKVStore(bucket kvjetstream.KVStoragePort, ttl time.Duration) *KVStore {
	return &KVStore{bucket: bucket, ttl: ttl}
}

// Load retrieves a cart.
func (s *KVStore) Load(_ context.Context, cartID string) (*domain.Cart, bool, error) {
	data, err := s.bucket.Get(cartID)
	if err != nil {
		if errors.Is(err, kvjetstream.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cart: %w", err)
	}

	var c domain.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return &c, true, nil
}

// Save stores a cart.
func (s *KVStore) Save(_ context.Context, c *domain.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := s.bucket.Set(c.ID, data, s.ttl); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}
	return nil
}

// Delete removes a cart.
func (s *KVStore) Delete(_ context.Context, cartID string) error {
	if err := s.bucket.Delete(cartID); err != nil && !errors.Is(err, kvjetstream.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// MemoryStore keeps carts in process memory. Stored carts are copied on the
// way in and out.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]byte)}
}

// Load retrieves a cart.
func (s *MemoryStore) Load(_ context.Context, cartID string) (*domain.Cart, bool, error) {
	s.mu.RLock()
	data, ok := s.carts[cartID]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	var c domain.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return &c, true, nil
}

// Save stores a cart.
func (s *MemoryStore) Save(_ context.Context, c *domain.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	s.mu.Lock()
	s.carts[c.ID] = data
	s.mu.Unlock()
	return nil
}

// Delete removes a cart.
func (s *MemoryStore) Delete(_ context.Context, cartID string) error {
	s.mu.Lock()
	delete(s.carts, cartID)
	s.mu.Unlock()
	return nil
}
