// Package sessionstore persists configurator sessions in Redis so they
// survive a restart. Each session is one flat customization record.
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/furniture-configurator/domain/configurator"
)

// Store saves customization records under <prefix><sessionID>.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	stats  *Stats
}

// Stats tracks store statistics.
type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Saves   uint64 `json:"saves"`
	Deletes uint64 `json:"deletes"`
	Errors  uint64 `json:"errors"`
}

// New creates a store. A zero ttl keeps records forever.
func New(client *redis.Client, prefix string, ttl time.Duration) *Store {
	return &Store{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		stats:  &Stats{},
	}
}

// Save writes the record for a session and refreshes its TTL.
func (s *Store) Save(ctx context.Context, sessionID string, rec configurator.Customization) error {
	data, err := json.Marshal(rec)
	if err != nil {
		atomic.AddUint64(&s.stats.Errors, 1)
		return fmt.Errorf("session marshal error: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+sessionID, data, s.ttl).Err(); err != nil {
		atomic.AddUint64(&s.stats.Errors, 1)
		return fmt.Errorf("session save error: %w", err)
	}

	atomic.AddUint64(&s.stats.Saves, 1)
	return nil
}

// Load reads the record for a session. The boolean is false when none is
// stored.
func (s *Store) Load(ctx context.Context, sessionID string) (configurator.Customization, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			atomic.AddUint64(&s.stats.Misses, 1)
			return configurator.Customization{}, false, nil
		}
		atomic.AddUint64(&s.stats.Errors, 1)
		return configurator.Customization{}, false, fmt.Errorf("session load error: %w", err)
	}

	var rec configurator.Customization
	if err := json.Unmarshal(data, &rec); err != nil {
		atomic.AddUint64(&s.stats.Errors, 1)
		return configurator.Customization{}, false, fmt.Errorf("session unmarshal error: %w", err)
	}

	atomic.AddUint64(&s.stats.Hits, 1)
	return rec, true, nil
}

// Delete removes the record for a session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.prefix+sessionID).Err(); err != nil {
		atomic.AddUint64(&s.stats.Errors, 1)
		return fmt.Errorf("session delete error: %w", err)
	}

	atomic.AddUint64(&s.stats.Deletes, 1)
	return nil
}

// GetStats returns a snapshot of the counters.
func (s *Store) GetStats() Stats {
	return Stats{
		Hits:    atomic.LoadUint64(&s.stats.Hits),
		Misses:  atomic.LoadUint64(&s.stats.Misses),
		Saves:   atomic.LoadUint64(&s.stats.Saves),
		Deletes: atomic.LoadUint64(&s.stats.Deletes),
		Errors:  atomic.LoadUint64(&s.stats.Errors),
	}
}

// Ping checks if the Redis connection is healthy.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client connection.
func (s *Store) Close() error {
	return s.client.Close()
}
