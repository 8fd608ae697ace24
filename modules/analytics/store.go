package analytics

import (
	"sort"
	"sync"
	"time"
)

// DefaultTopN is how many entries the popularity rankings keep.
const DefaultTopN = 10

// Count is one entry of a popularity ranking.
type Count struct {
	ID    string `json:"id"`
	Count int64  `json:"count"`
}

// Summary is a point-in-time view of the storefront analytics.
type Summary struct {
	TotalSales        int64     `json:"total_sales"`
	ItemsAdded        int64     `json:"items_added"`
	Customizations    int64     `json:"customizations"`
	PopularProducts   []Count   `json:"popular_products"`
	PopularParts      []Count   `json:"popular_parts"`
	PopularMaterials  []Count   `json:"popular_materials"`
	LastItemAddedAt   time.Time `json:"last_item_added_at,omitempty"`
	LastCustomization time.Time `json:"last_customization_at,omitempty"`
}

// Store accumulates analytics counters. Safe for concurrent use.
type Store struct {
	mu                sync.RWMutex
	totalSales        int64
	itemsAdded        int64
	customizations    int64
	products          map[string]int64
	parts             map[string]int64
	materials         map[string]int64
	lastItemAdded     time.Time
	lastCustomization time.Time
	topN              int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return NewStoreWithLimit(DefaultTopN)
}

// NewStoreWithLimit creates an empty store whose rankings keep topN entries.
func NewStoreWithLimit(topN int) *Store {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Store{
		products:  make(map[string]int64),
		parts:     make(map[string]int64),
		materials: make(map[string]int64),
		topN:      topN,
	}
}

// RecordItemAdded counts units put into a cart.
func (s *Store) RecordItemAdded(productID, materialID string, partIDs []string, quantity int, unitPrice int64, at time.Time) {
	if quantity < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	q := int64(quantity)
	s.totalSales += unitPrice * q
	s.itemsAdded += q
	s.products[productID] += q
	if materialID != "" {
		s.materials[materialID] += q
	}
	for _, id := range partIDs {
		s.parts[id] += q
	}
	if at.After(s.lastItemAdded) {
		s.lastItemAdded = at
	}
}

// RecordCustomization counts a customization choice made in a session.
// Empty ids are ignored.
func (s *Store) RecordCustomization(productID, materialID, partID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.customizations++
	if productID != "" {
		s.products[productID]++
	}
	if materialID != "" {
		s.materials[materialID]++
	}
	if partID != "" {
		s.parts[partID]++
	}
	if at.After(s.lastCustomization) {
		s.lastCustomization = at
	}
}

// Summary returns the current totals and rankings.
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Summary{
		TotalSales:        s.totalSales,
		ItemsAdded:        s.itemsAdded,
		Customizations:    s.customizations,
		PopularProducts:   top(s.products, s.topN),
		PopularParts:      top(s.parts, s.topN),
		PopularMaterials:  top(s.materials, s.topN),
		LastItemAddedAt:   s.lastItemAdded,
		LastCustomization: s.lastCustomization,
	}
}

// top ranks counts descending, ties broken by id.
func top(counts map[string]int64, n int) []Count {
	out := make([]Count, 0, len(counts))
	for id, c := range counts {
		out = append(out, Count{ID: id, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
