package catalog

import (
	"sort"
	"sync/atomic"
)

// Holder publishes the current catalog snapshot. Reloads swap the whole
// snapshot so readers never observe a half-loaded catalog.
type Holder struct {
	current atomic.Pointer[Catalog]
}

var _ Source = (*Holder)(nil)

// NewHolder creates a holder. A nil catalog is replaced by an empty one.
func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.Swap(c)
	return h
}

// Current returns the active snapshot.
func (h *Holder) Current() *Catalog {
	return h.current.Load()
}

// Swap installs c and returns the snapshot it replaced.
func (h *Holder) Swap(c *Catalog) *Catalog {
	if c == nil {
		c, _ = New(Data{})
	}
	return h.current.Swap(c)
}

func (h *Holder) GetProduct(id string) (Product, error) {
	return h.Current().GetProduct(id)
}

func (h *Holder) GetMaterial(id string) (Material, error) {
	return h.Current().GetMaterial(id)
}

func (h *Holder) GetPart(id string) (Part, error) {
	return h.Current().GetPart(id)
}

func sortMaterials(ms []Material) {
	sort.Slice(ms, func(i, j int) bool { return ms[i].ID < ms[j].ID })
}
