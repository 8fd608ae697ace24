// Package configurator implements the selection state and pricing of a
// product being customized, and the session that orchestrates them.
package configurator

import (
	"fmt"
	"maps"
	"slices"

	"github.com/example/furniture-configurator/domain/catalog"
)

// NoPart deselects a part type in SetPart.
const NoPart = "none"

// Customization is the flat selection record of one product instance.
// TotalPrice is derived and only ever written by State.
type Customization struct {
	ProductID        string                      `json:"product_id"`
	SelectedParts    map[catalog.PartType]string `json:"selected_parts"`
	SelectedMaterial string                      `json:"selected_material"`
	TotalPrice       int64                       `json:"total_price"`
}

// Clone returns a deep copy.
func (c Customization) Clone() Customization {
	out := c
	out.SelectedParts = make(map[catalog.PartType]string, len(c.SelectedParts))
	maps.Copy(out.SelectedParts, c.SelectedParts)
	return out
}

// Equal reports whether two customizations select the same things at the
// same price.
func (c Customization) Equal(other Customization) bool {
	return c.ProductID == other.ProductID &&
		c.SelectedMaterial == other.SelectedMaterial &&
		c.TotalPrice == other.TotalPrice &&
		maps.Equal(c.SelectedParts, other.SelectedParts)
}

// State holds the live customization of one product. Every successful
// mutation recomputes the price before returning; a failed mutation leaves
// the state untouched. Reads re-resolve the product and reprice, so a
// catalog reload shows up without any further mutation. State is not safe
// for concurrent use.
type State struct {
	product  catalog.Product
	resolver catalog.Source
	current  Customization
	quote    Quote
}

// Initialize starts a customization for product: the first listed material
// (unset when the product has none), no parts, price from the catalog.
func Initialize(product catalog.Product, resolver catalog.Source) *State {
	s := &State{product: product, resolver: resolver}
	c := Customization{
		ProductID:     product.ID,
		SelectedParts: make(map[catalog.PartType]string),
	}
	if len(product.Materials) > 0 {
		c.SelectedMaterial = product.Materials[0].ID
	}
	s.commit(c)
	return s
}

// Product returns the product as currently resolved. A product that has
// left the catalog is returned as last seen.
func (s *State) Product() catalog.Product {
	s.refresh()
	return s.product
}

// SetMaterial selects one of the product's materials.
func (s *State) SetMaterial(materialID string) error {
	s.refresh()
	if !slices.ContainsFunc(s.product.Materials, func(m catalog.Material) bool { return m.ID == materialID }) {
		return fmt.Errorf("material %q is not offered for product %q: %w", materialID, s.product.ID, ErrInvalidSelection)
	}
	next := s.current.Clone()
	next.SelectedMaterial = materialID
	s.commit(next)
	return nil
}

// SetPart selects partID for partType. NoPart removes the selection for
// that type and succeeds even when nothing was selected.
func (s *State) SetPart(partType catalog.PartType, partID string) error {
	s.refresh()
	next := s.current.Clone()
	if partID == NoPart {
		delete(next.SelectedParts, partType)
		s.commit(next)
		return nil
	}

	options := PartsOfType(s.product, partType)
	if !slices.ContainsFunc(options, func(p catalog.Part) bool { return p.ID == partID }) {
		return fmt.Errorf("part %q is not a %s option for product %q: %w", partID, partType, s.product.ID, ErrInvalidSelection)
	}
	next.SelectedParts[partType] = partID
	s.commit(next)
	return nil
}

// Snapshot returns an independent copy of the customization.
func (s *State) Snapshot() Customization {
	s.refresh()
	return s.current.Clone()
}

// Quote returns the breakdown behind the current total.
func (s *State) Quote() Quote {
	s.refresh()
	q := s.quote
	q.Breakdown = slices.Clone(s.quote.Breakdown)
	q.Stale = slices.Clone(s.quote.Stale)
	return q
}

// Incompatibilities lists selected parts that reject the selected material.
func (s *State) Incompatibilities() []Incompatibility {
	s.refresh()
	return FindIncompatibilities(s.product, s.current)
}

// commit installs c as the current customization and prices it.
func (s *State) commit(c Customization) {
	s.current = c
	s.refresh()
}

// refresh looks the product up again and reprices the current selection
// against the live catalog. When the product no longer resolves its last
// seen base price is kept and the product is reported stale.
func (s *State) refresh() {
	p, err := s.resolver.GetProduct(s.product.ID)
	if err == nil {
		s.product = p
	}
	q := Price(s.product, s.current, s.resolver)
	if err != nil {
		q.Stale = append([]StaleReference{{Kind: KindProduct, ID: s.product.ID}}, q.Stale...)
	}
	s.current.TotalPrice = q.Total
	s.quote = q
}
