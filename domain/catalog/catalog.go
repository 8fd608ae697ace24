// Package catalog holds the immutable furniture catalog: products, the
// materials they can be finished in, and the interchangeable parts they
// can be fitted with.
package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a product, material or part id is unknown.
var ErrNotFound = errors.New("not found")

// AllCategories selects every product in ProductsByCategory.
const AllCategories = "all"

// Category is the kind of furniture a product is.
type Category string

const (
	CategorySofa          Category = "sofa"
	CategoryChair         Category = "chair"
	CategoryTable         Category = "table"
	CategoryBed           Category = "bed"
	CategoryDressingTable Category = "dressingTable"
	CategoryTVTable       Category = "tvTable"
)

// MaterialCategory groups materials by what they are made of.
type MaterialCategory string

const (
	MaterialWood    MaterialCategory = "wood"
	MaterialMetal   MaterialCategory = "metal"
	MaterialFabric  MaterialCategory = "fabric"
	MaterialLeather MaterialCategory = "leather"
)

// PartType names a slot on a product that takes one interchangeable part.
// The set is open: catalogs may introduce types beyond the ones below.
type PartType string

const (
	PartLeg      PartType = "leg"
	PartArt      PartType = "art"
	PartCushion  PartType = "cushion"
	PartArmrest  PartType = "armrest"
	PartBackrest PartType = "backrest"
)

// Material is a finish or upholstery option.
type Material struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Category      MaterialCategory `json:"type"`
	Color         string           `json:"color"`
	TextureURL    string           `json:"texture_url,omitempty"`
	PriceModifier int64            `json:"price_modifier"`
	EcoFriendly   bool             `json:"eco_friendly"`
}

// Part is an interchangeable, priced sub-component of a product.
type Part struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          PartType `json:"type"`
	ModelURL      string   `json:"model_url"`
	Thumbnail     string   `json:"thumbnail"`
	PriceModifier int64    `json:"price_modifier"`
	// Materials lists compatible material ids. Empty means unconstrained.
	Materials []string `json:"materials"`
}

// Product is a configurable furniture item.
type Product struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Category       Category   `json:"category"`
	BasePrice      int64      `json:"base_price"`
	Images         []string   `json:"images"`
	ModelURL       string     `json:"model_url"`
	AvailableParts []Part     `json:"available_parts"`
	Materials      []Material `json:"materials"`
	Featured       bool       `json:"featured"`
	Tags           []string   `json:"tags"`
}

// Data is the raw input a catalog is built from.
type Data struct {
	Products  []Product
	Materials []Material
	Parts     []Part
}

// Source resolves catalog identities. Both *Catalog and *Holder satisfy it.
type Source interface {
	GetProduct(id string) (Product, error)
	GetMaterial(id string) (Material, error)
	GetPart(id string) (Part, error)
}

// Catalog is a read-only store keyed by identity. It is never mutated
// after New returns, so any number of goroutines may read it.
type Catalog struct {
	products     map[string]Product
	productOrder []string
	materials    map[string]Material
	parts        map[string]Part
}

// New builds a catalog from data. Parts and materials embedded in a product
// are registered in the library when the library does not list them.
func New(data Data) (*Catalog, error) {
	c := &Catalog{
		products:  make(map[string]Product, len(data.Products)),
		materials: make(map[string]Material, len(data.Materials)),
		parts:     make(map[string]Part, len(data.Parts)),
	}

	for _, m := range data.Materials {
		if m.ID == "" {
			return nil, errors.New("material with empty id")
		}
		if _, dup := c.materials[m.ID]; dup {
			return nil, fmt.Errorf("duplicate material id %q", m.ID)
		}
		c.materials[m.ID] = m
	}

	for _, p := range data.Parts {
		if p.ID == "" {
			return nil, errors.New("part with empty id")
		}
		if _, dup := c.parts[p.ID]; dup {
			return nil, fmt.Errorf("duplicate part id %q", p.ID)
		}
		c.parts[p.ID] = clonePart(p)
	}

	for _, p := range data.Products {
		if p.ID == "" {
			return nil, errors.New("product with empty id")
		}
		if _, dup := c.products[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if p.BasePrice < 0 {
			return nil, fmt.Errorf("product %q has negative base price %d", p.ID, p.BasePrice)
		}
		for _, part := range p.AvailableParts {
			if _, ok := c.parts[part.ID]; !ok {
				c.parts[part.ID] = clonePart(part)
			}
		}
		for _, m := range p.Materials {
			if _, ok := c.materials[m.ID]; !ok {
				c.materials[m.ID] = m
			}
		}
		c.products[p.ID] = cloneProduct(p)
		c.productOrder = append(c.productOrder, p.ID)
	}

	return c, nil
}

// GetProduct returns the product with the given id.
func (c *Catalog) GetProduct(id string) (Product, error) {
	p, ok := c.products[id]
	if !ok {
		return Product{}, fmt.Errorf("product %q: %w", id, ErrNotFound)
	}
	return cloneProduct(p), nil
}

// GetMaterial returns the material with the given id.
func (c *Catalog) GetMaterial(id string) (Material, error) {
	m, ok := c.materials[id]
	if !ok {
		return Material{}, fmt.Errorf("material %q: %w", id, ErrNotFound)
	}
	return m, nil
}

// GetPart returns the part with the given id.
func (c *Catalog) GetPart(id string) (Part, error) {
	p, ok := c.parts[id]
	if !ok {
		return Part{}, fmt.Errorf("part %q: %w", id, ErrNotFound)
	}
	return clonePart(p), nil
}

// ProductsByCategory returns the products of one category in insertion
// order. AllCategories returns the whole catalog; an unknown category
// yields an empty slice.
func (c *Catalog) ProductsByCategory(category string) []Product {
	out := make([]Product, 0)
	for _, id := range c.productOrder {
		p := c.products[id]
		if category == AllCategories || string(p.Category) == category {
			out = append(out, cloneProduct(p))
		}
	}
	return out
}

// Materials returns the material library sorted by id.
func (c *Catalog) Materials() []Material {
	out := make([]Material, 0, len(c.materials))
	for _, m := range c.materials {
		out = append(out, m)
	}
	sortMaterials(out)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.productOrder)
}

func cloneProduct(p Product) Product {
	out := p
	out.Images = append([]string(nil), p.Images...)
	out.Tags = append([]string(nil), p.Tags...)
	out.Materials = append([]Material(nil), p.Materials...)
	out.AvailableParts = make([]Part, len(p.AvailableParts))
	for i, part := range p.AvailableParts {
		out.AvailableParts[i] = clonePart(part)
	}
	return out
}

func clonePart(p Part) Part {
	out := p
	out.Materials = append([]string(nil), p.Materials...)
	return out
}
