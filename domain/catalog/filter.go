package catalog

import "slices"

// Filter narrows a product listing. Zero values mean "no constraint".
type Filter struct {
	Category     string
	FeaturedOnly bool
	MinPrice     *int64
	MaxPrice     *int64
	// Materials keeps products that offer at least one of these materials.
	Materials []string
	// EcoFriendly keeps products that offer at least one eco-friendly
	// material (true) or none at all (false).
	EcoFriendly *bool
	// Tags keeps products carrying every listed tag.
	Tags []string
}

// Filter returns the products matching f in insertion order.
func (c *Catalog) Filter(f Filter) []Product {
	category := f.Category
	if category == "" {
		category = AllCategories
	}

	out := make([]Product, 0)
	for _, p := range c.ProductsByCategory(category) {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func (f Filter) matches(p Product) bool {
	if f.FeaturedOnly && !p.Featured {
		return false
	}
	if f.MinPrice != nil && p.BasePrice < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.BasePrice > *f.MaxPrice {
		return false
	}
	if len(f.Materials) > 0 && !slices.ContainsFunc(p.Materials, func(m Material) bool {
		return slices.Contains(f.Materials, m.ID)
	}) {
		return false
	}
	if f.EcoFriendly != nil {
		hasEco := slices.ContainsFunc(p.Materials, func(m Material) bool { return m.EcoFriendly })
		if hasEco != *f.EcoFriendly {
			return false
		}
	}
	for _, tag := range f.Tags {
		if !slices.Contains(p.Tags, tag) {
			return false
		}
	}
	return true
}
