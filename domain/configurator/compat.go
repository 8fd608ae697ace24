package configurator

import (
	"slices"
	"sort"

	"github.com/example/furniture-configurator/domain/catalog"
)

// PartsOfType returns the product's parts of the given type in catalog
// order. A product without options for the type yields an empty slice,
// which is a valid state.
func PartsOfType(product catalog.Product, partType catalog.PartType) []catalog.Part {
	out := make([]catalog.Part, 0)
	for _, p := range product.AvailableParts {
		if p.Type == partType {
			out = append(out, p)
		}
	}
	return out
}

// PartTypes returns the distinct part types the product exposes, in order of
// first appearance.
func PartTypes(product catalog.Product) []catalog.PartType {
	out := make([]catalog.PartType, 0)
	for _, p := range product.AvailableParts {
		if !slices.Contains(out, p.Type) {
			out = append(out, p.Type)
		}
	}
	return out
}

// IsCompatible reports whether a part may be combined with a material. A
// part with no material list is unconstrained.
func IsCompatible(part catalog.Part, materialID string) bool {
	return len(part.Materials) == 0 || slices.Contains(part.Materials, materialID)
}

// CompatibleMaterials returns the product materials the part accepts, in
// product order.
func CompatibleMaterials(product catalog.Product, part catalog.Part) []catalog.Material {
	out := make([]catalog.Material, 0)
	for _, m := range product.Materials {
		if IsCompatible(part, m.ID) {
			out = append(out, m)
		}
	}
	return out
}

// Incompatibility flags a selected part that does not accept the selected
// material.
type Incompatibility struct {
	PartType   catalog.PartType `json:"part_type"`
	PartID     string           `json:"part_id"`
	MaterialID string           `json:"material_id"`
}

// FindIncompatibilities lists every selected part that rejects the selected
// material, ordered by part type. Nothing is flagged while the material is
// unset.
func FindIncompatibilities(product catalog.Product, c Customization) []Incompatibility {
	out := make([]Incompatibility, 0)
	if c.SelectedMaterial == "" {
		return out
	}
	for _, partType := range sortedPartTypes(c.SelectedParts) {
		partID := c.SelectedParts[partType]
		idx := slices.IndexFunc(product.AvailableParts, func(p catalog.Part) bool { return p.ID == partID })
		if idx < 0 {
			continue
		}
		if !IsCompatible(product.AvailableParts[idx], c.SelectedMaterial) {
			out = append(out, Incompatibility{
				PartType:   partType,
				PartID:     partID,
				MaterialID: c.SelectedMaterial,
			})
		}
	}
	return out
}

func sortedPartTypes(parts map[catalog.PartType]string) []catalog.PartType {
	keys := make([]catalog.PartType, 0, len(parts))
	for k := range parts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
