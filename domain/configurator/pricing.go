package configurator

import "github.com/example/furniture-configurator/domain/catalog"

// Line item kinds.
const (
	KindProduct  = "product"
	KindBase     = "base"
	KindMaterial = "material"
	KindPart     = "part"
)

// LineItem is one term of a price computation.
type LineItem struct {
	Kind     string           `json:"kind"`
	ID       string           `json:"id"`
	PartType catalog.PartType `json:"part_type,omitempty"`
	Amount   int64            `json:"amount"`
}

// StaleReference names a selection that no longer resolves in the catalog.
// Its term is priced at zero.
type StaleReference struct {
	Kind     string           `json:"kind"`
	ID       string           `json:"id"`
	PartType catalog.PartType `json:"part_type,omitempty"`
}

// Quote is the result of pricing a customization.
type Quote struct {
	Total     int64            `json:"total"`
	Breakdown []LineItem       `json:"breakdown"`
	Stale     []StaleReference `json:"stale,omitempty"`
}

// Degraded reports whether any term was priced at zero because its
// reference no longer resolves.
func (q Quote) Degraded() bool {
	return len(q.Stale) > 0
}

// Price computes the total for c:
//
//	base price + material modifier + sum of selected part modifiers
//
// Material and parts are resolved through src at call time. A reference
// that does not resolve contributes 0 and is reported in Quote.Stale.
func Price(product catalog.Product, c Customization, src catalog.Source) Quote {
	q := Quote{
		Total:     product.BasePrice,
		Breakdown: []LineItem{{Kind: KindBase, ID: product.ID, Amount: product.BasePrice}},
	}

	if c.SelectedMaterial != "" {
		m, err := src.GetMaterial(c.SelectedMaterial)
		if err != nil {
			q.Stale = append(q.Stale, StaleReference{Kind: KindMaterial, ID: c.SelectedMaterial})
		} else {
			q.Total += m.PriceModifier
			q.Breakdown = append(q.Breakdown, LineItem{Kind: KindMaterial, ID: m.ID, Amount: m.PriceModifier})
		}
	}

	for _, partType := range sortedPartTypes(c.SelectedParts) {
		partID := c.SelectedParts[partType]
		p, err := src.GetPart(partID)
		if err != nil {
			q.Stale = append(q.Stale, StaleReference{Kind: KindPart, ID: partID, PartType: partType})
			continue
		}
		q.Total += p.PriceModifier
		q.Breakdown = append(q.Breakdown, LineItem{Kind: KindPart, ID: p.ID, PartType: partType, Amount: p.PriceModifier})
	}

	return q
}
