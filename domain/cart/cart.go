// Package cart holds customized products a shopper intends to buy. Each
// line owns a detached copy of the customization it was added with.
package cart

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/example/furniture-configurator/domain/catalog"
	"github.com/example/furniture-configurator/domain/configurator"
)

var (
	ErrItemNotFound              = errors.New("cart item not found")
	ErrInvalidQuantity           = errors.New("quantity must be at least 1")
	ErrIncompatibleConfiguration = errors.New("configuration has incompatible part and material")
)

// Item is one cart line.
type Item struct {
	ID            string                     `json:"id"`
	ProductID     string                     `json:"product_id"`
	ProductName   string                     `json:"product_name"`
	Category      catalog.Category           `json:"category"`
	Customization configurator.Customization `json:"customization"`
	Quantity      int                        `json:"quantity"`
	UnitPrice     int64                      `json:"unit_price"`
	AddedAt       time.Time                  `json:"added_at"`
}

// Subtotal is the line price.
func (i Item) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// Cart is a shopper's cart. It is a plain value; callers serialize access.
type Cart struct {
	ID        string    `json:"id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns an empty cart.
func New(id string) *Cart {
	return &Cart{ID: id, Items: make([]Item, 0), UpdatedAt: time.Now()}
}

// AddItem adds quantity units of a snapshot. A line holding the same
// configuration absorbs the quantity; otherwise a new line is created with
// an id from newID. Snapshots whose parts reject the material are refused.
func (c *Cart) AddItem(snap configurator.Snapshot, quantity int, newID func() string) (Item, error) {
	if quantity < 1 {
		return Item{}, fmt.Errorf("quantity %d: %w", quantity, ErrInvalidQuantity)
	}
	if len(snap.Incompatibilities) > 0 {
		bad := snap.Incompatibilities[0]
		return Item{}, fmt.Errorf("part %q does not accept material %q: %w", bad.PartID, bad.MaterialID, ErrIncompatibleConfiguration)
	}

	for i := range c.Items {
		if sameConfiguration(c.Items[i].Customization, snap.Customization) {
			c.Items[i].Quantity += quantity
			c.Items[i].UnitPrice = snap.Customization.TotalPrice
			c.Items[i].Customization = snap.Customization.Clone()
			c.UpdatedAt = time.Now()
			return c.Items[i], nil
		}
	}

	item := Item{
		ID:            newID(),
		ProductID:     snap.Product.ID,
		ProductName:   snap.Product.Name,
		Category:      snap.Product.Category,
		Customization: snap.Customization.Clone(),
		Quantity:      quantity,
		UnitPrice:     snap.Customization.TotalPrice,
		AddedAt:       time.Now(),
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = item.AddedAt
	return item, nil
}

// RemoveItem deletes a line.
func (c *Cart) RemoveItem(itemID string) error {
	idx := c.index(itemID)
	if idx < 0 {
		return fmt.Errorf("item %q: %w", itemID, ErrItemNotFound)
	}
	c.Items = slices.Delete(c.Items, idx, idx+1)
	c.UpdatedAt = time.Now()
	return nil
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line.
func (c *Cart) UpdateQuantity(itemID string, quantity int) error {
	if quantity <= 0 {
		return c.RemoveItem(itemID)
	}
	idx := c.index(itemID)
	if idx < 0 {
		return fmt.Errorf("item %q: %w", itemID, ErrItemNotFound)
	}
	c.Items[idx].Quantity = quantity
	c.UpdatedAt = time.Now()
	return nil
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.Items = make([]Item, 0)
	c.UpdatedAt = time.Now()
}

// Total is the sum of all line subtotals.
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// ItemCount is the number of units across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) index(itemID string) int {
	return slices.IndexFunc(c.Items, func(i Item) bool { return i.ID == itemID })
}

func sameConfiguration(a, b configurator.Customization) bool {
	return a.ProductID == b.ProductID &&
		a.SelectedMaterial == b.SelectedMaterial &&
		maps.Equal(a.SelectedParts, b.SelectedParts)
}
