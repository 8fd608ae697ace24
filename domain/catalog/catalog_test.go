package catalog

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoCatalogLoads(t *testing.T) {
	c := MustDemo()

	assert.Equal(t, 6, c.Len())
	assert.Len(t, c.Materials(), 16)

	for _, id := range []string{"modern-metal", "carved-wooden", "turned", "floral-carving", "plain"} {
		_, err := c.GetPart(id)
		assert.NoError(t, err, "part %s", id)
	}
}

func TestGetProduct(t *testing.T) {
	c := MustDemo()

	p, err := c.GetProduct("sofa-modern-1")
	require.NoError(t, err)
	assert.Equal(t, "Modern L-Shape Sofa", p.Name)
	assert.Equal(t, int64(1299), p.BasePrice)
	assert.Equal(t, "linen-beige", p.Materials[0].ID)

	_, err = c.GetProduct("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetMaterialAndPartNotFound(t *testing.T) {
	c := MustDemo()

	_, err := c.GetMaterial("white-painted")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.GetPart("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductsByCategory(t *testing.T) {
	c := MustDemo()

	tests := []struct {
		name     string
		category string
		want     []string
	}{
		{"all keeps insertion order", AllCategories, []string{
			"sofa-modern-1", "sofa-classic-1", "bed-platform-1",
			"dressingtable-1", "tvtable-1", "chair-accent-1",
		}},
		{"sofas", "sofa", []string{"sofa-modern-1", "sofa-classic-1"}},
		{"beds", "bed", []string{"bed-platform-1"}},
		{"category with no products", "table", []string{}},
		{"unknown category", "spaceship", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ProductsByCategory(tt.category)
			require.NotNil(t, got)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestNewRejectsInvalidData(t *testing.T) {
	tests := []struct {
		name string
		data Data
	}{
		{"empty product id", Data{Products: []Product{{}}}},
		{"duplicate product", Data{Products: []Product{{ID: "a"}, {ID: "a"}}}},
		{"negative base price", Data{Products: []Product{{ID: "a", BasePrice: -1}}}},
		{"duplicate material", Data{Materials: []Material{{ID: "m"}, {ID: "m"}}}},
		{"empty part id", Data{Parts: []Part{{Name: "x"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestReturnedProductsAreCopies(t *testing.T) {
	c := MustDemo()

	p, err := c.GetProduct("sofa-modern-1")
	require.NoError(t, err)
	p.AvailableParts[0].Materials[0] = "tampered"
	p.Materials[0].PriceModifier = 9999
	p.Tags[0] = "tampered"

	again, err := c.GetProduct("sofa-modern-1")
	require.NoError(t, err)
	assert.Equal(t, "steel-brushed", again.AvailableParts[0].Materials[0])
	assert.Equal(t, int64(0), again.Materials[0].PriceModifier)
	assert.Equal(t, "modern", again.Tags[0])
}

func TestHolderSwap(t *testing.T) {
	h := NewHolder(nil)
	assert.Equal(t, 0, h.Current().Len())

	_, err := h.GetProduct("sofa-modern-1")
	assert.ErrorIs(t, err, ErrNotFound)

	old := h.Swap(MustDemo())
	assert.Equal(t, 0, old.Len())

	p, err := h.GetProduct("sofa-modern-1")
	require.NoError(t, err)
	assert.Equal(t, "sofa-modern-1", p.ID)
}

func TestConcurrentReads(t *testing.T) {
	h := NewHolder(MustDemo())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%5 == 0 {
				h.Swap(MustDemo())
			}
			if _, err := h.GetProduct("bed-platform-1"); err != nil {
				t.Errorf("GetProduct: %v", err)
			}
			_ = h.Current().ProductsByCategory(AllCategories)
		}(i)
	}
	wg.Wait()
}
