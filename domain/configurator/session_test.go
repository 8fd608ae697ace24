package configurator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/furniture-configurator/domain/catalog"
)

func TestSessionStateMachine(t *testing.T) {
	s := NewSession("s1", catalog.MustDemo())

	v := s.View()
	assert.Equal(t, StatusEmpty, v.Status)
	assert.Nil(t, v.Customization)
	assert.Equal(t, DefaultScene(), v.Scene)
	assert.Equal(t, DefaultAR(), v.AR)

	_, err := s.SetMaterial("oak")
	assert.ErrorIs(t, err, ErrNoProductSelected)
	_, err = s.SetPart(catalog.PartLeg, "tapered")
	assert.ErrorIs(t, err, ErrNoProductSelected)
	_, err = s.Snapshot()
	assert.ErrorIs(t, err, ErrNoProductSelected)

	_, err = s.SelectProduct("missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Equal(t, StatusEmpty, s.View().Status)

	v, err = s.SelectProduct("bed-platform-1")
	require.NoError(t, err)
	assert.Equal(t, StatusConfiguring, v.Status)
	assert.Equal(t, "oak", v.Customization.SelectedMaterial)
	assert.Equal(t, int64(899), v.Customization.TotalPrice)

	v, err = s.SetPart(catalog.PartArt, "floral-carving")
	require.NoError(t, err)
	assert.Equal(t, int64(1149), v.Customization.TotalPrice)

	// Switching products discards the old customization.
	v, err = s.SelectProduct("tvtable-1")
	require.NoError(t, err)
	assert.Empty(t, v.Customization.SelectedParts)
	assert.Equal(t, int64(499), v.Customization.TotalPrice)

	v = s.Reset()
	assert.Equal(t, StatusEmpty, v.Status)
	assert.Nil(t, v.Visual)
}

func TestSessionRejectionKeepsState(t *testing.T) {
	s := NewSession("s1", catalog.MustDemo())
	_, err := s.SelectProduct("bed-platform-1")
	require.NoError(t, err)
	_, err = s.SetPart(catalog.PartLeg, "tapered")
	require.NoError(t, err)
	before := s.View()

	v, err := s.SetPart(catalog.PartLeg, "carved-wooden")
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.Equal(t, before.Customization, v.Customization)
	assert.Equal(t, before.UpdatedAt, v.UpdatedAt)
}

func TestSessionVisualConfig(t *testing.T) {
	s := NewSession("s1", catalog.MustDemo())
	_, err := s.SelectProduct("sofa-modern-1")
	require.NoError(t, err)
	_, err = s.SetMaterial("velvet-teal")
	require.NoError(t, err)
	_, err = s.SetPart(catalog.PartLeg, "hairpin")
	require.NoError(t, err)
	v, err := s.SetAR(true, 0.5)
	require.NoError(t, err)

	require.NotNil(t, v.Visual)
	assert.Equal(t, catalog.CategorySofa, v.Visual.Category)
	assert.Equal(t, "/models/products/sofa-modern.glb", v.Visual.ModelURL)
	assert.Equal(t, "#008080", v.Visual.MaterialColor)
	assert.Equal(t, VisualPart{ID: "hairpin", ModelURL: "/models/parts/legs/hairpin.glb"}, v.Visual.Parts[catalog.PartLeg])
	assert.True(t, v.Visual.ARActive)
	assert.Equal(t, 0.5, v.Visual.ARScale)
}

func TestSessionSceneAndAR(t *testing.T) {
	s := NewSession("s1", catalog.MustDemo())

	intensity := 1.5
	preset := "studio"
	v, err := s.UpdateScene(SceneUpdate{LightIntensity: &intensity, EnvironmentPreset: &preset})
	require.NoError(t, err)
	assert.Equal(t, 1.5, v.Scene.LightIntensity)
	assert.Equal(t, "studio", v.Scene.EnvironmentPreset)
	assert.Equal(t, "#f5f5f5", v.Scene.BackgroundColor)

	bad := "moon"
	_, err = s.UpdateScene(SceneUpdate{EnvironmentPreset: &bad})
	assert.ErrorIs(t, err, ErrInvalidSetting)
	assert.Equal(t, "studio", s.View().Scene.EnvironmentPreset)

	_, err = s.SetAR(true, -1)
	assert.ErrorIs(t, err, ErrInvalidSetting)
	assert.False(t, s.View().AR.Active)

	v, err = s.SetAR(true, 0)
	require.NoError(t, err)
	assert.Equal(t, ARSession{Active: true, FurnitureScale: 1}, v.AR)

	v = s.Reset()
	assert.Equal(t, StatusEmpty, v.Status)
	assert.Equal(t, DefaultScene(), v.Scene)
	assert.Equal(t, DefaultAR(), v.AR)
}

func TestSessionSnapshotIsDetached(t *testing.T) {
	s := NewSession("s1", catalog.MustDemo())
	_, err := s.SelectProduct("chair-accent-1")
	require.NoError(t, err)
	_, err = s.SetPart(catalog.PartArt, "tufted-buttons")
	require.NoError(t, err)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, int64(579), snap.Customization.TotalPrice)

	_, err = s.SelectProduct("sofa-classic-1")
	require.NoError(t, err)
	assert.Equal(t, "chair-accent-1", snap.Customization.ProductID)
	assert.Equal(t, "tufted-buttons", snap.Customization.SelectedParts[catalog.PartArt])
}

func TestSessionRestore(t *testing.T) {
	s := NewSession("s1", catalog.MustDemo())

	v, dropped := s.Restore(Customization{
		ProductID:        "sofa-classic-1",
		SelectedMaterial: "walnut",
		SelectedParts: map[catalog.PartType]string{
			catalog.PartLeg: "turned",
			catalog.PartArt: "channel-tufting",
		},
		TotalPrice: 1,
	})

	require.Len(t, dropped, 1)
	assert.ErrorIs(t, dropped[0], ErrInvalidSelection)
	assert.Equal(t, "walnut", v.Customization.SelectedMaterial)
	assert.Equal(t, map[catalog.PartType]string{catalog.PartLeg: "turned"}, v.Customization.SelectedParts)
	assert.Equal(t, int64(1099+150+150), v.Customization.TotalPrice)

	_, dropped = NewSession("s2", catalog.MustDemo()).Restore(Customization{ProductID: "gone"})
	require.Len(t, dropped, 1)
	assert.ErrorIs(t, dropped[0], catalog.ErrNotFound)
}

func TestSessionViewFollowsCatalogReload(t *testing.T) {
	holder := catalog.NewHolder(fixtureCatalog(t))
	s := NewSession("s1", holder)
	_, err := s.SelectProduct("sofa")
	require.NoError(t, err)
	v, err := s.SetPart(catalog.PartArt, "tufted-buttons")
	require.NoError(t, err)
	require.Equal(t, int64(1479), v.Customization.TotalPrice)

	holder.Swap(repricedSofa(t, 1500))

	v = s.View()
	assert.Equal(t, int64(1500), v.Product.BasePrice)
	assert.Equal(t, int64(1500), v.Customization.TotalPrice)
	assert.Equal(t, int64(1500), v.Quote.Total)
	assert.True(t, v.Quote.Degraded())

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, int64(1500), snap.Customization.TotalPrice)
}

func TestSessionSerializesConcurrentMutations(t *testing.T) {
	c := catalog.MustDemo()
	s := NewSession("s1", c)
	_, err := s.SelectProduct("sofa-modern-1")
	require.NoError(t, err)

	legs := []string{"modern-metal", "carved-wooden", "modern-wooden", "hairpin"}
	materials := []string{"linen-beige", "velvet-gray", "leather-tan"}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = s.SetPart(catalog.PartLeg, legs[i%len(legs)])
			} else {
				_, _ = s.SetMaterial(materials[i%len(materials)])
			}
		}(i)
	}
	wg.Wait()

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, expectedTotal(t, c, snap.Customization), snap.Customization.TotalPrice)
}
