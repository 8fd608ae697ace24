package configurator

import (
	"fmt"
	"slices"

	"github.com/example/furniture-configurator/domain/catalog"
)

// Environment presets the renderer understands.
var EnvironmentPresets = []string{
	"apartment", "city", "dawn", "forest", "lobby",
	"night", "park", "studio", "sunset", "warehouse",
}

// SceneConfig describes the viewer around the product.
type SceneConfig struct {
	CameraPosition    [3]float64 `json:"camera_position"`
	LightIntensity    float64    `json:"light_intensity"`
	BackgroundColor   string     `json:"background_color"`
	EnvironmentPreset string     `json:"environment_preset"`
}

// DefaultScene returns the scene a new session starts with.
func DefaultScene() SceneConfig {
	return SceneConfig{
		CameraPosition:    [3]float64{5, 3, 5},
		LightIntensity:    1,
		BackgroundColor:   "#f5f5f5",
		EnvironmentPreset: "apartment",
	}
}

// SceneUpdate carries the scene fields to change. Nil fields are kept.
type SceneUpdate struct {
	CameraPosition    *[3]float64 `json:"camera_position,omitempty"`
	LightIntensity    *float64    `json:"light_intensity,omitempty"`
	BackgroundColor   *string     `json:"background_color,omitempty"`
	EnvironmentPreset *string     `json:"environment_preset,omitempty"`
}

// Apply returns sc with u applied.
func (u SceneUpdate) Apply(sc SceneConfig) (SceneConfig, error) {
	if u.CameraPosition != nil {
		sc.CameraPosition = *u.CameraPosition
	}
	if u.LightIntensity != nil {
		if *u.LightIntensity < 0 {
			return sc, fmt.Errorf("light intensity %v: %w", *u.LightIntensity, ErrInvalidSetting)
		}
		sc.LightIntensity = *u.LightIntensity
	}
	if u.BackgroundColor != nil {
		sc.BackgroundColor = *u.BackgroundColor
	}
	if u.EnvironmentPreset != nil {
		if !slices.Contains(EnvironmentPresets, *u.EnvironmentPreset) {
			return sc, fmt.Errorf("environment preset %q: %w", *u.EnvironmentPreset, ErrInvalidSetting)
		}
		sc.EnvironmentPreset = *u.EnvironmentPreset
	}
	return sc, nil
}

// ARSession is the augmented reality overlay state. The camera itself is
// owned by the client; the session only records whether it is on.
type ARSession struct {
	Active         bool    `json:"active"`
	FurnitureScale float64 `json:"furniture_scale"`
}

// DefaultAR returns the AR state a new session starts with.
func DefaultAR() ARSession {
	return ARSession{FurnitureScale: 1}
}

// VisualPart is a selected part as the renderer needs it.
type VisualPart struct {
	ID       string `json:"id"`
	ModelURL string `json:"model_url"`
}

// VisualConfig is the resolved configuration the 3D renderer consumes.
type VisualConfig struct {
	ProductID     string                          `json:"product_id"`
	Category      catalog.Category                `json:"category"`
	ModelURL      string                          `json:"model_url"`
	MaterialID    string                          `json:"material_id"`
	MaterialColor string                          `json:"material_color"`
	TextureURL    string                          `json:"texture_url,omitempty"`
	Parts         map[catalog.PartType]VisualPart `json:"parts"`
	ARActive      bool                            `json:"ar_active"`
	ARScale       float64                         `json:"ar_scale"`
}

// ResolveVisual builds the renderer view of a customization. An unset
// material leaves the color empty.
func ResolveVisual(product catalog.Product, c Customization, ar ARSession) VisualConfig {
	v := VisualConfig{
		ProductID:  product.ID,
		Category:   product.Category,
		ModelURL:   product.ModelURL,
		MaterialID: c.SelectedMaterial,
		Parts:      make(map[catalog.PartType]VisualPart, len(c.SelectedParts)),
		ARActive:   ar.Active,
		ARScale:    ar.FurnitureScale,
	}
	if i := slices.IndexFunc(product.Materials, func(m catalog.Material) bool { return m.ID == c.SelectedMaterial }); i >= 0 {
		v.MaterialColor = product.Materials[i].Color
		v.TextureURL = product.Materials[i].TextureURL
	}
	for partType, partID := range c.SelectedParts {
		vp := VisualPart{ID: partID}
		if i := slices.IndexFunc(product.AvailableParts, func(p catalog.Part) bool { return p.ID == partID }); i >= 0 {
			vp.ModelURL = product.AvailableParts[i].ModelURL
		}
		v.Parts[partType] = vp
	}
	return v
}
