package catalog

import (
	"time"

	domain "github.com/example/furniture-configurator/domain/catalog"
)

// MaterialRecord is a row of the material library.
type MaterialRecord struct {
	ID            string    `gorm:"primarykey;size:64"`
	Position      int       `gorm:"not null;index"`
	Name          string    `gorm:"size:100;not null"`
	Category      string    `gorm:"size:20;not null"`
	Color         string    `gorm:"size:20"`
	TextureURL    string    `gorm:"size:255"`
	PriceModifier int64     `gorm:"not null;default:0"`
	EcoFriendly   bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for MaterialRecord.
func (MaterialRecord) TableName() string {
	return "materials"
}

// PartRecord is a row of the part library.
type PartRecord struct {
	ID            string   `gorm:"primarykey;size:64"`
	Position      int      `gorm:"not null;index"`
	Name          string   `gorm:"size:100;not null"`
	Type          string   `gorm:"size:20;not null;index"`
	ModelURL      string   `gorm:"size:255"`
	Thumbnail     string   `gorm:"size:255"`
	PriceModifier int64    `gorm:"not null;default:0"`
	MaterialIDs   []string `gorm:"serializer:json"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for PartRecord.
func (PartRecord) TableName() string {
	return "parts"
}

// ProductRecord is a configurable product. Parts and materials are stored
// as ordered id lists resolved against the libraries on load.
type ProductRecord struct {
	ID          string   `gorm:"primarykey;size:64"`
	Position    int      `gorm:"not null;index"`
	Name        string   `gorm:"size:100;not null"`
	Description string   `gorm:"size:500"`
	Category    string   `gorm:"size:20;not null;index"`
	BasePrice   int64    `gorm:"not null"`
	Images      []string `gorm:"serializer:json"`
	ModelURL    string   `gorm:"size:255"`
	PartIDs     []string `gorm:"serializer:json"`
	MaterialIDs []string `gorm:"serializer:json"`
	Featured    bool     `gorm:"not null;default:false"`
	Tags        []string `gorm:"serializer:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for ProductRecord.
func (ProductRecord) TableName() string {
	return "products"
}

func toMaterialRecord(m domain.Material, pos int) MaterialRecord {
	return MaterialRecord{
		ID:            m.ID,
		Position:      pos,
		Name:          m.Name,
		Category:      string(m.Category),
		Color:         m.Color,
		TextureURL:    m.TextureURL,
		PriceModifier: m.PriceModifier,
		EcoFriendly:   m.EcoFriendly,
	}
}

func (r MaterialRecord) toDomain() domain.Material {
	return domain.Material{
		ID:            r.ID,
		Name:          r.Name,
		Category:      domain.MaterialCategory(r.Category),
		Color:         r.Color,
		TextureURL:    r.TextureURL,
		PriceModifier: r.PriceModifier,
		EcoFriendly:   r.EcoFriendly,
	}
}

func toPartRecord(p domain.Part, pos int) PartRecord {
	return PartRecord{
		ID:            p.ID,
		Position:      pos,
		Name:          p.Name,
		Type:          string(p.Type),
		ModelURL:      p.ModelURL,
		Thumbnail:     p.Thumbnail,
		PriceModifier: p.PriceModifier,
		MaterialIDs:   nonNil(p.Materials),
	}
}

func (r PartRecord) toDomain() domain.Part {
	return domain.Part{
		ID:            r.ID,
		Name:          r.Name,
		Type:          domain.PartType(r.Type),
		ModelURL:      r.ModelURL,
		Thumbnail:     r.Thumbnail,
		PriceModifier: r.PriceModifier,
		Materials:     r.MaterialIDs,
	}
}

func toProductRecord(p domain.Product, pos int) ProductRecord {
	partIDs := make([]string, 0, len(p.AvailableParts))
	for _, part := range p.AvailableParts {
		partIDs = append(partIDs, part.ID)
	}
	materialIDs := make([]string, 0, len(p.Materials))
	for _, m := range p.Materials {
		materialIDs = append(materialIDs, m.ID)
	}
	return ProductRecord{
		ID:          p.ID,
		Position:    pos,
		Name:        p.Name,
		Description: p.Description,
		Category:    string(p.Category),
		BasePrice:   p.BasePrice,
		Images:      nonNil(p.Images),
		ModelURL:    p.ModelURL,
		PartIDs:     partIDs,
		MaterialIDs: materialIDs,
		Featured:    p.Featured,
		Tags:        nonNil(p.Tags),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
