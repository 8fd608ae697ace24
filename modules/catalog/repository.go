package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/example/furniture-configurator/domain/catalog"
)

// ErrDanglingReference is returned by Load when a product lists a part or
// material missing from the libraries.
var ErrDanglingReference = errors.New("dangling catalog reference")

// Repository provides access to catalog storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate runs the catalog migrations.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&MaterialRecord{}, &PartRecord{}, &ProductRecord{})
}

// CountProducts returns the number of stored products.
func (r *Repository) CountProducts() (int64, error) {
	var n int64
	if err := r.db.Model(&ProductRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// Save upserts every record in data inside one transaction. Positions follow
// the order of the slices.
func (r *Repository) Save(data domain.Data) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i, m := range data.Materials {
			rec := toMaterialRecord(m, i)
			if err := tx.Save(&rec).Error; err != nil {
				return fmt.Errorf("failed to save material %s: %w", m.ID, err)
			}
		}
		for i, p := range data.Parts {
			rec := toPartRecord(p, i)
			if err := tx.Save(&rec).Error; err != nil {
				return fmt.Errorf("failed to save part %s: %w", p.ID, err)
			}
		}
		for i, p := range data.Products {
			rec := toProductRecord(p, i)
			if err := tx.Save(&rec).Error; err != nil {
				return fmt.Errorf("failed to save product %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

// DeletePart removes a part from the library and from every product that
// lists it.
func (r *Repository) DeletePart(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&PartRecord{}, "id = ?", id)
		if err := result.Error; err != nil {
			return fmt.Errorf("failed to delete part: %w", err)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("part %q: %w", id, domain.ErrNotFound)
		}

		var products []ProductRecord
		if err := tx.Find(&products).Error; err != nil {
			return fmt.Errorf("failed to find products: %w", err)
		}
		for _, p := range products {
			kept := make([]string, 0, len(p.PartIDs))
			for _, partID := range p.PartIDs {
				if partID != id {
					kept = append(kept, partID)
				}
			}
			if len(kept) == len(p.PartIDs) {
				continue
			}
			p.PartIDs = kept
			if err := tx.Save(&p).Error; err != nil {
				return fmt.Errorf("failed to update product %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

// Load reads the whole catalog in position order.
func (r *Repository) Load() (domain.Data, error) {
	var (
		materials []MaterialRecord
		parts     []PartRecord
		products  []ProductRecord
	)
	if err := r.db.Order("position, id").Find(&materials).Error; err != nil {
		return domain.Data{}, fmt.Errorf("failed to load materials: %w", err)
	}
	if err := r.db.Order("position, id").Find(&parts).Error; err != nil {
		return domain.Data{}, fmt.Errorf("failed to load parts: %w", err)
	}
	if err := r.db.Order("position, id").Find(&products).Error; err != nil {
		return domain.Data{}, fmt.Errorf("failed to load products: %w", err)
	}

	data := domain.Data{
		Materials: make([]domain.Material, 0, len(materials)),
		Parts:     make([]domain.Part, 0, len(parts)),
		Products:  make([]domain.Product, 0, len(products)),
	}
	materialsByID := make(map[string]domain.Material, len(materials))
	for _, rec := range materials {
		m := rec.toDomain()
		materialsByID[m.ID] = m
		data.Materials = append(data.Materials, m)
	}
	partsByID := make(map[string]domain.Part, len(parts))
	for _, rec := range parts {
		p := rec.toDomain()
		partsByID[p.ID] = p
		data.Parts = append(data.Parts, p)
	}

	for _, rec := range products {
		p := domain.Product{
			ID:             rec.ID,
			Name:           rec.Name,
			Description:    rec.Description,
			Category:       domain.Category(rec.Category),
			BasePrice:      rec.BasePrice,
			Images:         rec.Images,
			ModelURL:       rec.ModelURL,
			AvailableParts: make([]domain.Part, 0, len(rec.PartIDs)),
			Materials:      make([]domain.Material, 0, len(rec.MaterialIDs)),
			Featured:       rec.Featured,
			Tags:           rec.Tags,
		}
		for _, id := range rec.PartIDs {
			part, ok := partsByID[id]
			if !ok {
				return domain.Data{}, fmt.Errorf("product %s part %s: %w", rec.ID, id, ErrDanglingReference)
			}
			p.AvailableParts = append(p.AvailableParts, part)
		}
		for _, id := range rec.MaterialIDs {
			m, ok := materialsByID[id]
			if !ok {
				return domain.Data{}, fmt.Errorf("product %s material %s: %w", rec.ID, id, ErrDanglingReference)
			}
			p.Materials = append(p.Materials, m)
		}
		data.Products = append(data.Products, p)
	}

	return data, nil
}
