package catalog

import (
	"fmt"
	"time"

	"github.com/go-monolith/mono/pkg/types"
	"golang.org/x/sync/singleflight"

	domain "github.com/example/furniture-configurator/domain/catalog"
)

// ReloadResult summarizes a catalog load.
type ReloadResult struct {
	Products   int       `json:"products"`
	Materials  int       `json:"materials"`
	Parts      int       `json:"parts"`
	ReloadedAt time.Time `json:"reloaded_at"`
}

// Service loads the catalog from storage and publishes it through a Holder.
type Service struct {
	repo    *Repository
	holder  *domain.Holder
	logger  types.Logger
	sfGroup singleflight.Group // collapses concurrent reloads
}

// NewService creates a catalog service publishing into holder.
func NewService(repo *Repository, holder *domain.Holder, logger types.Logger) *Service {
	return &Service{repo: repo, holder: holder, logger: logger}
}

// SeedIfEmpty stores data when the product table is empty. It reports
// whether anything was written.
func (s *Service) SeedIfEmpty(data domain.Data) (bool, error) {
	n, err := s.repo.CountProducts()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if err := s.repo.Save(data); err != nil {
		return false, fmt.Errorf("failed to seed catalog: %w", err)
	}
	s.logger.Info("Seeded catalog", "products", len(data.Products), "materials", len(data.Materials), "parts", len(data.Parts))
	return true, nil
}

// Reload reads the catalog from storage and swaps it in. A failed reload
// keeps the previous snapshot.
func (s *Service) Reload() (ReloadResult, error) {
	val, err, shared := s.sfGroup.Do("reload", func() (any, error) {
		data, err := s.repo.Load()
		if err != nil {
			return nil, err
		}
		c, err := domain.New(data)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog data: %w", err)
		}
		s.holder.Swap(c)
		return ReloadResult{
			Products:   len(data.Products),
			Materials:  len(c.Materials()),
			Parts:      len(data.Parts),
			ReloadedAt: time.Now(),
		}, nil
	})
	if err != nil {
		s.logger.Error("Catalog reload failed", "error", err)
		return ReloadResult{}, err
	}

	res := val.(ReloadResult)
	s.logger.Info("Catalog reloaded", "products", res.Products, "materials", res.Materials, "parts", res.Parts, "shared", shared)
	return res, nil
}

// DeletePart removes a part from storage and publishes the result. Sessions
// that still select the part price it at zero from then on.
func (s *Service) DeletePart(id string) (ReloadResult, error) {
	if err := s.repo.DeletePart(id); err != nil {
		return ReloadResult{}, err
	}
	s.logger.Info("Deleted part", "part_id", id)
	return s.Reload()
}

// Holder returns the published catalog.
func (s *Service) Holder() *domain.Holder {
	return s.holder
}
