package catalog

import (
	"context"

	"github.com/example/furniture-configurator/domain/apperr"
	domain "github.com/example/furniture-configurator/domain/catalog"
)

// CatalogPort is the typed client other modules use to read the catalog.
type CatalogPort interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error)
	GetMaterial(ctx context.Context, materialID string) (*domain.Material, error)
	GetPart(ctx context.Context, partID string) (*domain.Part, error)
	ListPartsOfType(ctx context.Context, productID string, partType domain.PartType) (*ListPartsOfTypeResponse, error)
	ListMaterials(ctx context.Context) ([]domain.Material, error)
	Reload(ctx context.Context) (*ReloadResult, error)
	DeletePart(ctx context.Context, partID string) (*ReloadResult, error)
}

// GetProductRequest is the request for get-product.
type GetProductRequest struct {
	ProductID string `json:"product_id"`
}

// GetProductResponse is the response for get-product.
type GetProductResponse struct {
	Product *domain.Product `json:"product,omitempty"`
	apperr.Fault
}

// ListProductsRequest is the request for list-products.
type ListProductsRequest struct {
	Category     string   `json:"category,omitempty"`
	FeaturedOnly bool     `json:"featured_only,omitempty"`
	MinPrice     *int64   `json:"min_price,omitempty"`
	MaxPrice     *int64   `json:"max_price,omitempty"`
	Materials    []string `json:"materials,omitempty"`
	EcoFriendly  *bool    `json:"eco_friendly,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// ListProductsResponse is the response for list-products.
type ListProductsResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// GetMaterialRequest is the request for get-material.
type GetMaterialRequest struct {
	MaterialID string `json:"material_id"`
}

// GetMaterialResponse is the response for get-material.
type GetMaterialResponse struct {
	Material *domain.Material `json:"material,omitempty"`
	apperr.Fault
}

// GetPartRequest is the request for get-part.
type GetPartRequest struct {
	PartID string `json:"part_id"`
}

// GetPartResponse is the response for get-part.
type GetPartResponse struct {
	Part *domain.Part `json:"part,omitempty"`
	apperr.Fault
}

// ListPartsOfTypeRequest is the request for list-parts-of-type.
type ListPartsOfTypeRequest struct {
	ProductID string          `json:"product_id"`
	PartType  domain.PartType `json:"part_type"`
}

// PartOption is a part together with the product materials it accepts.
type PartOption struct {
	Part                domain.Part       `json:"part"`
	CompatibleMaterials []domain.Material `json:"compatible_materials"`
}

// ListPartsOfTypeResponse is the response for list-parts-of-type. An empty
// Options list is a valid answer.
type ListPartsOfTypeResponse struct {
	ProductID string            `json:"product_id"`
	PartType  domain.PartType   `json:"part_type"`
	PartTypes []domain.PartType `json:"part_types"`
	Options   []PartOption      `json:"options"`
	apperr.Fault
}

// ListMaterialsRequest is the request for list-materials.
type ListMaterialsRequest struct{}

// ListMaterialsResponse is the response for list-materials.
type ListMaterialsResponse struct {
	Materials []domain.Material `json:"materials"`
}

// ReloadCatalogRequest is the request for reload-catalog.
type ReloadCatalogRequest struct{}

// ReloadCatalogResponse is the response for reload-catalog.
type ReloadCatalogResponse struct {
	Result *ReloadResult `json:"result,omitempty"`
	apperr.Fault
}

// DeletePartRequest is the request for delete-part.
type DeletePartRequest struct {
	PartID string `json:"part_id"`
}

// DeletePartResponse is the response for delete-part.
type DeletePartResponse struct {
	Result *ReloadResult `json:"result,omitempty"`
	apperr.Fault
}
