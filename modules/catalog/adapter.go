package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	domain "github.com/example/furniture-configurator/domain/catalog"
)

// catalogAdapter wraps ServiceContainer for type-safe cross-module
// communication. It implements CatalogPort.
type catalogAdapter struct {
	container mono.ServiceContainer
}

// NewCatalogAdapter creates a new adapter for catalog services.
func NewCatalogAdapter(container mono.ServiceContainer) CatalogPort {
	if container == nil {
		panic("catalog adapter requires non-nil ServiceContainer")
	}
	return &catalogAdapter{container: container}
}

func callService[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

// GetProduct retrieves a product via the get-product service.
func (a *catalogAdapter) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var resp GetProductResponse
	if err := callService(ctx, a.container, "get-product", &GetProductRequest{ProductID: productID}, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

// ListProducts lists products via the list-products service.
func (a *catalogAdapter) ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error) {
	var resp ListProductsResponse
	if err := callService(ctx, a.container, "list-products", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMaterial retrieves a material via the get-material service.
func (a *catalogAdapter) GetMaterial(ctx context.Context, materialID string) (*domain.Material, error) {
	var resp GetMaterialResponse
	if err := callService(ctx, a.container, "get-material", &GetMaterialRequest{MaterialID: materialID}, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Material, nil
}

// GetPart retrieves a part via the get-part service.
func (a *catalogAdapter) GetPart(ctx context.Context, partID string) (*domain.Part, error) {
	var resp GetPartResponse
	if err := callService(ctx, a.container, "get-part", &GetPartRequest{PartID: partID}, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Part, nil
}

// ListPartsOfType lists a product's options for one part type.
func (a *catalogAdapter) ListPartsOfType(ctx context.Context, productID string, partType domain.PartType) (*ListPartsOfTypeResponse, error) {
	var resp ListPartsOfTypeResponse
	req := ListPartsOfTypeRequest{ProductID: productID, PartType: partType}
	if err := callService(ctx, a.container, "list-parts-of-type", &req, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListMaterials lists the material library.
func (a *catalogAdapter) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	var resp ListMaterialsResponse
	if err := callService(ctx, a.container, "list-materials", &ListMaterialsRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Materials, nil
}

// Reload asks the catalog module to reload from storage.
func (a *catalogAdapter) Reload(ctx context.Context) (*ReloadResult, error) {
	var resp ReloadCatalogResponse
	if err := callService(ctx, a.container, "reload-catalog", &ReloadCatalogRequest{}, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// DeletePart removes a part via the delete-part service.
func (a *catalogAdapter) DeletePart(ctx context.Context, partID string) (*ReloadResult, error) {
	var resp DeletePartResponse
	if err := callService(ctx, a.container, "delete-part", &DeletePartRequest{PartID: partID}, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Result, nil
}
