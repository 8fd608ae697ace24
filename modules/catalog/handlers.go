package catalog

import (
	"context"

	"github.com/go-monolith/mono"

	"github.com/example/furniture-configurator/domain/apperr"
	domain "github.com/example/furniture-configurator/domain/catalog"
	"github.com/example/furniture-configurator/domain/configurator"
)

// getProduct handles the get-product service request.
func (m *Module) getProduct(_ context.Context, req GetProductRequest, _ *mono.Msg) (GetProductResponse, error) {
	p, err := m.holder.GetProduct(req.ProductID)
	if err != nil {
		return GetProductResponse{Fault: apperr.NewFault(err)}, nil
	}
	return GetProductResponse{Product: &p}, nil
}

// listProducts handles the list-products service request.
func (m *Module) listProducts(_ context.Context, req ListProductsRequest, _ *mono.Msg) (ListProductsResponse, error) {
	products := m.holder.Current().Filter(domain.Filter{
		Category:     req.Category,
		FeaturedOnly: req.FeaturedOnly,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		Materials:    req.Materials,
		EcoFriendly:  req.EcoFriendly,
		Tags:         req.Tags,
	})
	return ListProductsResponse{Products: products, Total: len(products)}, nil
}

// getMaterial handles the get-material service request.
func (m *Module) getMaterial(_ context.Context, req GetMaterialRequest, _ *mono.Msg) (GetMaterialResponse, error) {
	mat, err := m.holder.GetMaterial(req.MaterialID)
	if err != nil {
		return GetMaterialResponse{Fault: apperr.NewFault(err)}, nil
	}
	return GetMaterialResponse{Material: &mat}, nil
}

// getPart handles the get-part service request.
func (m *Module) getPart(_ context.Context, req GetPartRequest, _ *mono.Msg) (GetPartResponse, error) {
	p, err := m.holder.GetPart(req.PartID)
	if err != nil {
		return GetPartResponse{Fault: apperr.NewFault(err)}, nil
	}
	return GetPartResponse{Part: &p}, nil
}

// listPartsOfType handles the list-parts-of-type service request.
func (m *Module) listPartsOfType(_ context.Context, req ListPartsOfTypeRequest, _ *mono.Msg) (ListPartsOfTypeResponse, error) {
	p, err := m.holder.GetProduct(req.ProductID)
	if err != nil {
		return ListPartsOfTypeResponse{Fault: apperr.NewFault(err)}, nil
	}

	resp := ListPartsOfTypeResponse{
		ProductID: p.ID,
		PartType:  req.PartType,
		PartTypes: configurator.PartTypes(p),
		Options:   make([]PartOption, 0),
	}
	for _, part := range configurator.PartsOfType(p, req.PartType) {
		resp.Options = append(resp.Options, PartOption{
			Part:                part,
			CompatibleMaterials: configurator.CompatibleMaterials(p, part),
		})
	}
	return resp, nil
}

// listMaterials handles the list-materials service request.
func (m *Module) listMaterials(_ context.Context, _ ListMaterialsRequest, _ *mono.Msg) (ListMaterialsResponse, error) {
	return ListMaterialsResponse{Materials: m.holder.Current().Materials()}, nil
}

// reloadCatalog handles the reload-catalog service request.
func (m *Module) reloadCatalog(_ context.Context, _ ReloadCatalogRequest, _ *mono.Msg) (ReloadCatalogResponse, error) {
	res, err := m.service.Reload()
	if err != nil {
		return ReloadCatalogResponse{Fault: apperr.NewFault(err)}, nil
	}
	return ReloadCatalogResponse{Result: &res}, nil
}

// deletePart handles the delete-part service request.
func (m *Module) deletePart(_ context.Context, req DeletePartRequest, _ *mono.Msg) (DeletePartResponse, error) {
	res, err := m.service.DeletePart(req.PartID)
	if err != nil {
		return DeletePartResponse{Fault: apperr.NewFault(err)}, nil
	}
	return DeletePartResponse{Result: &res}, nil
}
