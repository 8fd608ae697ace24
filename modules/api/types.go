package api

import (
	domain "github.com/example/furniture-configurator/domain/configurator"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// SelectProductBody is the body of PUT /sessions/:id/product.
type SelectProductBody struct {
	ProductID string `json:"product_id"`
}

// SetMaterialBody is the body of PUT /sessions/:id/material.
type SetMaterialBody struct {
	MaterialID string `json:"material_id"`
}

// SetPartBody is the body of PUT /sessions/:id/parts/:type.
type SetPartBody struct {
	PartID string `json:"part_id"`
}

// SetARBody is the body of PUT /sessions/:id/ar.
type SetARBody struct {
	Active         bool    `json:"active"`
	FurnitureScale float64 `json:"furniture_scale"`
}

// SceneBody is the body of PUT /sessions/:id/scene.
type SceneBody = domain.SceneUpdate

// AddCartItemBody is the body of POST /carts/:cartId/items.
type AddCartItemBody struct {
	SessionID string `json:"session_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateQuantityBody is the body of PUT /carts/:cartId/items/:itemId.
type UpdateQuantityBody struct {
	Quantity int `json:"quantity"`
}
