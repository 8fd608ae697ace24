package configurator

import (
	"context"

	"github.com/example/furniture-configurator/domain/apperr"
	"github.com/example/furniture-configurator/domain/catalog"
	domain "github.com/example/furniture-configurator/domain/configurator"
)

// SessionStore persists session customizations. Implementations must be
// safe for concurrent use.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, rec domain.Customization) error
	Load(ctx context.Context, sessionID string) (domain.Customization, bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// ConfiguratorPort is the typed client other modules use to drive sessions.
type ConfiguratorPort interface {
	CreateSession(ctx context.Context) (*domain.View, error)
	GetSession(ctx context.Context, sessionID string) (*domain.View, error)
	SelectProduct(ctx context.Context, sessionID, productID string) (*domain.View, error)
	SetMaterial(ctx context.Context, sessionID, materialID string) (*domain.View, error)
	SetPart(ctx context.Context, sessionID string, partType catalog.PartType, partID string) (*domain.View, error)
	ClearPart(ctx context.Context, sessionID string, partType catalog.PartType) (*domain.View, error)
	ResetSession(ctx context.Context, sessionID string) (*domain.View, error)
	SetAR(ctx context.Context, sessionID string, active bool, scale float64) (*domain.View, error)
	UpdateScene(ctx context.Context, sessionID string, update domain.SceneUpdate) (*domain.View, error)
	SnapshotSession(ctx context.Context, sessionID string) (*domain.Snapshot, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// CreateSessionRequest is the request for create-session.
type CreateSessionRequest struct{}

// SessionRequest addresses one session.
type SessionRequest struct {
	SessionID string `json:"session_id"`
}

// SelectProductRequest is the request for select-product.
type SelectProductRequest struct {
	SessionID string `json:"session_id"`
	ProductID string `json:"product_id"`
}

// SetMaterialRequest is the request for set-material.
type SetMaterialRequest struct {
	SessionID  string `json:"session_id"`
	MaterialID string `json:"material_id"`
}

// SetPartRequest is the request for set-part.
type SetPartRequest struct {
	SessionID string           `json:"session_id"`
	PartType  catalog.PartType `json:"part_type"`
	PartID    string           `json:"part_id"`
}

// ClearPartRequest is the request for clear-part.
type ClearPartRequest struct {
	SessionID string           `json:"session_id"`
	PartType  catalog.PartType `json:"part_type"`
}

// SetARRequest is the request for set-ar.
type SetARRequest struct {
	SessionID      string  `json:"session_id"`
	Active         bool    `json:"active"`
	FurnitureScale float64 `json:"furniture_scale,omitempty"`
}

// UpdateSceneRequest is the request for update-scene.
type UpdateSceneRequest struct {
	SessionID string             `json:"session_id"`
	Scene     domain.SceneUpdate `json:"scene"`
}

// SessionResponse carries a session read model.
type SessionResponse struct {
	View *domain.View `json:"view,omitempty"`
	apperr.Fault
}

// SnapshotResponse is the response for snapshot-session.
type SnapshotResponse struct {
	Snapshot *domain.Snapshot `json:"snapshot,omitempty"`
	apperr.Fault
}

// DeleteSessionResponse is the response for delete-session.
type DeleteSessionResponse struct {
	Deleted bool `json:"deleted"`
	apperr.Fault
}
