package configurator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/example/furniture-configurator/domain/catalog"
	domain "github.com/example/furniture-configurator/domain/configurator"
)

// configuratorAdapter wraps ServiceContainer for type-safe cross-module
// communication. It implements ConfiguratorPort.
type configuratorAdapter struct {
	container mono.ServiceContainer
}

// NewConfiguratorAdapter creates a new adapter for configurator services.
func NewConfiguratorAdapter(container mono.ServiceContainer) ConfiguratorPort {
	if container == nil {
		panic("configurator adapter requires non-nil ServiceContainer")
	}
	return &configuratorAdapter{container: container}
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

func (a *configuratorAdapter) session(ctx context.Context, service string, req any) (*domain.View, error) {
	var resp SessionResponse
	if err := callService(ctx, a.container, service, &req, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.View, nil
}

// CreateSession starts a new empty session.
func (a *configuratorAdapter) CreateSession(ctx context.Context) (*domain.View, error) {
	return a.session(ctx, "create-session", CreateSessionRequest{})
}

// GetSession returns a session's read model.
func (a *configuratorAdapter) GetSession(ctx context.Context, sessionID string) (*domain.View, error) {
	return a.session(ctx, "get-session", SessionRequest{SessionID: sessionID})
}

// SelectProduct starts configuring a product.
func (a *configuratorAdapter) SelectProduct(ctx context.Context, sessionID, productID string) (*domain.View, error) {
	return a.session(ctx, "select-product", SelectProductRequest{SessionID: sessionID, ProductID: productID})
}

// SetMaterial selects a material.
func (a *configuratorAdapter) SetMaterial(ctx context.Context, sessionID, materialID string) (*domain.View, error) {
	return a.session(ctx, "set-material", SetMaterialRequest{SessionID: sessionID, MaterialID: materialID})
}

// SetPart selects a part.
func (a *configuratorAdapter) SetPart(ctx context.Context, sessionID string, partType catalog.PartType, partID string) (*domain.View, error) {
	return a.session(ctx, "set-part", SetPartRequest{SessionID: sessionID, PartType: partType, PartID: partID})
}

// ClearPart deselects a part type.
func (a *configuratorAdapter) ClearPart(ctx context.Context, sessionID string, partType catalog.PartType) (*domain.View, error) {
	return a.session(ctx, "clear-part", ClearPartRequest{SessionID: sessionID, PartType: partType})
}

// ResetSession empties a session.
func (a *configuratorAdapter) ResetSession(ctx context.Context, sessionID string) (*domain.View, error) {
	return a.session(ctx, "reset-session", SessionRequest{SessionID: sessionID})
}

// SetAR records the AR overlay state.
func (a *configuratorAdapter) SetAR(ctx context.Context, sessionID string, active bool, scale float64) (*domain.View, error) {
	return a.session(ctx, "set-ar", SetARRequest{SessionID: sessionID, Active: active, FurnitureScale: scale})
}

// UpdateScene changes the viewer scene.
func (a *configuratorAdapter) UpdateScene(ctx context.Context, sessionID string, update domain.SceneUpdate) (*domain.View, error) {
	return a.session(ctx, "update-scene", UpdateSceneRequest{SessionID: sessionID, Scene: update})
}

// SnapshotSession returns a detached copy of the session's customization.
func (a *configuratorAdapter) SnapshotSession(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	var resp SnapshotResponse
	if err := callService(ctx, a.container, "snapshot-session", &SessionRequest{SessionID: sessionID}, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Snapshot, nil
}

// DeleteSession discards a session and its stored record.
func (a *configuratorAdapter) DeleteSession(ctx context.Context, sessionID string) error {
	var resp DeleteSessionResponse
	if err := callService(ctx, a.container, "delete-session", &SessionRequest{SessionID: sessionID}, &resp); err != nil {
		return err
	}
	return resp.Err()
}
