package configurator

import (
	"context"
	"fmt"
	"time"

	"github.com/go-monolith/mono"

	"github.com/example/furniture-configurator/domain/apperr"
	"github.com/example/furniture-configurator/domain/catalog"
	domain "github.com/example/furniture-configurator/domain/configurator"
	"github.com/example/furniture-configurator/events"
)

// change describes a successful mutation for persistence and events.
type change struct {
	kind       string
	materialID string
	partType   catalog.PartType
	partID     string
}

// createSession handles the create-session service request.
func (m *Module) createSession(_ context.Context, _ CreateSessionRequest, _ *mono.Msg) (SessionResponse, error) {
	s := m.registry.Create()
	m.logger.Info("Session created", "sessionID", s.ID())
	v := s.View()
	return SessionResponse{View: &v}, nil
}

// getSession handles the get-session service request.
func (m *Module) getSession(ctx context.Context, req SessionRequest, _ *mono.Msg) (SessionResponse, error) {
	s, err := m.lookup(ctx, req.SessionID)
	if err != nil {
		return SessionResponse{Fault: apperr.NewFault(err)}, nil
	}
	v := s.View()
	return SessionResponse{View: &v}, nil
}

// selectProduct handles the select-product service request.
func (m *Module) selectProduct(ctx context.Context, req SelectProductRequest, _ *mono.Msg) (SessionResponse, error) {
	return m.mutate(ctx, req.SessionID, change{kind: events.ChangeProduct}, func(s *domain.Session) (domain.View, error) {
		return s.SelectProduct(req.ProductID)
	})
}

// setMaterial handles the set-material service request.
func (m *Module) setMaterial(ctx context.Context, req SetMaterialRequest, _ *mono.Msg) (SessionResponse, error) {
	c := change{kind: events.ChangeMaterial, materialID: req.MaterialID}
	return m.mutate(ctx, req.SessionID, c, func(s *domain.Session) (domain.View, error) {
		return s.SetMaterial(req.MaterialID)
	})
}

// setPart handles the set-part service request.
func (m *Module) setPart(ctx context.Context, req SetPartRequest, _ *mono.Msg) (SessionResponse, error) {
	c := change{kind: events.ChangePart, partType: req.PartType, partID: req.PartID}
	return m.mutate(ctx, req.SessionID, c, func(s *domain.Session) (domain.View, error) {
		return s.SetPart(req.PartType, req.PartID)
	})
}

// clearPart handles the clear-part service request.
func (m *Module) clearPart(ctx context.Context, req ClearPartRequest, _ *mono.Msg) (SessionResponse, error) {
	c := change{kind: events.ChangePart, partType: req.PartType, partID: domain.NoPart}
	return m.mutate(ctx, req.SessionID, c, func(s *domain.Session) (domain.View, error) {
		return s.ClearPart(req.PartType)
	})
}

// setAR handles the set-ar service request.
func (m *Module) setAR(ctx context.Context, req SetARRequest, _ *mono.Msg) (SessionResponse, error) {
	return m.mutate(ctx, req.SessionID, change{kind: events.ChangeAR}, func(s *domain.Session) (domain.View, error) {
		return s.SetAR(req.Active, req.FurnitureScale)
	})
}

// updateScene handles the update-scene service request.
func (m *Module) updateScene(ctx context.Context, req UpdateSceneRequest, _ *mono.Msg) (SessionResponse, error) {
	return m.mutate(ctx, req.SessionID, change{kind: events.ChangeScene}, func(s *domain.Session) (domain.View, error) {
		return s.UpdateScene(req.Scene)
	})
}

// resetSession handles the reset-session service request.
func (m *Module) resetSession(ctx context.Context, req SessionRequest, _ *mono.Msg) (SessionResponse, error) {
	s, err := m.lookup(ctx, req.SessionID)
	if err != nil {
		return SessionResponse{Fault: apperr.NewFault(err)}, nil
	}

	v := s.Reset()
	m.forget(ctx, s.ID())

	if m.eventBus != nil {
		event := events.SessionResetEvent{SessionID: s.ID(), ResetAt: v.UpdatedAt}
		if err := events.SessionResetV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish SessionReset event", "sessionID", s.ID(), "error", err)
		}
	}

	m.logger.Info("Session reset", "sessionID", s.ID())
	return SessionResponse{View: &v}, nil
}

// snapshotSession handles the snapshot-session service request.
func (m *Module) snapshotSession(ctx context.Context, req SessionRequest, _ *mono.Msg) (SnapshotResponse, error) {
	s, err := m.lookup(ctx, req.SessionID)
	if err != nil {
		return SnapshotResponse{Fault: apperr.NewFault(err)}, nil
	}
	snap, err := s.Snapshot()
	if err != nil {
		return SnapshotResponse{Fault: apperr.NewFault(err)}, nil
	}
	return SnapshotResponse{Snapshot: &snap}, nil
}

// deleteSession handles the delete-session service request.
func (m *Module) deleteSession(ctx context.Context, req SessionRequest, _ *mono.Msg) (DeleteSessionResponse, error) {
	existed := m.registry.Delete(req.SessionID)
	if !existed && m.store != nil {
		_, existed, _ = m.store.Load(ctx, req.SessionID)
	}
	if !existed {
		err := fmt.Errorf("session %q: %w", req.SessionID, domain.ErrSessionNotFound)
		return DeleteSessionResponse{Fault: apperr.NewFault(err)}, nil
	}

	m.forget(ctx, req.SessionID)
	m.logger.Info("Session deleted", "sessionID", req.SessionID)
	return DeleteSessionResponse{Deleted: true}, nil
}

// mutate runs op against a session, then persists and announces the result.
// Failed operations leave the session untouched and are returned as faults.
func (m *Module) mutate(ctx context.Context, sessionID string, c change, op func(*domain.Session) (domain.View, error)) (SessionResponse, error) {
	s, err := m.lookup(ctx, sessionID)
	if err != nil {
		return SessionResponse{Fault: apperr.NewFault(err)}, nil
	}

	v, err := op(s)
	if err != nil {
		m.logger.Debug("Selection rejected", "sessionID", sessionID, "change", c.kind, "error", err)
		return SessionResponse{View: &v, Fault: apperr.NewFault(err)}, nil
	}

	m.reportStale(v)
	m.persist(ctx, v)
	m.publishChanged(v, c)
	return SessionResponse{View: &v}, nil
}

// lookup finds a live session, restoring it from the store when this
// process does not hold it. Concurrent restores of one id share a single
// session.
func (m *Module) lookup(ctx context.Context, sessionID string) (*domain.Session, error) {
	if s, ok := m.registry.Get(sessionID); ok {
		return s, nil
	}
	if m.store == nil || sessionID == "" {
		return nil, fmt.Errorf("session %q: %w", sessionID, domain.ErrSessionNotFound)
	}

	val, err, _ := m.restores.Do(sessionID, func() (any, error) {
		return m.restore(ctx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	return val.(*domain.Session), nil
}

// restore loads a stored record into a new registered session.
func (m *Module) restore(ctx context.Context, sessionID string) (*domain.Session, error) {
	// Another restore may have finished between the registry miss and here.
	if s, ok := m.registry.Get(sessionID); ok {
		return s, nil
	}
	notFound := fmt.Errorf("session %q: %w", sessionID, domain.ErrSessionNotFound)

	rec, found, err := m.store.Load(ctx, sessionID)
	if err != nil {
		m.logger.Warn("Failed to load session record", "sessionID", sessionID, "error", err)
		return nil, notFound
	}
	if !found {
		return nil, notFound
	}

	s := m.registry.CreateWithID(sessionID)
	v, dropped := s.Restore(rec)
	for _, derr := range dropped {
		m.logger.Warn("Dropped selection while restoring session", "sessionID", sessionID, "error", derr)
	}
	m.reportStale(v)
	m.persist(ctx, v)
	m.publishChanged(v, change{kind: events.ChangeRestore})
	m.logger.Info("Session restored", "sessionID", sessionID, "dropped", len(dropped))
	return s, nil
}

// persist saves the customization of a configuring session. Failures are
// logged; the in-memory session stays authoritative.
func (m *Module) persist(ctx context.Context, v domain.View) {
	if m.store == nil || v.Customization == nil {
		return
	}
	if err := m.store.Save(ctx, v.SessionID, *v.Customization); err != nil {
		m.logger.Warn("Failed to persist session", "sessionID", v.SessionID, "error", err)
	}
}

func (m *Module) forget(ctx context.Context, sessionID string) {
	if m.store == nil {
		return
	}
	if err := m.store.Delete(ctx, sessionID); err != nil {
		m.logger.Warn("Failed to delete session record", "sessionID", sessionID, "error", err)
	}
}

func (m *Module) reportStale(v domain.View) {
	if v.Quote == nil || !v.Quote.Degraded() {
		return
	}
	for _, ref := range v.Quote.Stale {
		m.logger.Warn("Stale reference priced at zero",
			"sessionID", v.SessionID, "kind", ref.Kind, "id", ref.ID, "partType", string(ref.PartType))
	}
}

func (m *Module) publishChanged(v domain.View, c change) {
	if m.eventBus == nil {
		return
	}

	event := events.CustomizationChangedEvent{
		SessionID:     v.SessionID,
		Change:        c.kind,
		MaterialID:    c.materialID,
		PartType:      string(c.partType),
		PartID:        c.partID,
		Visual:        v.Visual,
		Scene:         v.Scene,
		Customization: v.Customization,
		ChangedAt:     time.Now(),
	}
	if v.Customization != nil {
		event.ProductID = v.Customization.ProductID
		event.TotalPrice = v.Customization.TotalPrice
	}

	if err := events.CustomizationChangedV1.Publish(m.eventBus, event, nil); err != nil {
		// Event publishing is best-effort; log but don't fail the operation
		m.logger.Warn("Failed to publish CustomizationChanged event", "sessionID", v.SessionID, "error", err)
	}
}

// sweep drops sessions idle for longer than the configured timeout. Their
// stored records expire on their own TTL.
func (m *Module) sweep(now time.Time) {
	removed := m.registry.SweepIdle(now.Add(-m.cfg.IdleTimeout))
	if len(removed) > 0 {
		m.logger.Info("Swept idle sessions", "count", len(removed), "remaining", m.registry.Len())
	}
}
