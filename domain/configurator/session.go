package configurator

import (
	"fmt"
	"sync"
	"time"

	"github.com/example/furniture-configurator/domain/catalog"
)

// Status is the state of a session.
type Status string

const (
	StatusEmpty       Status = "empty"
	StatusConfiguring Status = "configuring"
)

// View is the read model of a session.
type View struct {
	SessionID         string            `json:"session_id"`
	Status            Status            `json:"status"`
	Product           *catalog.Product  `json:"product,omitempty"`
	Customization     *Customization    `json:"customization,omitempty"`
	Quote             *Quote            `json:"quote,omitempty"`
	Incompatibilities []Incompatibility `json:"incompatibilities"`
	Visual            *VisualConfig     `json:"visual,omitempty"`
	Scene             SceneConfig       `json:"scene"`
	AR                ARSession         `json:"ar"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// Snapshot is a customization detached from its session, ready for a cart.
type Snapshot struct {
	Product           catalog.Product   `json:"product"`
	Customization     Customization     `json:"customization"`
	Incompatibilities []Incompatibility `json:"incompatibilities"`
}

// Session binds at most one product customization to one browsing context.
// All methods are safe for concurrent use; calls on one session serialize.
type Session struct {
	mu        sync.Mutex
	id        string
	source    catalog.Source
	state     *State
	scene     SceneConfig
	ar        ARSession
	createdAt time.Time
	updatedAt time.Time
}

// NewSession creates an empty session resolving identities through source.
func NewSession(id string, source catalog.Source) *Session {
	now := time.Now()
	return &Session{
		id:        id,
		source:    source,
		scene:     DefaultScene(),
		ar:        DefaultAR(),
		createdAt: now,
		updatedAt: now,
	}
}

func (s *Session) ID() string {
	return s.id
}

// LastActivity returns the time of the last mutation.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// SelectProduct starts configuring productID, discarding any current
// customization.
func (s *Session) SelectProduct(productID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.source.GetProduct(productID)
	if err != nil {
		return s.viewLocked(), err
	}
	s.state = Initialize(product, s.source)
	s.touchLocked()
	return s.viewLocked(), nil
}

// SetMaterial selects a material for the current product.
func (s *Session) SetMaterial(materialID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return s.viewLocked(), ErrNoProductSelected
	}
	if err := s.state.SetMaterial(materialID); err != nil {
		return s.viewLocked(), err
	}
	s.touchLocked()
	return s.viewLocked(), nil
}

// SetPart selects a part for the current product. NoPart deselects.
func (s *Session) SetPart(partType catalog.PartType, partID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return s.viewLocked(), ErrNoProductSelected
	}
	if err := s.state.SetPart(partType, partID); err != nil {
		return s.viewLocked(), err
	}
	s.touchLocked()
	return s.viewLocked(), nil
}

// ClearPart deselects the part of the given type.
func (s *Session) ClearPart(partType catalog.PartType) (View, error) {
	return s.SetPart(partType, NoPart)
}

// Reset returns the session to the empty state with default scene and AR
// settings.
func (s *Session) Reset() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = nil
	s.scene = DefaultScene()
	s.ar = DefaultAR()
	s.touchLocked()
	return s.viewLocked()
}

// SetAR records the AR overlay state. A zero scale keeps the current one.
func (s *Session) SetAR(active bool, scale float64) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if scale < 0 {
		return s.viewLocked(), fmt.Errorf("furniture scale %v: %w", scale, ErrInvalidSetting)
	}
	s.ar.Active = active
	if scale > 0 {
		s.ar.FurnitureScale = scale
	}
	s.touchLocked()
	return s.viewLocked(), nil
}

// UpdateScene applies u to the scene configuration.
func (s *Session) UpdateScene(u SceneUpdate) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scene, err := u.Apply(s.scene)
	if err != nil {
		return s.viewLocked(), err
	}
	s.scene = scene
	s.touchLocked()
	return s.viewLocked(), nil
}

// View returns the current read model.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Snapshot returns a deep copy of the current customization.
func (s *Session) Snapshot() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return Snapshot{}, ErrNoProductSelected
	}
	return Snapshot{
		Product:           s.state.Product(),
		Customization:     s.state.Snapshot(),
		Incompatibilities: s.state.Incompatibilities(),
	}, nil
}

// Restore rebuilds the session from a persisted record by replaying it
// through the normal selection path. Entries that are no longer legal are
// dropped and returned as errors; the product itself must still resolve.
func (s *Session) Restore(rec Customization) (View, []error) {
	if _, err := s.SelectProduct(rec.ProductID); err != nil {
		return s.View(), []error{err}
	}

	var dropped []error
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.SelectedMaterial != "" {
		if err := s.state.SetMaterial(rec.SelectedMaterial); err != nil {
			dropped = append(dropped, err)
		}
	}
	for _, partType := range sortedPartTypes(rec.SelectedParts) {
		if err := s.state.SetPart(partType, rec.SelectedParts[partType]); err != nil {
			dropped = append(dropped, err)
		}
	}
	return s.viewLocked(), dropped
}

func (s *Session) touchLocked() {
	s.updatedAt = time.Now()
}

func (s *Session) viewLocked() View {
	v := View{
		SessionID:         s.id,
		Status:            StatusEmpty,
		Incompatibilities: make([]Incompatibility, 0),
		Scene:             s.scene,
		AR:                s.ar,
		CreatedAt:         s.createdAt,
		UpdatedAt:         s.updatedAt,
	}
	if s.state == nil {
		return v
	}

	product := s.state.Product()
	custom := s.state.Snapshot()
	quote := s.state.Quote()
	visual := ResolveVisual(product, custom, s.ar)

	v.Status = StatusConfiguring
	v.Product = &product
	v.Customization = &custom
	v.Quote = &quote
	v.Incompatibilities = s.state.Incompatibilities()
	v.Visual = &visual
	return v
}
