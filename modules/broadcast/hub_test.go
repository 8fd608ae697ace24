package broadcast

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/furniture-configurator/domain/configurator"
	"github.com/example/furniture-configurator/events"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any) {}
func (m *mockLogger) Info(_ string, _ ...any)  {}
func (m *mockLogger) Warn(_ string, _ ...any)  {}
func (m *mockLogger) Error(_ string, _ ...any) {}
func (m *mockLogger) With(_ ...any) types.Logger {
	return m
}
func (m *mockLogger) WithModule(_ string) types.Logger {
	return m
}
func (m *mockLogger) WithError(_ error) types.Logger {
	return m
}

// recordingConn captures written messages.
type recordingConn struct {
	mu       sync.Mutex
	messages [][]byte
	closed   bool
}

func (c *recordingConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, data)
	return nil
}

func (c *recordingConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *recordingConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func (c *recordingConn) last() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		return nil
	}
	return c.messages[len(c.messages)-1]
}

func (c *recordingConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func startModule(t *testing.T) *Module {
	t.Helper()
	m := NewModule(&mockLogger{})
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { _ = m.Stop(context.Background()) })
	return m
}

func TestHub_DeliversOnlyToSessionViewers(t *testing.T) {
	m := startModule(t)
	hub := m.GetHub()

	a := &recordingConn{}
	b := &recordingConn{}
	hub.Register(&Client{ID: "c1", SessionID: "s1", Conn: a})
	hub.Register(&Client{ID: "c2", SessionID: "s2", Conn: b})
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.Broadcast("s1", map[string]string{"hello": "s1"})
	waitFor(t, func() bool { return a.count() == 1 })

	if b.count() != 0 {
		t.Errorf("Expected viewer of s2 to receive nothing, got %d messages", b.count())
	}
	if got := hub.SessionClientCount("s1"); got != 1 {
		t.Errorf("Expected 1 viewer of s1, got %d", got)
	}
}

func TestHub_Unregister(t *testing.T) {
	m := startModule(t)
	hub := m.GetHub()

	conn := &recordingConn{}
	client := &Client{ID: "c1", SessionID: "s1", Conn: conn}
	hub.Register(client)
	hub.Unregister(client)
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	if got := hub.SessionClientCount("s1"); got != 0 {
		t.Errorf("Expected no viewers, got %d", got)
	}
}

func TestModule_StopClosesViewers(t *testing.T) {
	m := NewModule(&mockLogger{})
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	conn := &recordingConn{}
	m.GetHub().Register(&Client{ID: "c1", SessionID: "s1", Conn: conn})

	if err := m.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if !conn.isClosed() {
		t.Error("Expected viewer connection to be closed")
	}
}

func TestModule_RelaysCustomizationChanged(t *testing.T) {
	m := startModule(t)
	conn := &recordingConn{}
	m.GetHub().Register(&Client{ID: "c1", SessionID: "s1", Conn: conn})
	waitFor(t, func() bool { return m.GetHub().ClientCount() == 1 })

	event := events.CustomizationChangedEvent{
		SessionID:  "s1",
		Change:     events.ChangeMaterial,
		TotalPrice: 1549,
		Visual:     &configurator.VisualConfig{ProductID: "sofa-modern-1", MaterialID: "velvet-gray", MaterialColor: "#808080"},
		Scene:      configurator.DefaultScene(),
		ChangedAt:  time.Now(),
	}
	if err := m.handleCustomizationChanged(context.Background(), event, nil); err != nil {
		t.Fatalf("handleCustomizationChanged() error = %v", err)
	}
	waitFor(t, func() bool { return conn.count() == 1 })

	var got Update
	if err := json.Unmarshal(conn.last(), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.Type != UpdateCustomization || got.TotalPrice != 1549 {
		t.Errorf("Unexpected update %+v", got)
	}
	if got.Visual == nil || got.Visual.MaterialColor != "#808080" {
		t.Errorf("Expected visual configuration in update, got %+v", got.Visual)
	}

	if err := m.handleSessionReset(context.Background(), events.SessionResetEvent{SessionID: "s1", ResetAt: time.Now()}, nil); err != nil {
		t.Fatalf("handleSessionReset() error = %v", err)
	}
	waitFor(t, func() bool { return conn.count() == 2 })
	if err := json.Unmarshal(conn.last(), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.Type != UpdateReset {
		t.Errorf("Expected reset update, got %q", got.Type)
	}
}
