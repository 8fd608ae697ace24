package broadcast

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-monolith/mono/pkg/types"
)

// Conn is the part of a WebSocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// textMessage matches websocket.TextMessage.
const textMessage = 1

// Client is a viewer subscribed to one configurator session.
type Client struct {
	ID        string
	SessionID string
	Conn      Conn
}

// Message is a payload addressed to the viewers of a session.
type Message struct {
	SessionID string
	Payload   any
}

// Hub fans session updates out to subscribed viewers.
type Hub struct {
	clients    map[string]*Client
	sessions   map[string]map[string]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	done       chan struct{}
	mu         sync.RWMutex
	logger     types.Logger
}

// NewHub creates a new Hub.
func NewHub(logger types.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		sessions:   make(map[string]map[string]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run starts the hub's main loop until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAllClients()
			close(h.done)
			return
		case client := <-h.register:
			h.handleRegister(client)
		case client := <-h.unregister:
			h.handleUnregister(client)
		case msg := <-h.broadcast:
			h.handleBroadcast(msg)
		}
	}
}

// Wait blocks until the hub has stopped.
func (h *Hub) Wait() {
	<-h.done
}

// Register adds a client to the hub. It is a no-op once the hub stopped.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues payload for every viewer of a session.
func (h *Hub) Broadcast(sessionID string, payload any) {
	select {
	case h.broadcast <- &Message{SessionID: sessionID, Payload: payload}:
	case <-h.done:
	}
}

// ClientCount returns the number of connected viewers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SessionClientCount returns the number of viewers of a session.
func (h *Hub) SessionClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		_ = client.Conn.Close()
	}
	h.clients = make(map[string]*Client)
	h.sessions = make(map[string]map[string]bool)
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client
	if h.sessions[client.SessionID] == nil {
		h.sessions[client.SessionID] = make(map[string]bool)
	}
	h.sessions[client.SessionID][client.ID] = true
	h.logger.Debug("Viewer registered", "clientID", client.ID, "sessionID", client.SessionID)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	if viewers := h.sessions[client.SessionID]; viewers != nil {
		delete(viewers, client.ID)
		if len(viewers) == 0 {
			delete(h.sessions, client.SessionID)
		}
	}
	h.logger.Debug("Viewer unregistered", "clientID", client.ID, "sessionID", client.SessionID)
}

func (h *Hub) handleBroadcast(msg *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	viewers := h.sessions[msg.SessionID]
	if len(viewers) == 0 {
		return
	}

	data, err := json.Marshal(msg.Payload)
	if err != nil {
		h.logger.Error("Failed to marshal broadcast message", "error", err)
		return
	}

	for clientID := range viewers {
		client, ok := h.clients[clientID]
		if !ok {
			continue
		}
		if err := client.Conn.WriteMessage(textMessage, data); err != nil {
			h.logger.Warn("Failed to send to viewer", "clientID", clientID, "error", err)
		}
	}
}
