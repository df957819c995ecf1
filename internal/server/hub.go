package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/coder/websocket"

	"github.com/conneroisu/scaff/internal/logging"
)

// Hub tracks live-reload WebSocket clients and broadcasts reload messages
// to all of them when generated output changes.
type Hub struct {
	log logging.Logger

	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
}

// NewHub creates an empty hub.
func NewHub(log logging.Logger) *Hub {
	if log == nil {
		log = logging.Discard()
	}

	return &Hub{
		log:     log.WithComponent("reload-hub"),
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the request to a WebSocket connection and holds it open
// until the client disconnects. Clients only listen; incoming messages are
// drained and dropped.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// The preview server binds to localhost for a single developer;
		// cross-origin pages on the same machine are acceptable peers.
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.Warn(r.Context(), err, "websocket upgrade failed")
		return
	}

	h.add(conn)
	defer h.remove(conn)

	ctx := r.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}

// Broadcast sends a text message to every connected client. Clients that
// fail to receive are dropped.
func (h *Hub) Broadcast(ctx context.Context, message []byte) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.Write(ctx, websocket.MessageText, message); err != nil {
			h.log.Debug(ctx, "dropping unreachable client", "error", err.Error())
			h.remove(conn)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
	h.clients = make(map[*websocket.Conn]struct{})
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = struct{}{}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		_ = conn.Close(websocket.StatusNormalClosure, "")
	}
}
