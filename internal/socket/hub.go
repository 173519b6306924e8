package socket

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks the dashboard clients connected over WebSocket and fans ledger
// events out to all of them.
type Hub struct {
	// clients maps each connection to the email of the user that opened it.
	clients map[*websocket.Conn]string
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]string),
	}
}

// Register adds a client connection to the Hub.
func (h *Hub) Register(conn *websocket.Conn, email string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = email
	log.Printf("WebSocket client registered: %s", email)
}

// Unregister removes a client connection from the Hub.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if email, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		log.Printf("WebSocket client unregistered: %s", email)
	}
}

// ClientCount reports how many dashboard clients are connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a message to every connected client. The write lock is held
// for the whole fan-out: gorilla allows only one writer per connection, so
// concurrent broadcasts must not reach the same conn at once. Write failures
// only drop the one connection; an offline client is not an error.
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, email := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write failed, dropping client %s: %v", email, err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
