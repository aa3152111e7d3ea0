package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"studyjournal-backend/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans generation-job events out to every connected tab. There is
// one user per process, so events broadcast to all connections.
type Hub struct {
	mu          sync.RWMutex
	connections []*websocket.Conn
	events      chan models.WSMessage
}

func NewHub() *Hub {
	h := &Hub{events: make(chan models.WSMessage, 32)}
	go h.run()
	return h
}

// Publish queues an event for broadcast without blocking the caller.
func (h *Hub) Publish(msg models.WSMessage) {
	select {
	case h.events <- msg:
	default:
		log.Println("WebSocket event dropped: broadcast queue full")
	}
}

func (h *Hub) run() {
	for msg := range h.events {
		data, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		h.broadcast(data)
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.register(conn)

	// Keep connection alive and handle disconnect
	go func() {
		defer h.unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

func (h *Hub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections = append(h.connections, conn)
	log.Printf("WebSocket connected (total: %d)", len(h.connections))
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()
	for i, c := range h.connections {
		if c == conn {
			h.connections = append(h.connections[:i], h.connections[i+1:]...)
			break
		}
	}
	log.Printf("WebSocket disconnected (total: %d)", len(h.connections))
}

func (h *Hub) broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.connections {
		conn.WriteMessage(websocket.TextMessage, data)
	}
}
