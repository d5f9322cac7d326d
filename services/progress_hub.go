package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// ProgressEvent is broadcast while an export run advances through its
// pipeline stages.
type ProgressEvent struct {
	RunID     string `json:"run_id"`
	Stage     string `json:"stage"` // days | products | artifacts | done | failed
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

type WSClient struct {
	Conn *websocket.Conn
}

type ProgressHub struct {
	mu      sync.RWMutex
	clients map[*WSClient]struct{}
}

func NewProgressHub() *ProgressHub {
	return &ProgressHub{clients: make(map[*WSClient]struct{})}
}

func (h *ProgressHub) Register(c *WSClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *ProgressHub) Unregister(c *WSClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *ProgressHub) Broadcast(event ProgressEvent) {
	msg, _ := json.Marshal(event)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
