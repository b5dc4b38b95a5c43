package web

import (
	"encoding/json"
	"log"
	"sync"

	"nhooyr.io/websocket"
)

// message is the websocket envelope in both directions.
type message struct {
	T     string `json:"t"`
	View  string `json:"view,omitempty"`
	SVG   string `json:"svg,omitempty"`
	Error string `json:"error,omitempty"`
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected browsers and fans scene updates out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: map[*client]struct{}{}}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	log.Printf("client %s connected", c.id)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	log.Printf("client %s disconnected", c.id)
}

// Broadcast queues msg for every client. Clients whose queue is full miss
// the message; the next scene supersedes it anyway.
func (h *Hub) Broadcast(msg message) {
	b, err := json.Marshal(msg)
	if err != nil {
		log.Printf("warn: encode %s message: %v", msg.T, err)
		return
	}
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- b:
		default:
		}
	}
	h.mu.RUnlock()
}

func (h *Hub) sendTo(c *client, msg message) {
	b, err := json.Marshal(msg)
	if err != nil {
		log.Printf("warn: encode %s message: %v", msg.T, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- b:
	default:
	}
}
