// Package events pushes transient notifications and refresh hints to
// connected UI sessions. Mutating services publish a success toast after every
// persisted change; validation failures surface as error toasts; everything
// else stays silent.
package events

import (
	"sync"

	"github.com/gorilla/websocket"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Event is one toast plus the collection the UI should re-render.
type Event struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
	Topic   string `json:"topic,omitempty"`
}

// Publisher is what services see: fire-and-forget toasts.
type Publisher interface {
	Publish(e Event)
}

// Hub fans events out to every registered connection.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; ok {
		_ = conn.Close()
		delete(h.conns, conn)
	}
}

// Publish sends the event to every connection, dropping any that fail.
func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.WriteJSON(e); err != nil {
			h.Unregister(c)
		}
	}
}

func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		_ = c.Close()
		delete(h.conns, c)
	}
}

// Success publishes a success toast for the given collection topic.
func Success(p Publisher, topic, message string) {
	if p != nil {
		p.Publish(Event{Level: LevelSuccess, Message: message, Topic: topic})
	}
}

// Failure publishes an error toast.
func Failure(p Publisher, topic, message string) {
	if p != nil {
		p.Publish(Event{Level: LevelError, Message: message, Topic: topic})
	}
}
