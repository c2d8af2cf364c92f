package live

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// client serializes writes; a websocket.Conn supports one writer at a time
// and overlapping poll ticks may broadcast concurrently.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

// Hub tracks connected websocket clients and broadcasts JSON to them.
type Hub struct {
	log     *zap.SugaredLogger
	mu      sync.Mutex
	clients map[*client]bool
	last    any
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{log: log, clients: make(map[*client]bool)}
}

// ServeHTTP upgrades the request and registers the connection. The latest
// broadcast value, if any, is sent right away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn}

	h.mu.Lock()
	h.clients[c] = true
	last := h.last
	h.mu.Unlock()

	if last != nil {
		h.send(c, last)
	}

	// Drain reads so close frames are processed; clients never send data.
	go func() {
		defer h.remove(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends v to every client, dropping those whose write fails.
func (h *Hub) Broadcast(v any) {
	h.mu.Lock()
	h.last = v
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.send(c, v)
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
	}
}

func (h *Hub) send(c *client, v any) {
	if err := c.writeJSON(v); err != nil {
		h.log.Debugw("dropping websocket client", "error", err)
		h.remove(c)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c] {
		delete(h.clients, c)
		c.conn.Close()
	}
}
