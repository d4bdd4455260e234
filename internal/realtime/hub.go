package realtime

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ChangeEvent tells connected clients that a table changed so they can
// refetch. No row data crosses the socket.
type ChangeEvent struct {
	Table  string `json:"table"`
	Action string `json:"action"` // created, updated, deleted
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth happens via the JWT before the upgrade; origins are handled
	// by the CORS layer
	CheckOrigin: func(r *http.Request) bool { return true },
}

type client struct {
	conn    *websocket.Conn
	send    chan ChangeEvent
	ownerID int
}

// Hub fans change events out to every connected client of the same owner
// account.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Broadcast queues an event for every client in the owner's account.
// Slow clients get dropped rather than blocking the sender.
func (h *Hub) Broadcast(ownerID int, table, action string) {
	event := ChangeEvent{Table: table, Action: action}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.ownerID != ownerID {
			continue
		}
		select {
		case c.send <- event:
		default:
			// Buffer full; the write pump will notice the closed
			// connection on its next write
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// ServeWS upgrades the request and keeps the connection alive until the
// client goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, ownerID int) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WebSocket] upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan ChangeEvent, 16), ownerID: ownerID}
	h.register(c)

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Clients never send application messages; the loop exists to
	// process control frames and detect disconnects
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
