package transport

import (
	"sync"

	"github.com/gorilla/websocket"
)

// client is one WebSocket connection joined to at most one game room.
type client struct {
	conn   *websocket.Conn
	send   chan []byte
	gameID string

	writeMu sync.Mutex
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn, send: make(chan []byte, 16)}
}

// writePump drains c.send onto the socket until the channel is closed.
func (c *client) writePump() {
	for msg := range c.send {
		c.writeMu.Lock()
		err := c.conn.WriteMessage(websocket.TextMessage, msg)
		c.writeMu.Unlock()
		if err != nil {
			return
		}
	}
}

// enqueue queues msg for delivery without blocking the caller; when a
// slow/dead client's buffer is full, msg is discarded for that client
// rather than stalling the room. The client itself stays joined.
func (c *client) enqueue(msg []byte) {
	select {
	case c.send <- msg:
	default:
	}
}

// hub tracks which clients are joined to which game rooms, so a move
// submission can be broadcast to every connection watching that game.
type hub struct {
	mu    sync.Mutex
	rooms map[string]map[*client]struct{}
}

func newHub() *hub {
	return &hub{rooms: make(map[string]map[*client]struct{})}
}

func (h *hub) join(gameID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[gameID] == nil {
		h.rooms[gameID] = make(map[*client]struct{})
	}
	h.rooms[gameID][c] = struct{}{}
	c.gameID = gameID
}

func (h *hub) leave(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[c.gameID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, c.gameID)
		}
	}
}

// broadcast sends msg to every client in gameID's room except skip (pass nil
// to include everyone).
func (h *hub) broadcast(gameID string, skip *client, msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.rooms[gameID] {
		if c == skip {
			continue
		}
		c.enqueue(msg)
	}
}
