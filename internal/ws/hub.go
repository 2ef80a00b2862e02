// Package ws holds the websocket protocol types and the registry of live
// game connections.
package ws

import (
	"sync"

	"github.com/rs/zerolog"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type client struct {
	conn   Conn
	gameID int
}

// Hub tracks which user is watching which game. Each user holds at most one
// connection.
type Hub struct {
	clients map[string]client
	mu      sync.RWMutex
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]client),
		log:     log.With().Str("component", "hub").Logger(),
	}
}

// Register attaches conn for username to gameID, closing any connection
// the user had before.
func (h *Hub) Register(username string, gameID int, conn Conn) {
	h.mu.Lock()
	old, exists := h.clients[username]
	h.clients[username] = client{conn: conn, gameID: gameID}
	h.mu.Unlock()

	if exists && old.conn != conn {
		_ = old.conn.Close()
	}
	h.log.Debug().Str("username", username).Int("gameID", gameID).Msg("registered connection")
}

// Unregister drops username only if conn is still the registered one and
// reports whether it did.
func (h *Hub) Unregister(username string, conn Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[username]
	if !ok || c.conn != conn {
		return false
	}
	delete(h.clients, username)
	h.log.Debug().Str("username", username).Msg("unregistered connection")
	return true
}

// GameOf reports the game username is connected to.
func (h *Hub) GameOf(username string) (int, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[username]
	return c.gameID, ok
}

// Send writes msg to username's connection, if any.
func (h *Hub) Send(username string, msg ServerMessage) error {
	h.mu.RLock()
	c, ok := h.clients[username]
	h.mu.RUnlock()
	if !ok {
		return nil
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		h.drop(username, c.conn, err)
		return err
	}
	return nil
}

// Broadcast sends msg to everyone in gameID except exclude. Connections
// that fail to write are closed and forgotten.
func (h *Hub) Broadcast(gameID int, exclude string, msg ServerMessage) {
	type target struct {
		username string
		conn     Conn
	}
	h.mu.RLock()
	var targets []target
	for username, c := range h.clients {
		if c.gameID == gameID && username != exclude {
			targets = append(targets, target{username, c.conn})
		}
	}
	h.mu.RUnlock()

	for _, t := range targets {
		if err := t.conn.WriteJSON(msg); err != nil {
			h.drop(t.username, t.conn, err)
		}
	}
}

func (h *Hub) drop(username string, conn Conn, err error) {
	h.log.Warn().Err(err).Str("username", username).Msg("dropping connection")
	h.Unregister(username, conn)
	_ = conn.Close()
}

func (h *Hub) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
