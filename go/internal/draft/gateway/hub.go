package gateway

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Hub fans allocation events out to the websocket clients watching each
// draft room. The gateway is read-only: clients receive events, they never
// mutate draft state over the socket.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*client]bool

	upgrader websocket.Upgrader
	config   Config
}

type client struct {
	draftID uuid.UUID
	conn    *websocket.Conn
	send    chan []byte
}

// Config holds websocket connection settings
type Config struct {
	WriteTimeout   time.Duration
	PongTimeout    time.Duration
	PingInterval   time.Duration
	SendBufferSize int
}

func DefaultConfig() Config {
	return Config{
		WriteTimeout:   10 * time.Second,
		PongTimeout:    60 * time.Second,
		PingInterval:   30 * time.Second,
		SendBufferSize: 32,
	}
}

func NewHub(cfg Config) *Hub {
	return &Hub{
		rooms:  make(map[uuid.UUID]map[*client]bool),
		config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Broadcast sends an event envelope to every client in the draft's room.
// Slow clients are dropped rather than allowed to block the fan-out.
func (h *Hub) Broadcast(draftID uuid.UUID, envelope json.RawMessage) {
	h.mu.RLock()
	room := h.rooms[draftID]
	var stale []*client
	for c := range room {
		select {
		case c.send <- envelope:
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		log.Warn().Str("draft_id", draftID.String()).Msg("dropping slow websocket client")
		h.remove(c)
	}
}

// RoomSize reports the number of clients watching a draft
func (h *Hub) RoomSize(draftID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[draftID])
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[c.draftID] == nil {
		h.rooms[c.draftID] = make(map[*client]bool)
	}
	h.rooms[c.draftID][c] = true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if room, ok := h.rooms[c.draftID]; ok {
		if room[c] {
			delete(room, c)
			close(c.send)
			if len(room) == 0 {
				delete(h.rooms, c.draftID)
			}
		}
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// writePump drains the client's send channel onto the socket, pinging on
// an interval so dead peers are detected.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(h.config.PingInterval)
	defer func() {
		ticker.Stop()
		h.remove(c)
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames; it exists to process control messages
// and notice closed connections.
func (h *Hub) readPump(c *client) {
	defer h.remove(c)

	c.conn.SetReadLimit(1024)
	_ = c.conn.SetReadDeadline(time.Now().Add(h.config.PongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(h.config.PongTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
