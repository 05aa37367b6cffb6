package ws

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/windoze95/recipefinder-api/internal/logger"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 8192

	// Pending room messages the hub buffers before publishers drop.
	broadcastBuffer = 256
)

// Client represents a single WebSocket connection.
type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	RoomID   string
	ClientID string
}

// Hub maintains active rooms and broadcasts messages.
type Hub struct {
	Rooms      map[string]map[*Client]bool // roomID -> set of clients
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan *RoomMessage
	mu         sync.RWMutex

	hooksMu     sync.Mutex
	onRoomEmpty []func(roomID string)
}

// RoomMessage carries a message destined for a specific room.
type RoomMessage struct {
	RoomID  string
	Message []byte
	Sender  *Client // nil for system messages
}

// NewHub creates and returns a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan *RoomMessage, broadcastBuffer),
	}
}

// OnRoomEmpty registers fn to be called, from the hub goroutine, after the
// last client leaves a room.
func (h *Hub) OnRoomEmpty(fn func(roomID string)) {
	h.hooksMu.Lock()
	h.onRoomEmpty = append(h.onRoomEmpty, fn)
	h.hooksMu.Unlock()
}

// Publish queues message for every client in roomID without blocking. It
// reports false when the hub is backed up and the message was dropped.
func (h *Hub) Publish(roomID string, message []byte) bool {
	select {
	case h.Broadcast <- &RoomMessage{RoomID: roomID, Message: message}:
		return true
	default:
		logger.Get().Warn("hub broadcast buffer full, dropping message", zap.String("room_id", roomID))
		return false
	}
}

// RoomSize returns the number of clients in roomID.
func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Rooms[roomID])
}

// Run handles register, unregister, and broadcast events. It should be
// launched as a goroutine.
func (h *Hub) Run() {
	log := logger.Get()

	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.Rooms[client.RoomID] == nil {
				h.Rooms[client.RoomID] = make(map[*Client]bool)
			}
			h.Rooms[client.RoomID][client] = true
			h.mu.Unlock()

			log.Info("client registered",
				zap.String("room_id", client.RoomID),
				zap.String("client_id", client.ClientID),
			)

		case client := <-h.Unregister:
			h.mu.Lock()
			emptied := h.removeLocked(client.RoomID, client)
			h.mu.Unlock()
			if emptied {
				h.roomEmptied(client.RoomID)
			}

			log.Info("client unregistered",
				zap.String("room_id", client.RoomID),
				zap.String("client_id", client.ClientID),
			)

		case msg := <-h.Broadcast:
			var dropped []*Client
			h.mu.RLock()
			for client := range h.Rooms[msg.RoomID] {
				// Skip sender if present
				if msg.Sender != nil && client == msg.Sender {
					continue
				}
				select {
				case client.Send <- msg.Message:
				default:
					// Client's send buffer is full; disconnect it.
					dropped = append(dropped, client)
				}
			}
			h.mu.RUnlock()

			if len(dropped) > 0 {
				emptied := false
				h.mu.Lock()
				for _, client := range dropped {
					emptied = h.removeLocked(msg.RoomID, client) || emptied
				}
				h.mu.Unlock()
				if emptied {
					h.roomEmptied(msg.RoomID)
				}
			}
		}
	}
}

// removeLocked drops client from roomID and closes its send channel. It
// reports whether the room is now empty. h.mu must be held.
func (h *Hub) removeLocked(roomID string, client *Client) bool {
	clients, ok := h.Rooms[roomID]
	if !ok {
		return false
	}
	if _, exists := clients[client]; !exists {
		return false
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.Rooms, roomID)
		return true
	}
	return false
}

func (h *Hub) roomEmptied(roomID string) {
	h.hooksMu.Lock()
	hooks := append([]func(string){}, h.onRoomEmpty...)
	h.hooksMu.Unlock()
	for _, fn := range hooks {
		fn(roomID)
	}
}

// ReadPump reads messages from the WebSocket connection. It is intended to be
// run in a per-client goroutine. The provided handler is called for each
// incoming message.
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
			) {
				logger.Get().Warn("unexpected websocket close",
					zap.String("room_id", c.RoomID),
					zap.String("client_id", c.ClientID),
					zap.Error(err),
				)
			}
			break
		}
		handler(c, message)
	}
}

// WritePump sends messages from the Send channel to the WebSocket connection.
// It also sends periodic pings to keep the connection alive. It is intended to
// be run in a per-client goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// newUpgrader returns an upgrader that accepts the configured origins,
// localhost, and requests without an Origin header.
func newUpgrader(allowedOrigins []string) *websocket.Upgrader {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(r.Header.Get("Origin"), allowed)
		},
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

func originAllowed(origin string, allowed map[string]bool) bool {
	if origin == "" || allowed["*"] || allowed[origin] {
		return true
	}
	// Allow localhost for development
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Scheme == "http" && u.Hostname() == "localhost"
}
