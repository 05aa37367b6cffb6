package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/windoze95/recipefinder-api/internal/logger"
	"github.com/windoze95/recipefinder-api/internal/models"
	"github.com/windoze95/recipefinder-api/internal/repository"
	"github.com/windoze95/recipefinder-api/internal/util"
	"go.uber.org/zap"
)

// WebSocket message types for the cook mode protocol.
const (
	MsgTypeStepNext    = "step_next"    // Advance to the next step
	MsgTypeStepPrev    = "step_prev"    // Go back one step
	MsgTypeStepGoto    = "step_goto"    // Jump to a step
	MsgTypeStepToggle  = "step_toggle"  // Mark a step done or not done
	MsgTypeTimerStart  = "timer_start"  // Start (or restart) the session timer
	MsgTypeTimerCancel = "timer_cancel" // Cancel the session timer
	MsgTypeCookState   = "cook_state"   // Current session state
	MsgTypeTimerDone   = "timer_done"   // Session timer elapsed
	MsgTypeError       = "error"        // Error message
	MsgTypeConnected   = "connected"    // Connection confirmed
)

// maxTimerMinutes bounds a single cook mode timer.
const maxTimerMinutes = 24 * 60

// WSMessage is the envelope for all messages sent over the cook mode WebSocket.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// StepIndexPayload selects a step for step_goto and step_toggle.
type StepIndexPayload struct {
	Index *int `json:"index"`
}

// TimerStartPayload starts a countdown.
type TimerStartPayload struct {
	Minutes float64 `json:"minutes"`
}

// CookStatePayload is the shared state of a cook mode session.
type CookStatePayload struct {
	ItemID      string     `json:"item_id"`
	CurrentStep int        `json:"current_step"`
	TotalSteps  int        `json:"total_steps"`
	Completed   []int      `json:"completed"`
	TimerEndsAt *time.Time `json:"timer_ends_at"`
}

// TimerDonePayload announces an elapsed timer.
type TimerDonePayload struct {
	ItemID string `json:"item_id"`
}

// ErrorPayload carries an error message to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}

// ConnectedPayload confirms a successful connection.
type ConnectedPayload struct {
	ItemID   string `json:"item_id"`
	Session  string `json:"session"`
	ClientID string `json:"client_id,omitempty"`
}

// ItemLoader loads a menu item by id.
type ItemLoader interface {
	GetItem(ctx context.Context, id string) (models.MenuItem, error)
}

// cookSession is the step walker shared by every connection in one room.
type cookSession struct {
	mu          sync.Mutex
	itemID      string
	totalSteps  int
	currentStep int
	completed   map[int]bool
	timerEndsAt *time.Time
	timer       *time.Timer
}

func (s *cookSession) snapshot() CookStatePayload {
	completed := make([]int, 0, len(s.completed))
	for i := 0; i < s.totalSteps; i++ {
		if s.completed[i] {
			completed = append(completed, i)
		}
	}
	return CookStatePayload{
		ItemID:      s.itemID,
		CurrentStep: s.currentStep,
		TotalSteps:  s.totalSteps,
		Completed:   completed,
		TimerEndsAt: s.timerEndsAt,
	}
}

// clamp limits index to the session's step range.
func (s *cookSession) clamp(index int) int {
	if index >= s.totalSteps {
		index = s.totalSteps - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

// stopTimerLocked cancels any pending timer. s.mu must be held.
func (s *cookSession) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerEndsAt = nil
}

// CookingHandler manages WebSocket connections for cook mode.
type CookingHandler struct {
	Hub   *Hub
	Items ItemLoader

	// TimerUnit is the duration of one timer minute.
	TimerUnit time.Duration

	upgrader *websocket.Upgrader
	mu       sync.Mutex
	sessions map[string]*cookSession
}

// NewCookingHandler returns a new CookingHandler. Sessions are dropped when
// their room empties.
func NewCookingHandler(hub *Hub, items ItemLoader, allowedOrigins []string) *CookingHandler {
	ch := &CookingHandler{
		Hub:       hub,
		Items:     items,
		TimerUnit: time.Minute,
		upgrader:  newUpgrader(allowedOrigins),
		sessions:  make(map[string]*cookSession),
	}
	hub.OnRoomEmpty(ch.releaseSession)
	return ch
}

// cookRoomID names the room shared by one item and session.
func cookRoomID(itemID, session string) string {
	return "cook:" + itemID + ":" + session
}

// HandleCookSession upgrades an HTTP request to a WebSocket connection for
// cook mode. Every connection with the same item and session query
// parameter shares one step walker.
func (ch *CookingHandler) HandleCookSession(c *gin.Context) {
	log := logger.FromGin(c)

	itemID := strings.TrimSpace(c.Param("item_id"))
	if itemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id is required"})
		return
	}
	session := strings.TrimSpace(c.Query("session"))
	if session == "" {
		session = "default"
	}
	clientID, _ := util.GetClientIDFromContext(c)

	item, err := ch.Items.GetItem(c.Request.Context(), itemID)
	if err != nil {
		if repository.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Error("failed to load item for cook mode", zap.String("item_id", itemID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load item"})
		return
	}

	// Upgrade to WebSocket
	conn, err := ch.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", zap.String("item_id", itemID), zap.Error(err))
		return
	}

	client := &Client{
		Hub:      ch.Hub,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		RoomID:   cookRoomID(itemID, session),
		ClientID: clientID,
	}
	ch.join(client, item, session)

	log.Info("cook session started",
		zap.String("item_id", itemID),
		zap.String("session", session),
		zap.String("client_id", clientID),
	)

	// Start read and write pumps
	go client.WritePump()
	go client.ReadPump(func(cl *Client, data []byte) {
		ch.handleMessage(cl, data)
	})
}

// join registers client with the hub, creating the room's session when it
// is the first connection, and sends the connection confirmation and the
// current state.
func (ch *CookingHandler) join(client *Client, item models.MenuItem, session string) {
	ch.mu.Lock()
	s, ok := ch.sessions[client.RoomID]
	if !ok {
		s = &cookSession{
			itemID:     item.ID,
			totalSteps: len(item.Instructions),
			completed:  make(map[int]bool),
		}
		ch.sessions[client.RoomID] = s
	}
	ch.mu.Unlock()

	ch.Hub.Register <- client

	sendMessage(client, MsgTypeConnected, ConnectedPayload{
		ItemID:   item.ID,
		Session:  session,
		ClientID: client.ClientID,
	})
	s.mu.Lock()
	state := s.snapshot()
	s.mu.Unlock()
	sendMessage(client, MsgTypeCookState, state)
}

func (ch *CookingHandler) session(roomID string) *cookSession {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.sessions[roomID]
}

// releaseSession drops the session of an emptied room and stops its timer.
func (ch *CookingHandler) releaseSession(roomID string) {
	ch.mu.Lock()
	s, ok := ch.sessions[roomID]
	delete(ch.sessions, roomID)
	ch.mu.Unlock()
	if !ok {
		return
	}
	s.mu.Lock()
	s.stopTimerLocked()
	s.mu.Unlock()
}

// handleMessage parses an incoming WebSocket message and applies it to the
// client's session.
func (ch *CookingHandler) handleMessage(client *Client, data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		ch.sendError(client, "invalid message format")
		return
	}

	logger.Get().Debug("received ws message",
		zap.String("type", msg.Type),
		zap.String("room_id", client.RoomID),
		zap.String("client_id", client.ClientID),
	)

	s := ch.session(client.RoomID)
	if s == nil {
		ch.sendError(client, "no active cook session")
		return
	}

	switch msg.Type {
	case MsgTypeStepNext:
		ch.update(client.RoomID, s, func() { s.currentStep = s.clamp(s.currentStep + 1) })

	case MsgTypeStepPrev:
		ch.update(client.RoomID, s, func() { s.currentStep = s.clamp(s.currentStep - 1) })

	case MsgTypeStepGoto:
		index, ok := ch.stepIndex(client, msg.Payload)
		if !ok {
			return
		}
		ch.update(client.RoomID, s, func() { s.currentStep = s.clamp(index) })

	case MsgTypeStepToggle:
		index, ok := ch.stepIndex(client, msg.Payload)
		if !ok {
			return
		}
		s.mu.Lock()
		total := s.totalSteps
		s.mu.Unlock()
		if index < 0 || index >= total {
			ch.sendError(client, "step index out of range")
			return
		}
		ch.update(client.RoomID, s, func() {
			if s.completed[index] {
				delete(s.completed, index)
			} else {
				s.completed[index] = true
			}
		})

	case MsgTypeTimerStart:
		ch.handleTimerStart(client, s, msg.Payload)

	case MsgTypeTimerCancel:
		ch.update(client.RoomID, s, s.stopTimerLocked)

	default:
		ch.sendError(client, "unknown message type: "+msg.Type)
	}
}

// handleTimerStart replaces the session timer. When it fires the room gets
// timer_done followed by the updated state.
func (ch *CookingHandler) handleTimerStart(client *Client, s *cookSession, payload json.RawMessage) {
	var timer TimerStartPayload
	if err := json.Unmarshal(payload, &timer); err != nil {
		ch.sendError(client, "invalid timer payload")
		return
	}
	if timer.Minutes <= 0 || timer.Minutes > maxTimerMinutes {
		ch.sendError(client, "minutes must be between 0 and 1440")
		return
	}

	roomID := client.RoomID
	d := time.Duration(timer.Minutes * float64(ch.TimerUnit))
	ch.update(roomID, s, func() {
		s.stopTimerLocked()
		endsAt := time.Now().Add(d).UTC()
		s.timerEndsAt = &endsAt

		var fired *time.Timer
		fired = time.AfterFunc(d, func() {
			s.mu.Lock()
			if s.timer != fired {
				// Cancelled or replaced.
				s.mu.Unlock()
				return
			}
			s.timer = nil
			s.timerEndsAt = nil
			itemID := s.itemID
			state := s.snapshot()
			s.mu.Unlock()

			ch.Hub.Publish(roomID, encodeMessage(MsgTypeTimerDone, TimerDonePayload{ItemID: itemID}))
			ch.Hub.Publish(roomID, encodeMessage(MsgTypeCookState, state))
		})
		s.timer = fired
	})
}

// update applies change to the session under its lock and broadcasts the
// resulting state to the room.
func (ch *CookingHandler) update(roomID string, s *cookSession, change func()) {
	s.mu.Lock()
	change()
	state := s.snapshot()
	s.mu.Unlock()

	ch.Hub.Publish(roomID, encodeMessage(MsgTypeCookState, state))
}

func (ch *CookingHandler) stepIndex(client *Client, payload json.RawMessage) (int, bool) {
	var p StepIndexPayload
	if err := json.Unmarshal(payload, &p); err != nil || p.Index == nil {
		ch.sendError(client, "index is required")
		return 0, false
	}
	return *p.Index, true
}

// sendError sends an error message to a single client.
func (ch *CookingHandler) sendError(client *Client, message string) {
	sendMessage(client, MsgTypeError, ErrorPayload{Message: message})
}

// sendMessage queues a message for one client, dropping it when the
// client's buffer is full.
func sendMessage(client *Client, msgType string, payload interface{}) {
	select {
	case client.Send <- encodeMessage(msgType, payload):
	default:
		logger.Get().Warn("client send buffer full, dropping message",
			zap.String("type", msgType),
			zap.String("room_id", client.RoomID),
		)
	}
}

func encodeMessage(msgType string, payload interface{}) []byte {
	data, _ := json.Marshal(payload)
	msg, _ := json.Marshal(WSMessage{Type: msgType, Payload: data})
	return msg
}
