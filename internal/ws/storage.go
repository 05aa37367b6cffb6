package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/windoze95/recipefinder-api/internal/logger"
	"github.com/windoze95/recipefinder-api/internal/models"
	"github.com/windoze95/recipefinder-api/internal/repository"
	"github.com/windoze95/recipefinder-api/internal/service"
	"github.com/windoze95/recipefinder-api/internal/util"
	"go.uber.org/zap"
)

// MsgTypeStorageChanged announces a write to the key-value store.
const MsgTypeStorageChanged = "storage_changed"

// StorageFeedHandler pushes key-value store changes to subscribed clients.
type StorageFeedHandler struct {
	Hub *Hub

	upgrader    *websocket.Upgrader
	unsubscribe func()
}

// NewStorageFeedHandler subscribes to store and relays each change to the
// room of its namespace.
func NewStorageFeedHandler(hub *Hub, store repository.KVStore, allowedOrigins []string) *StorageFeedHandler {
	h := &StorageFeedHandler{
		Hub:      hub,
		upgrader: newUpgrader(allowedOrigins),
	}
	h.unsubscribe = store.Subscribe(h.relay)
	return h
}

// Close stops relaying store changes.
func (h *StorageFeedHandler) Close() {
	if h.unsubscribe != nil {
		h.unsubscribe()
	}
}

// storageRoomID names the room that follows one namespace.
func storageRoomID(namespace string) string {
	return "storage:" + namespace
}

func (h *StorageFeedHandler) relay(change models.Change) {
	roomID := storageRoomID(change.Namespace)
	if h.Hub.RoomSize(roomID) == 0 {
		return
	}
	h.Hub.Publish(roomID, encodeMessage(MsgTypeStorageChanged, change))
}

// HandleStorageFeed handles GET /v1/ws/storage. Clients follow their own
// namespace, or the global one with ?scope=global.
func (h *StorageFeedHandler) HandleStorageFeed(c *gin.Context) {
	clientID, err := util.GetClientIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	namespace := clientID
	if c.Query("scope") == service.GlobalNamespace {
		namespace = service.GlobalNamespace
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.FromGin(c).Error("websocket upgrade failed", zap.String("client_id", clientID), zap.Error(err))
		return
	}

	client := &Client{
		Hub:      h.Hub,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		RoomID:   storageRoomID(namespace),
		ClientID: clientID,
	}
	h.Hub.Register <- client
	sendMessage(client, MsgTypeConnected, gin.H{"namespace": namespace})

	go client.WritePump()
	// The feed is one-way; inbound messages only keep the connection alive.
	go client.ReadPump(func(*Client, []byte) {})
}
