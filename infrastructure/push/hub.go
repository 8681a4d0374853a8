// Package push delivers refresh notifications to connected browsers over
// websockets. Connections are mirrored into the connections table so
// other processes can see who is online.
package push

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cardtime.app/cardtime/core/models"
	"cardtime.app/cardtime/utils"
)

// Message is the envelope pushed to clients. Method names a client-side
// handler, Args carries its parameters.
type Message struct {
	Method string   `json:"method"`
	Args   []string `json:"args"`
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex // websocket writes are not concurrency-safe
}

func (c *client) send(msg *Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

type Hub struct {
	db      *gorm.DB
	connMap sync.Map // connection id -> *client
}

func NewHub(db *gorm.DB) *Hub {
	return &Hub{db: db}
}

// Register stores the connection and records it in the database. The
// returned id identifies the connection until Unregister.
func (h *Hub) Register(userID, ip string, conn *websocket.Conn) (string, error) {
	id := utils.NewID()

	record := &models.Connection{
		ID:        id,
		UserID:    userID,
		IP:        ip,
		ConnectDT: utils.NowTimestamp(),
	}
	if err := h.db.Create(record).Error; err != nil {
		return "", err
	}

	h.connMap.Store(id, &client{conn: conn})
	return id, nil
}

func (h *Hub) Unregister(id string) {
	if v, ok := h.connMap.LoadAndDelete(id); ok {
		v.(*client).conn.Close()
	}
	if err := h.db.Delete(&models.Connection{}, "id = ?", id).Error; err != nil {
		zap.L().Warn("failed to delete connection record",
			zap.String("connectionId", id), zap.Error(err))
	}
}

// Broadcast sends to every connection. Delivery is best effort: a failed
// write drops that connection and the loop continues.
func (h *Hub) Broadcast(msg *Message) {
	h.connMap.Range(func(key, value any) bool {
		id := key.(string)
		if err := value.(*client).send(msg); err != nil {
			zap.L().Warn("dropping unreachable connection",
				zap.String("connectionId", id), zap.Error(err))
			h.Unregister(id)
		}
		return true
	})
}

// SendTo sends to the named connections only, same best-effort rules.
func (h *Hub) SendTo(ids []string, msg *Message) {
	for _, id := range ids {
		v, ok := h.connMap.Load(id)
		if !ok {
			continue
		}
		if err := v.(*client).send(msg); err != nil {
			zap.L().Warn("dropping unreachable connection",
				zap.String("connectionId", id), zap.Error(err))
			h.Unregister(id)
		}
	}
}

// SendToUser resolves the user's live connections from the registry and
// sends to each of them.
func (h *Hub) SendToUser(userID string, msg *Message) error {
	var ids []string
	err := h.db.Model(&models.Connection{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	h.SendTo(ids, msg)
	return nil
}

// RefreshDatatable tells every client to reload the named table.
func (h *Hub) RefreshDatatable(table string) {
	h.Broadcast(&Message{Method: "RefreshDatatable", Args: []string{table}})
}
