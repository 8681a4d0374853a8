package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"cardtime.app/cardtime/infrastructure/push"
	"cardtime.app/cardtime/web/middlewares"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The session cookie already gates this endpoint.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SocketHandler upgrades the connection and parks it in the hub. Clients
// only listen; the read loop exists to notice the close.
func SocketHandler(hub *push.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			zap.L().Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		userID := c.GetString(middlewares.ContextUserKey)
		id, err := hub.Register(userID, c.ClientIP(), conn)
		if err != nil {
			zap.L().Error("failed to register connection", zap.Error(err))
			conn.Close()
			return
		}
		defer hub.Unregister(id)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
