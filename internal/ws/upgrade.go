package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"orderhub/config"
	"orderhub/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ResolveTenant maps an authenticated user to a tenant path; the handler
// package supplies it so this package stays free of repository imports.
type ResolveTenant func(userID uint) (string, error)

// Upgrade authenticates via the token query parameter, subscribes the
// connection to its tenant stream and sends a snapshot marker first so the
// client knows to load current state before applying increments.
func Upgrade(cfg *config.JWTConfig, hub *Hub, resolve ResolveTenant) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		token := c.Query("token")
		if token == "" {
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"token required"}`))
			return
		}
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
			return
		}
		tenantPath, err := resolve(claims.UserID)
		if err != nil || tenantPath == "" {
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"no tenant"}`))
			return
		}
		client := &Client{
			UserID:     claims.UserID,
			TenantPath: tenantPath,
			Send:       make(chan []byte, 256),
		}
		hub.Register(client)
		defer client.Close()

		snapshot, _ := json.Marshal(Event{Type: "snapshot", At: time.Now()})
		client.Send <- snapshot

		go writePump(client, conn)
		readPump(conn)
	}
}

func writePump(c *Client, conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func readPump(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
