package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/playcue/billiards/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// WSMessage is the envelope for client-to-server frames.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MouseEventData carries a mouse press or release in table-space
// coordinates (the client converts from pixels).
type MouseEventData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Client represents one connected viewer.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of connected clients and routes their input into
// the session. Scene output reaches clients through the Broadcaster, which
// fans out via the hub.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	session *game.Session
	// onRegister replays the current scene to a newly connected client.
	// Set by the Broadcaster before Run is started.
	onRegister func(*Client)
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// SetSession wires the session whose input handlers client messages drive.
func (h *Hub) SetSession(s *game.Session) {
	h.session = s
}

// Run processes client registration until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("[WS] client connected (%d total)", h.clientCount())
			if h.onRegister != nil {
				h.onRegister(client)
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				select {
				case <-client.send:
				default:
					close(client.send)
				}
			}
			h.mu.Unlock()
			log.Printf("[WS] client disconnected (%d total)", h.clientCount())
		}
	}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a message to every connected client.
func (h *Hub) Broadcast(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Client's buffer is full
			log.Printf("[WS] send buffer full, dropping frame")
		}
	}
}

// sendJSON sends a message to one client, dropping it if the buffer is full.
func (c *Client) sendJSON(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] error marshaling message: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] send buffer full, dropping frame")
	}
}

// sendError sends an error message to the client.
func (c *Client) sendError(message string) {
	c.sendJSON(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}

// HandleWebSocket upgrades the connection and attaches the client to the hub.
func HandleWebSocket(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] upgrade error: %v", err)
			return
		}

		client := &Client{
			hub:  hub,
			conn: conn,
			send: make(chan []byte, 256),
		}

		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}

// writePump writes messages to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Channel closed — connection is being cleaned up.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] write error: %v", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] ping error: %v", err)
				return
			}
		}
	}
}

// readPump reads input messages until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(65536)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] read error (unexpected): %v", err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		c.handleMessage(msg)
	}
}

// handleMessage routes an input frame into the session.
func (c *Client) handleMessage(msg WSMessage) {
	if c.hub.session == nil {
		c.sendError("no session")
		return
	}

	switch msg.Type {
	case "mouse_down":
		var data MouseEventData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid mouse data")
			return
		}
		c.hub.session.MouseButtonPressed(data.X, data.Y)

	case "mouse_up":
		var data MouseEventData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid mouse data")
			return
		}
		if err := c.hub.session.MouseButtonReleased(data.X, data.Y); err != nil {
			c.sendError(err.Error())
		}

	case "get_state":
		snap := c.hub.session.Snapshot()
		c.sendJSON(map[string]interface{}{
			"type":  "table_state",
			"state": snap,
		})

	default:
		c.sendError("unknown message type")
	}
}
