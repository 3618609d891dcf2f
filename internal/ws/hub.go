package ws

import (
	"sync"

	"go-icarstok-ws/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Client binds a websocket connection to the user it authenticated as.
type Client struct {
	Conn    *websocket.Conn
	OwnerID uuid.UUID
}

// Message is a payload addressed to one owner's connections. Live pushes
// follow the same partition rule as the data: no cross-user delivery.
type Message struct {
	OwnerID uuid.UUID
	Data    []byte
}

type Hub struct {
	Clients    map[*websocket.Conn]uuid.UUID
	Register   chan *Client
	Unregister chan *websocket.Conn
	Broadcast  chan Message
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]uuid.UUID),
		Register:   make(chan *Client),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan Message),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mutex.Lock()
			h.Clients[client.Conn] = client.OwnerID
			h.mutex.Unlock()
			logger.WithModule("ws").WithField("owner_id", client.OwnerID).Info("ws client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn, ownerID := range h.Clients {
				if ownerID != message.OwnerID {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, message.Data); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
