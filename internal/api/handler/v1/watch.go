package v1

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/dstepanov/warehouse-api/internal/api/handler/v1/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// StockFeed pushes every warehouse stock change to subscribed websocket
// clients. The feed is read-only for clients; a slow client gets dropped
// rather than blocking the hub.
type StockFeed struct {
	clients    map[*feedClient]bool
	broadcast  chan []byte
	register   chan *feedClient
	unregister chan *feedClient
}

func NewStockFeed() *StockFeed {
	return &StockFeed{
		clients:    make(map[*feedClient]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
	}
}

func (f *StockFeed) Run() {
	for {
		select {
		case client := <-f.register:
			f.clients[client] = true
		case client := <-f.unregister:
			if _, ok := f.clients[client]; ok {
				delete(f.clients, client)
				close(client.send)
			}
		case message := <-f.broadcast:
			for client := range f.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(f.clients, client)
				}
			}
		}
	}
}

// Publish broadcasts an updated warehouse entry to all subscribers.
func (f *StockFeed) Publish(warehouse response.Warehouse) {
	message, err := json.Marshal(warehouse)
	if err != nil {
		zap.L().Error("failed to marshal stock update", zap.Error(err))
		return
	}

	f.broadcast <- message
}

// HandleWatchWarehouses godoc
// @Summary      Subscribe to stock updates
// @Description  Upgrades to a WebSocket connection streaming every warehouse stock change as JSON.
// @Tags         warehouses
// @Router       /warehouses/watch [get]
func (f *StockFeed) HandleWatchWarehouses(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Error("failed to upgrade websocket connection", zap.Error(err))
		return
	}

	client := &feedClient{
		conn: conn,
		send: make(chan []byte, 256),
	}
	f.register <- client

	go client.writePump()
	go client.readPump(f)
}

func (c *feedClient) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump only watches for the client closing the connection.
func (c *feedClient) readPump(f *StockFeed) {
	defer func() {
		f.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
