package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"gamestore_bff/internal/cart"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsHandler empuja los cambios del carrito al cliente móvil (la app
// decide cómo mostrarlos: toast, vibración, badge). Cada mutación publica
// en el canal Redis del usuario y acá se reenvía por websocket.
type EventsHandler struct {
	redis *redis.Client
	carts *cart.Store
}

func NewEventsHandler(client *redis.Client, carts *cart.Store) *EventsHandler {
	return &EventsHandler{redis: client, carts: carts}
}

// GET /api/ws/cart
func (h *EventsHandler) CartEvents(c *gin.Context) {
	email := c.GetString("email")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("error en upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	pubsub := h.redis.Subscribe(ctx, "cart:"+email)
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(gin.H{"type": "connected"})

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			ledger, err := h.carts.Load(ctx, email)
			if err != nil {
				log.Printf("websocket: error leyendo el carrito de %s: %v", email, err)
				continue
			}
			event := gin.H{
				"type":     "cart_" + msg.Payload,
				"items":    ledger.Lines(),
				"subtotal": ledger.Subtotal(),
				"iva":      ledger.IVA(),
				"total":    ledger.Total(),
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}

		case <-time.After(30 * time.Second):
			// Ping para mantener viva la conexión.
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}
