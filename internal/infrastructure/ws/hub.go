// Package ws difunde los eventos del catálogo a los clientes WebSocket conectados.
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/commodities-cms/internal/application/ports"
	"github.com/jhoicas/commodities-cms/pkg/logger"
)

// EventType tipo de mensaje enviado por el hub.
const EventType = "catalog_update"

const (
	// DefaultBuffer mensajes pendientes antes de empezar a descartar.
	DefaultBuffer = 64
	// ClientBuffer mensajes en cola por cliente; si se llena el cliente se desconecta.
	ClientBuffer = 16
	// WriteWait tiempo máximo de una escritura a un cliente.
	WriteWait = 10 * time.Second
)

// Client conexión a la que el hub escribe. *websocket.Conn la implementa.
type Client interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// peer cola de salida de un cliente; la vacía su propia goroutine.
type peer struct {
	client Client
	send   chan []byte
}

// Payload cuerpo JSON de cada evento.
type Payload struct {
	Type    string         `json:"type"`
	Action  string         `json:"action"`
	Product ProductPayload `json:"product"`
	User    UserPayload    `json:"user"`
	Message string         `json:"message"`
}

// ProductPayload foto del producto tras la mutación.
type ProductPayload struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
	Status   string          `json:"status"`
}

// UserPayload actor de la mutación.
type UserPayload struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

var _ ports.CatalogNotifier = (*Hub)(nil)

// Hub registro de clientes y difusión. Run es el único que modifica el registro; cada cliente
// tiene su goroutine de escritura, así un cliente lento no frena a los demás.
type Hub struct {
	clients    map[Client]*peer
	register   chan Client
	unregister chan Client
	broadcast  chan []byte
	log        *logger.Logger

	mu    sync.RWMutex
	count int
}

// NewHub buffer <= 0 usa DefaultBuffer.
func NewHub(log *logger.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		clients:    make(map[Client]*peer),
		register:   make(chan Client),
		unregister: make(chan Client),
		broadcast:  make(chan []byte, buffer),
		log:        log,
	}
}

// Run atiende registros y difusiones hasta que ctx se cancele; al salir cierra todos los clientes.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			h.setCount(0)
			return

		case c := <-h.register:
			if _, ok := h.clients[c]; ok {
				continue
			}
			p := &peer{client: c, send: make(chan []byte, ClientBuffer)}
			h.clients[c] = p
			go h.writePump(ctx, p)
			h.setCount(len(h.clients))
			h.log.Debug().Int("clients", len(h.clients)).Msg("ws: cliente conectado")

		case c := <-h.unregister:
			h.drop(c)
			h.setCount(len(h.clients))

		case msg := <-h.broadcast:
			for c, p := range h.clients {
				select {
				case p.send <- msg:
				default:
					h.log.Warn().Msg("ws: cliente lento, desconectado")
					h.drop(c)
				}
			}
			h.setCount(len(h.clients))
		}
	}
}

// drop quita el cliente, cierra su cola y la conexión. Solo lo llama Run.
func (h *Hub) drop(c Client) {
	p, ok := h.clients[c]
	if !ok {
		return
	}
	delete(h.clients, c)
	close(p.send)
	_ = c.Close()
}

// writePump escribe la cola del cliente con un plazo por mensaje. Ante un error pide a Run
// que lo quite; la cola se cierra en drop.
func (h *Hub) writePump(ctx context.Context, p *peer) {
	for msg := range p.send {
		_ = p.client.SetWriteDeadline(time.Now().Add(WriteWait))
		if err := p.client.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Debug().Err(err).Msg("ws: cliente descartado")
			h.Unregister(ctx, p.client)
			return
		}
	}
}

// Register agrega un cliente. Bloquea hasta que Run lo atienda o ctx se cancele.
func (h *Hub) Register(ctx context.Context, c Client) {
	select {
	case h.register <- c:
	case <-ctx.Done():
	}
}

// Unregister quita y cierra un cliente.
func (h *Hub) Unregister(ctx context.Context, c Client) {
	select {
	case h.unregister <- c:
	case <-ctx.Done():
	}
}

// Clients número de clientes conectados.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Publish serializa el evento y lo encola sin bloquear; si la cola está llena se descarta.
func (h *Hub) Publish(evt ports.CatalogEvent) {
	msg, err := json.Marshal(toPayload(evt))
	if err != nil {
		h.log.Error().Err(err).Msg("ws: serializar evento")
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn().Str("action", evt.Action).Int64("product_id", evt.Product.ID).Msg("ws: cola llena, evento descartado")
	}
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
}

func toPayload(evt ports.CatalogEvent) Payload {
	p := evt.Product
	return Payload{
		Type:   EventType,
		Action: evt.Action,
		Product: ProductPayload{
			ID: p.ID, Name: p.Name, Category: string(p.Category),
			Quantity: p.Quantity, Unit: string(p.Unit), Price: p.Price, Status: string(p.Status),
		},
		User:    UserPayload{ID: evt.Actor.ID, Name: evt.Actor.Name, Email: evt.Actor.Email},
		Message: evt.Message,
	}
}
