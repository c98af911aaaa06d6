package http

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/commodities-cms/internal/application/dto"
	"github.com/jhoicas/commodities-cms/internal/infrastructure/ws"
)

// WSHandler feed de eventos del catálogo por WebSocket.
type WSHandler struct {
	ctx context.Context // vida del servidor; al cancelarse no se registran más clientes
	hub *ws.Hub
}

// NewWSHandler construye el handler.
func NewWSHandler(ctx context.Context, hub *ws.Hub) *WSHandler {
	return &WSHandler{ctx: ctx, hub: hub}
}

// RequireUpgrade rechaza con 426 las peticiones que no piden upgrade a WebSocket.
func (h *WSHandler) RequireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(dto.ErrorResponse{Code: "UPGRADE_REQUIRED", Message: "se esperaba un handshake WebSocket"})
	}
	return c.Next()
}

// Stream godoc
// @Summary      Feed de cambios del catálogo
// @Description  WebSocket. Cada mutación llega como {type:"catalog_update", action, product, user, message}.
// @Tags         realtime
// @Param        token  query  string  true  "JWT de la sesión"
// @Success      101
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /ws [get]
func (h *WSHandler) Stream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		h.hub.Register(h.ctx, conn)
		defer h.hub.Unregister(h.ctx, conn)
		// Los mensajes del cliente se ignoran; la lectura solo detecta el cierre.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
