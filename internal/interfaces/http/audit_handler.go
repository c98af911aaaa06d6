package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/commodities-cms/internal/application/usecase"
)

// AuditHandler historial de mutaciones del catálogo.
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Últimas mutaciones del catálogo
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de entradas"  default(50)
// @Success      200    {array}   dto.AuditEntryResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.Recent(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
