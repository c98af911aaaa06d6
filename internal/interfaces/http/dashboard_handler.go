package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/commodities-cms/internal/application/analytics"
	"github.com/jhoicas/commodities-cms/internal/application/catalog"
)

// DashboardHandler maneja los endpoints del dashboard (solo manager).
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats godoc
// @Summary      Estadísticas del catálogo
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	return c.JSON(h.uc.GetStats())
}

// GetSummary godoc
// @Summary      Estadísticas y series de los gráficos
// @Description  Cantidad y valor por categoría, productos por estado y top por valor.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        top  query  int  false  "Tamaño del top por valor"  default(5)
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	top := c.QueryInt("top", catalog.DefaultTopProducts)
	if top > 50 {
		top = 50
	}
	return c.JSON(h.uc.GetSummary(top))
}
