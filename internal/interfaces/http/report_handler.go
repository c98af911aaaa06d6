package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/commodities-cms/internal/application/usecase"
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
)

// ReportHandler descargas del reporte de inventario.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// InventoryPDF godoc
// @Summary      Reporte de inventario (PDF)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  file
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory.pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	return h.send(c, h.uc.InventoryPDF)
}

// InventoryXLSX godoc
// @Summary      Reporte de inventario (Excel)
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory.xlsx [get]
func (h *ReportHandler) InventoryXLSX(c *fiber.Ctx) error {
	return h.send(c, h.uc.InventoryXLSX)
}

func (h *ReportHandler) send(c *fiber.Ctx, gen func(context.Context, entity.Identity) (*usecase.ReportFile, error)) error {
	f, err := gen(c.UserContext(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(f.Name)
	c.Set(fiber.HeaderContentType, f.ContentType)
	return c.Send(f.Data)
}
