package ports

import (
	"context"
	"time"

	"github.com/jhoicas/commodities-cms/internal/application/catalog"
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
)

// InventoryReport foto del catálogo a renderizar.
type InventoryReport struct {
	Title       string
	GeneratedAt time.Time
	GeneratedBy entity.Identity
	Products    []entity.Product
	Overview    catalog.Overview
}

// InventoryReportGenerator puerto de salida para renderizar el reporte de inventario.
// Cada adaptador (PDF, XLSX) devuelve los bytes del documento.
type InventoryReportGenerator interface {
	GenerateInventoryReport(ctx context.Context, report *InventoryReport) ([]byte, error)
	// ContentType tipo MIME del documento generado.
	ContentType() string
	// Extension extensión de archivo sin punto.
	Extension() string
}
