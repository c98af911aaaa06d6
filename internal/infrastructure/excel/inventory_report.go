// Package excel exporta el reporte de inventario como libro XLSX.
package excel

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/commodities-cms/internal/application/ports"
)

const (
	sheetProducts   = "Products"
	sheetCategories = "Categories"
	sheetSummary    = "Summary"
)

var productHeaders = []string{"ID", "Name", "Category", "Quantity", "Unit", "Price", "Value", "Status", "Version", "Updated At"}

var _ ports.InventoryReportGenerator = (*ReportGenerator)(nil)

// ReportGenerator implementa ports.InventoryReportGenerator con excelize.
// Cantidades y precios se escriben como números para que la planilla pueda operar con ellos.
type ReportGenerator struct{}

// NewReportGenerator construye el generador.
func NewReportGenerator() *ReportGenerator { return &ReportGenerator{} }

// ContentType tipo MIME.
func (g *ReportGenerator) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension extensión de archivo.
func (g *ReportGenerator) Extension() string { return "xlsx" }

// GenerateInventoryReport escribe tres hojas: productos, categorías y resumen.
func (g *ReportGenerator) GenerateInventoryReport(ctx context.Context, r *ports.InventoryReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetProducts); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	for _, name := range []string{sheetCategories, sheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("excel: crear hoja %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	if err := writeProducts(f, r, bold); err != nil {
		return nil, err
	}
	if err := writeCategories(f, r, bold); err != nil {
		return nil, err
	}
	if err := writeSummary(f, r, bold); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeProducts(f *excelize.File, r *ports.InventoryReport, header int) error {
	if err := f.SetSheetRow(sheetProducts, "A1", &productHeaders); err != nil {
		return fmt.Errorf("excel: cabecera: %w", err)
	}
	for i, p := range r.Products {
		qty, _ := p.Quantity.Float64()
		price, _ := p.Price.Float64()
		value, _ := p.Value().Float64()
		cells := []interface{}{
			p.ID, p.Name, string(p.Category), qty, string(p.Unit), price, value,
			string(p.Status), p.Version, p.UpdatedAt,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetProducts, cell, &cells); err != nil {
			return fmt.Errorf("excel: fila %d: %w", p.ID, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(productHeaders), 1)
	if err := f.SetCellStyle(sheetProducts, "A1", last, header); err != nil {
		return fmt.Errorf("excel: estilo cabecera: %w", err)
	}
	return f.SetPanes(sheetProducts, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func writeCategories(f *excelize.File, r *ports.InventoryReport, header int) error {
	if err := f.SetSheetRow(sheetCategories, "A1", &[]string{"Category", "Quantity", "Value"}); err != nil {
		return fmt.Errorf("excel: cabecera categorías: %w", err)
	}
	for i, c := range r.Overview.ByCategory {
		qty, _ := c.Quantity.Float64()
		value, _ := c.Value.Float64()
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetCategories, cell, &[]interface{}{string(c.Category), qty, value}); err != nil {
			return fmt.Errorf("excel: categoría %s: %w", c.Category, err)
		}
	}
	return f.SetCellStyle(sheetCategories, "A1", "C1", header)
}

func writeSummary(f *excelize.File, r *ports.InventoryReport, header int) error {
	s := r.Overview.Stats
	total, _ := s.TotalValue.Float64()
	rows := [][]interface{}{
		{r.Title},
		{"Generated At", r.GeneratedAt},
		{"Generated By", r.GeneratedBy.Email},
		{"Total Products", s.TotalProducts},
		{"Total Value", total},
		{"Low Stock", s.LowStock},
		{"Out of Stock", s.OutOfStock},
		{"Categories", s.Categories},
	}
	for i, values := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetSummary, cell, &values); err != nil {
			return fmt.Errorf("excel: resumen: %w", err)
		}
	}
	return f.SetCellStyle(sheetSummary, "A1", "A8", header)
}
