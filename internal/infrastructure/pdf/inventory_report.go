// Package pdf genera el reporte de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + generado por  │  Fecha de emisión          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Productos | Valor total | Stock bajo | Agotados      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Producto | Categoría | Cantidad | Precio | ... │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN POR CATEGORÍA                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/commodities-cms/internal/application/catalog"
	"github.com/jhoicas/commodities-cms/internal/application/ports"
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
	"github.com/jhoicas/commodities-cms/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 191, Green: 120, Blue: 0}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.InventoryReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa ports.InventoryReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// ContentType tipo MIME.
func (g *MarotoReportGenerator) ContentType() string { return "application/pdf" }

// Extension extensión de archivo.
func (g *MarotoReportGenerator) Extension() string { return "pdf" }

// GenerateInventoryReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryReport(ctx context.Context, r *ports.InventoryReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title, true).
		WithAuthor(r.GeneratedBy.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(r.Overview.Stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(productRows(r.Products)...)
	if len(r.Products) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin productos en el catálogo.", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(categoryRows(r.Overview.ByCategory)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *ports.InventoryReport) core.Row {
	by := r.GeneratedBy.Name
	if r.GeneratedBy.Role != "" {
		by += " (" + string(r.GeneratedBy.Role) + ")"
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(r.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Generado por: "+by, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Emitido", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{Size: 9, Align: align.Right, Top: 7}),
		),
	)
}

func kpiRow(s entity.Statistics) core.Row {
	kpi := func(label, value string, color *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: color, Top: 6}),
		)
	}
	return row.New(14).Add(
		kpi("Productos", fmt.Sprintf("%d (%d categorías)", s.TotalProducts, s.Categories), colorPrimary),
		kpi("Valor total", money.Format(s.TotalValue), colorPrimary),
		kpi("Stock bajo", fmt.Sprintf("%d", s.LowStock), colorWarn),
		kpi("Agotados", fmt.Sprintf("%d", s.OutOfStock), colorDanger),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("ID", 1, align.Center),
		h("Producto", 3, align.Left),
		h("Categoría", 2, align.Left),
		h("Cantidad", 2, align.Right),
		h("Precio", 1, align.Right),
		h("Valor", 2, align.Right),
		h("Estado", 1, align.Center),
	)
}

func productRows(products []entity.Product) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		rows = append(rows, row.New(6).Add(
			cell(fmt.Sprintf("%d", p.ID), 1, align.Center),
			cell(p.Name, 3, align.Left),
			cell(string(p.Category), 2, align.Left),
			cell(money.Quantity(p.Quantity)+" "+string(p.Unit), 2, align.Right),
			cell(money.Format(p.Price), 1, align.Right),
			cell(money.Format(p.Value()), 2, align.Right),
			col.New(1).Add(text.New(statusLabel(p.Status), props.Text{
				Size: 7, Align: align.Center, Top: 1, Style: fontstyle.Bold, Color: statusColor(p.Status),
			})),
		))
	}
	return rows
}

func categoryRows(slices []catalog.CategorySlice) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("RESUMEN POR CATEGORÍA", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, c := range slices {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(string(c.Category), props.Text{Size: 8, Left: 2})),
			col.New(3).Add(text.New(money.Quantity(c.Quantity), props.Text{Size: 8, Align: align.Right})),
			col.New(3).Add(text.New(money.Format(c.Value), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(s entity.StockStatus) string {
	switch s {
	case entity.StatusInStock:
		return "OK"
	case entity.StatusLowStock:
		return "BAJO"
	default:
		return "AGOTADO"
	}
}

func statusColor(s entity.StockStatus) *props.Color {
	switch s {
	case entity.StatusLowStock:
		return colorWarn
	case entity.StatusOutOfStock:
		return colorDanger
	default:
		return colorGray
	}
}
