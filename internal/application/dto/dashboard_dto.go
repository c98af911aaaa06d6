package dto

import "github.com/shopspring/decimal"

// StatsResponse GET /api/dashboard/stats.
type StatsResponse struct {
	TotalProducts int             `json:"total_products"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStock      int             `json:"low_stock"`
	OutOfStock    int             `json:"out_of_stock"`
	Categories    int             `json:"categories"`
}

// CategoryPointDTO barra del gráfico por categoría.
type CategoryPointDTO struct {
	Category string          `json:"category"`
	Quantity decimal.Decimal `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// StatusPointDTO porción del gráfico de torta por estado.
type StatusPointDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// TopProductDTO producto del widget "top por valor".
type TopProductDTO struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Value    decimal.Decimal `json:"value"`
	Status   string          `json:"status"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Las series se calculan sobre la misma foto del catálogo que las estadísticas.
type DashboardSummaryDTO struct {
	Stats       StatsResponse      `json:"stats"`
	ByCategory  []CategoryPointDTO `json:"by_category"`
	ByStatus    []StatusPointDTO   `json:"by_status"`
	TopProducts []TopProductDTO    `json:"top_products"`
}
