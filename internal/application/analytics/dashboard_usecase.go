// Package analytics contiene los casos de uso del dashboard: estadísticas del catálogo
// y las series de los gráficos.
package analytics

import (
	"github.com/jhoicas/commodities-cms/internal/application/catalog"
	"github.com/jhoicas/commodities-cms/internal/application/dto"
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
)

// DashboardUseCase lee los agregados del motor. No guarda nada: todo se recalcula en cada llamada.
type DashboardUseCase struct {
	engine *catalog.Engine
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(engine *catalog.Engine) *DashboardUseCase {
	return &DashboardUseCase{engine: engine}
}

// GetStats estadísticas del catálogo vivo.
func (uc *DashboardUseCase) GetStats() dto.StatsResponse {
	return toStatsResponse(uc.engine.Stats())
}

// GetSummary estadísticas más las tres series del dashboard. top <= 0 usa catalog.DefaultTopProducts.
func (uc *DashboardUseCase) GetSummary(top int) dto.DashboardSummaryDTO {
	ov := uc.engine.Overview(top)

	out := dto.DashboardSummaryDTO{
		Stats:       toStatsResponse(ov.Stats),
		ByCategory:  make([]dto.CategoryPointDTO, 0, len(ov.ByCategory)),
		ByStatus:    make([]dto.StatusPointDTO, 0, len(ov.ByStatus)),
		TopProducts: make([]dto.TopProductDTO, 0, len(ov.Top)),
	}
	for _, c := range ov.ByCategory {
		out.ByCategory = append(out.ByCategory, dto.CategoryPointDTO{
			Category: string(c.Category), Quantity: c.Quantity, Value: c.Value,
		})
	}
	for _, s := range ov.ByStatus {
		out.ByStatus = append(out.ByStatus, dto.StatusPointDTO{Status: string(s.Status), Count: s.Count})
	}
	for _, p := range ov.Top {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ID: p.ID, Name: p.Name, Category: string(p.Category), Value: p.Value(), Status: string(p.Status),
		})
	}
	return out
}

func toStatsResponse(s entity.Statistics) dto.StatsResponse {
	return dto.StatsResponse{
		TotalProducts: s.TotalProducts,
		TotalValue:    s.TotalValue,
		LowStock:      s.LowStock,
		OutOfStock:    s.OutOfStock,
		Categories:    s.Categories,
	}
}
