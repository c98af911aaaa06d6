package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/commodities-cms/internal/application/catalog"
	"github.com/jhoicas/commodities-cms/internal/application/ports"
	"github.com/jhoicas/commodities-cms/internal/domain"
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
	"github.com/jhoicas/commodities-cms/pkg/logger"
)

// ReportFile documento listo para descargar.
type ReportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReportUseCase genera el reporte de inventario sobre una foto del catálogo.
type ReportUseCase struct {
	engine *catalog.Engine
	pdf    ports.InventoryReportGenerator
	xlsx   ports.InventoryReportGenerator
	log    *logger.Logger
	now    func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(engine *catalog.Engine, pdf, xlsx ports.InventoryReportGenerator, log *logger.Logger) *ReportUseCase {
	return &ReportUseCase{engine: engine, pdf: pdf, xlsx: xlsx, log: log, now: time.Now}
}

// InventoryPDF reporte en PDF. Solo para managers.
func (uc *ReportUseCase) InventoryPDF(ctx context.Context, actor entity.Identity) (*ReportFile, error) {
	return uc.generate(ctx, actor, uc.pdf)
}

// InventoryXLSX reporte en XLSX. Solo para managers.
func (uc *ReportUseCase) InventoryXLSX(ctx context.Context, actor entity.Identity) (*ReportFile, error) {
	return uc.generate(ctx, actor, uc.xlsx)
}

func (uc *ReportUseCase) generate(ctx context.Context, actor entity.Identity, gen ports.InventoryReportGenerator) (*ReportFile, error) {
	if !actor.Role.CanViewDashboard() {
		return nil, domain.ErrForbidden
	}
	now := uc.now()
	report := &ports.InventoryReport{
		Title:       "Commodities Inventory Report",
		GeneratedAt: now,
		GeneratedBy: actor,
		Products:    uc.engine.List(),
		Overview:    uc.engine.Overview(catalog.DefaultTopProducts),
	}
	data, err := gen.GenerateInventoryReport(ctx, report)
	if err != nil {
		uc.log.Error().Err(err).Str("format", gen.Extension()).Msg("reporte de inventario")
		return nil, fmt.Errorf("generar reporte %s: %w", gen.Extension(), err)
	}
	return &ReportFile{
		Name:        fmt.Sprintf("inventory-%s.%s", now.Format("20060102-1504"), gen.Extension()),
		ContentType: gen.ContentType(),
		Data:        data,
	}, nil
}
