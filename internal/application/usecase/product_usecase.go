package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/commodities-cms/internal/application/catalog"
	"github.com/jhoicas/commodities-cms/internal/application/dto"
	"github.com/jhoicas/commodities-cms/internal/application/ports"
	"github.com/jhoicas/commodities-cms/internal/domain"
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
	"github.com/jhoicas/commodities-cms/internal/domain/repository"
	"github.com/jhoicas/commodities-cms/pkg/logger"
	"github.com/jhoicas/commodities-cms/pkg/validator"
)

// ProductUseCase casos de uso del catálogo: valida la entrada, delega en el motor,
// registra la auditoría y publica el evento. El motor no valida; aquí se hace antes de llamarlo.
type ProductUseCase struct {
	engine   *catalog.Engine
	audit    repository.AuditRepository // nil = sin auditoría
	notifier ports.CatalogNotifier
	log      *logger.Logger
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso. audit puede ser nil; notifier nil usa NopNotifier.
func NewProductUseCase(engine *catalog.Engine, audit repository.AuditRepository, notifier ports.CatalogNotifier, log *logger.Logger) *ProductUseCase {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &ProductUseCase{engine: engine, audit: audit, notifier: notifier, log: log, now: time.Now}
}

// List devuelve los productos que pasan el filtro, en orden de inserción.
// Categoría o estado desconocidos devuelven domain.ErrInvalidInput.
func (uc *ProductUseCase) List(f dto.ProductFilter) (*dto.ProductListResponse, error) {
	q := catalog.Query{
		Search:   strings.TrimSpace(f.Search),
		Category: strings.TrimSpace(f.Category),
		Status:   strings.TrimSpace(f.Status),
	}
	if q.Category != "" && q.Category != catalog.All && !entity.Category(q.Category).Valid() {
		return nil, fmt.Errorf("categoría %q: %w", q.Category, domain.ErrInvalidInput)
	}
	if q.Status != "" && q.Status != catalog.All && !validStatus(q.Status) {
		return nil, fmt.Errorf("estado %q: %w", q.Status, domain.ErrInvalidInput)
	}
	products := uc.engine.Filter(q)
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// GetByID obtiene un producto por ID. domain.ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	p, ok := uc.engine.Get(id)
	if !ok {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	out := toProductResponse(p)
	return &out, nil
}

// Create valida y agrega un producto. Unit vacío usa kg.
func (uc *ProductUseCase) Create(ctx context.Context, actor entity.Identity, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !actor.Role.CanModifyCatalog() {
		return nil, domain.ErrForbidden
	}
	in.Name = strings.TrimSpace(in.Name)
	if errs := validator.ValidateStruct(in); errs != nil {
		return nil, errs
	}
	unit := entity.Unit(in.Unit)
	if unit == "" {
		unit = entity.UnitKg
	}
	p := uc.engine.Create(entity.ProductInput{
		Name:     in.Name,
		Category: entity.Category(in.Category),
		Quantity: *in.Quantity,
		Unit:     unit,
		Price:    *in.Price,
	})
	uc.afterMutation(ctx, actor, entity.AuditActionCreated, p)
	out := toProductResponse(p)
	return &out, nil
}

// Update aplica los campos presentes. domain.ErrNotFound si el id no existe;
// domain.ErrConflict si Version no coincide con la actual.
func (uc *ProductUseCase) Update(ctx context.Context, actor entity.Identity, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !actor.Role.CanModifyCatalog() {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	if errs := validator.ValidateStruct(in); errs != nil {
		return nil, errs
	}
	fields := entity.ProductUpdate{
		Name:            in.Name,
		Quantity:        in.Quantity,
		Price:           in.Price,
		ExpectedVersion: in.Version,
	}
	if in.Category != nil {
		c := entity.Category(*in.Category)
		fields.Category = &c
	}
	if in.Unit != nil {
		u := entity.Unit(*in.Unit)
		fields.Unit = &u
	}
	p, err := uc.engine.Update(id, fields)
	if err != nil {
		return nil, err
	}
	uc.afterMutation(ctx, actor, entity.AuditActionUpdated, p)
	out := toProductResponse(p)
	return &out, nil
}

// Delete borra el producto si existe. Borrar un id inexistente no es error: devuelve false.
func (uc *ProductUseCase) Delete(ctx context.Context, actor entity.Identity, id int64) (bool, error) {
	if !actor.Role.CanModifyCatalog() {
		return false, domain.ErrForbidden
	}
	p, ok := uc.engine.Delete(id)
	if !ok {
		return false, nil
	}
	uc.afterMutation(ctx, actor, entity.AuditActionDeleted, p)
	return true, nil
}

// Categories categorías presentes en el catálogo, en orden de primera aparición.
func (uc *ProductUseCase) Categories() []string {
	cats := uc.engine.Categories()
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, string(c))
	}
	return out
}

// Options valores cerrados del formulario de producto.
func (uc *ProductUseCase) Options() dto.CatalogOptionsResponse {
	out := dto.CatalogOptionsResponse{DefaultUnit: string(entity.UnitKg)}
	for _, c := range entity.Categories {
		out.Categories = append(out.Categories, string(c))
	}
	for _, u := range entity.Units {
		out.Units = append(out.Units, string(u))
	}
	for _, s := range entity.StockStatuses {
		out.Statuses = append(out.Statuses, string(s))
	}
	return out
}

// afterMutation la mutación ya está aplicada: un fallo de auditoría se registra pero no se devuelve.
func (uc *ProductUseCase) afterMutation(ctx context.Context, actor entity.Identity, action string, p entity.Product) {
	now := uc.now()
	uc.log.Info().
		Str("action", action).
		Int64("product_id", p.ID).
		Str("status", string(p.Status)).
		Int64("actor_id", actor.ID).
		Msg("catálogo modificado")

	if uc.audit != nil {
		entry := &entity.AuditEntry{
			ProductID:   p.ID,
			ProductName: p.Name,
			Action:      action,
			ActorID:     actor.ID,
			ActorEmail:  actor.Email,
			Quantity:    p.Quantity,
			Price:       p.Price,
			Status:      p.Status,
			OccurredAt:  now,
		}
		if err := uc.audit.Record(ctx, entry); err != nil {
			uc.log.Error().Err(err).Int64("product_id", p.ID).Msg("no se pudo registrar la auditoría")
		}
	}

	uc.notifier.Publish(ports.CatalogEvent{
		Action:     action,
		Product:    p,
		Actor:      actor,
		Message:    fmt.Sprintf("%s %s %s", actor.Name, action, p.Name),
		OccurredAt: now,
	})
}

func validStatus(s string) bool {
	for _, st := range entity.StockStatuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

func toProductResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  string(p.Category),
		Quantity:  p.Quantity,
		Unit:      string(p.Unit),
		Price:     p.Price,
		Value:     p.Value(),
		Status:    string(p.Status),
		Version:   p.Version,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
