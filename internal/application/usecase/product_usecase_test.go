package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/commodities-cms/internal/application/catalog"
	"github.com/jhoicas/commodities-cms/internal/application/dto"
	"github.com/jhoicas/commodities-cms/internal/application/ports"
	"github.com/jhoicas/commodities-cms/internal/application/usecase"
	"github.com/jhoicas/commodities-cms/internal/domain"
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
	"github.com/jhoicas/commodities-cms/internal/infrastructure/memory"
	"github.com/jhoicas/commodities-cms/pkg/logger"
	"github.com/jhoicas/commodities-cms/pkg/validator"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var (
	manager     = entity.Identity{ID: 1, Email: "manager@demo.com", Role: entity.RoleManager, Name: "John Store Manager"}
	storekeeper = entity.Identity{ID: 2, Email: "storekeeper@demo.com", Role: entity.RoleStoreKeeper, Name: "Jane Store Keeper"}
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []ports.CatalogEvent
}

func (n *recordingNotifier) Publish(evt ports.CatalogEvent) {
	n.mu.Lock()
	n.events = append(n.events, evt)
	n.mu.Unlock()
}

type failingAudit struct{}

func (failingAudit) Record(context.Context, *entity.AuditEntry) error { return errors.New("db caída") }
func (failingAudit) ListRecent(context.Context, int) ([]*entity.AuditEntry, error) {
	return nil, errors.New("db caída")
}

type fixture struct {
	uc       *usecase.ProductUseCase
	audit    *memory.AuditLog
	notifier *recordingNotifier
}

func newFixture() fixture {
	audit := memory.NewAuditLog(0)
	notifier := &recordingNotifier{}
	engine := catalog.NewEngine(catalog.SeedProducts())
	return fixture{
		uc:       usecase.NewProductUseCase(engine, audit, notifier, logger.Nop()),
		audit:    audit,
		notifier: notifier,
	}
}

func ptr[T any](v T) *T { return &v }

func teak() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name: "Teak Wood", Category: "Minerals", Quantity: ptr(decimal.NewFromInt(50)), Unit: "tons", Price: ptr(decimal.NewFromInt(20)),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AuditaYNotifica(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	got, err := f.uc.Create(ctx, storekeeper, teak())
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
	assert.Equal(t, "low-stock", got.Status)
	assert.True(t, decimal.NewFromInt(1000).Equal(got.Value))

	entries, _ := f.audit.ListRecent(ctx, 0)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.AuditActionCreated, entries[0].Action)
	assert.Equal(t, "storekeeper@demo.com", entries[0].ActorEmail)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, "created", f.notifier.events[0].Action)
	assert.Equal(t, "Jane Store Keeper created Teak Wood", f.notifier.events[0].Message)
}

func TestCreate_UnidadPorDefectoKg(t *testing.T) {
	in := teak()
	in.Unit = ""
	got, err := newFixture().uc.Create(context.Background(), manager, in)
	require.NoError(t, err)
	assert.Equal(t, "kg", got.Unit)
}

func TestCreate_ValidacionNoTocaElMotor(t *testing.T) {
	f := newFixture()
	cases := map[string]func(*dto.CreateProductRequest){
		"nombre vacío":       func(in *dto.CreateProductRequest) { in.Name = "   " },
		"categoría inválida": func(in *dto.CreateProductRequest) { in.Category = "Wood" },
		"unidad inválida":    func(in *dto.CreateProductRequest) { in.Unit = "gallons" },
		"cantidad negativa":  func(in *dto.CreateProductRequest) { in.Quantity = ptr(decimal.NewFromInt(-1)) },
		"cantidad ausente":   func(in *dto.CreateProductRequest) { in.Quantity = nil },
		"precio cero":        func(in *dto.CreateProductRequest) { in.Price = ptr(decimal.Zero) },
		"precio ausente":     func(in *dto.CreateProductRequest) { in.Price = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := teak()
			mutate(&in)
			_, err := f.uc.Create(context.Background(), manager, in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			var verrs validator.Errors
			assert.True(t, errors.As(err, &verrs))
		})
	}
	list, _ := f.uc.List(dto.ProductFilter{})
	assert.Equal(t, 10, list.Total)
	assert.Empty(t, f.notifier.events)
}

func TestCreate_CantidadNullDesdeJSON(t *testing.T) {
	f := newFixture()
	for name, body := range map[string]string{
		"sin cantidad":  `{"name":"Teak","category":"Minerals","unit":"tons","price":20}`,
		"cantidad null": `{"name":"Teak","category":"Minerals","unit":"tons","quantity":null,"price":20}`,
	} {
		t.Run(name, func(t *testing.T) {
			var in dto.CreateProductRequest
			require.NoError(t, json.Unmarshal([]byte(body), &in))
			_, err := f.uc.Create(context.Background(), manager, in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			var verrs validator.Errors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, "quantity", verrs[0].FailedField)
			assert.Equal(t, "required", verrs[0].Tag)
		})
	}
	list, _ := f.uc.List(dto.ProductFilter{})
	assert.Equal(t, 10, list.Total)
}

func TestCreate_RolSinPermiso(t *testing.T) {
	_, err := newFixture().uc.Create(context.Background(), entity.Identity{ID: 9, Role: "viewer"}, teak())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_FalloDeAuditoriaNoFallaLaMutacion(t *testing.T) {
	uc := usecase.NewProductUseCase(catalog.NewEngine(catalog.SeedProducts()), failingAudit{}, nil, logger.Nop())
	got, err := uc.Create(context.Background(), manager, teak())
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_Parcial(t *testing.T) {
	f := newFixture()
	got, err := f.uc.Update(context.Background(), manager, 5, dto.UpdateProductRequest{Quantity: ptr(decimal.Zero)})
	require.NoError(t, err)
	assert.Equal(t, "Coffee Beans", got.Name)
	assert.Equal(t, "out-of-stock", got.Status)
	assert.Equal(t, int64(2), got.Version)
}

func TestUpdate_CampoVacioEsInvalido(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Update(context.Background(), manager, 1, dto.UpdateProductRequest{Category: ptr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.Update(context.Background(), manager, 1, dto.UpdateProductRequest{Name: ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_InexistenteYConflicto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.uc.Update(ctx, manager, 99, dto.UpdateProductRequest{Price: ptr(decimal.NewFromInt(1))})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Update(ctx, manager, 1, dto.UpdateProductRequest{Price: ptr(decimal.NewFromInt(3)), Version: ptr(int64(7))})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.notifier.events)
}

func TestDelete_Idempotente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	removed, err := f.uc.Delete(ctx, storekeeper, 3)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = f.uc.Delete(ctx, storekeeper, 3)
	require.NoError(t, err)
	assert.False(t, removed)

	entries, _ := f.audit.ListRecent(ctx, 0)
	assert.Len(t, entries, 1, "el segundo borrado no se audita")
	_, err = f.uc.GetByID(3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestList_Filtros(t *testing.T) {
	uc := newFixture().uc
	got, err := uc.List(dto.ProductFilter{Search: " oil ", Category: "all", Status: "all"})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Total)

	got, err = uc.List(dto.ProductFilter{Status: "out-of-stock"})
	require.NoError(t, err)
	require.Equal(t, 1, got.Total)
	assert.Equal(t, "Cocoa Powder", got.Items[0].Name)

	_, err = uc.List(dto.ProductFilter{Status: "discontinued"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.List(dto.ProductFilter{Category: "Wood"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOptionsYCategories(t *testing.T) {
	uc := newFixture().uc
	opts := uc.Options()
	assert.Len(t, opts.Categories, 8)
	assert.Equal(t, []string{"kg", "liters", "bales", "tons", "pieces"}, opts.Units)
	assert.Equal(t, "kg", opts.DefaultUnit)
	assert.Equal(t, []string{"in-stock", "low-stock", "out-of-stock"}, opts.Statuses)
	assert.Equal(t, []string{"Grains", "Seeds", "Oils", "Beverages", "Sweeteners", "Fibers"}, uc.Categories())
}
