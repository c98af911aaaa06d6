package catalog_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/commodities-cms/internal/application/catalog"
	"github.com/jhoicas/commodities-cms/internal/domain"
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

func newSeededEngine() *catalog.Engine {
	return catalog.NewEngine(catalog.SeedProducts(), catalog.WithClock(func() time.Time { return fixedNow }))
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func teakWood() entity.ProductInput {
	return entity.ProductInput{
		Name:     "Teak Wood",
		Category: entity.CategoryMinerals,
		Quantity: dec("50"),
		Unit:     entity.UnitTons,
		Price:    dec("20"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Semilla
// ──────────────────────────────────────────────────────────────────────────────

func TestNewEngine_SemillaRecalculaEstado(t *testing.T) {
	e := newSeededEngine()
	list := e.List()
	require.Len(t, list, 10)

	byName := make(map[string]entity.Product, len(list))
	for _, p := range list {
		byName[p.Name] = p
	}
	// La semilla original marcaba Corn Seeds como low-stock con 1500 unidades;
	// el motor no confía en ese valor.
	assert.Equal(t, entity.StatusInStock, byName["Corn Seeds"].Status)
	assert.Equal(t, entity.StatusLowStock, byName["Coffee Beans"].Status)
	assert.Equal(t, entity.StatusLowStock, byName["Cotton Bales"].Status)
	assert.Equal(t, entity.StatusOutOfStock, byName["Cocoa Powder"].Status)
	assert.Equal(t, int64(1), byName["Barley"].Version)
}

func TestStats_Semilla(t *testing.T) {
	s := newSeededEngine().Stats()
	assert.Equal(t, 10, s.TotalProducts)
	assert.True(t, dec("69520").Equal(s.TotalValue), "total value = %s", s.TotalValue)
	assert.Equal(t, 2, s.LowStock)
	assert.Equal(t, 1, s.OutOfStock)
	assert.Equal(t, 6, s.Categories)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / Get
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AsignaIDYEstado(t *testing.T) {
	e := newSeededEngine()
	p := e.Create(teakWood())

	assert.Equal(t, int64(11), p.ID)
	assert.Equal(t, entity.StatusLowStock, p.Status)
	assert.Equal(t, int64(1), p.Version)
	assert.Equal(t, fixedNow, p.CreatedAt)

	got, ok := e.Get(11)
	require.True(t, ok)
	assert.Equal(t, p, got)
	assert.Equal(t, "Teak Wood", got.Name)
	assert.Equal(t, entity.CategoryMinerals, got.Category)
	assert.True(t, dec("50").Equal(got.Quantity))
	assert.Equal(t, entity.UnitTons, got.Unit)
	assert.True(t, dec("20").Equal(got.Price))

	list := e.List()
	assert.Equal(t, int64(11), list[len(list)-1].ID, "el alta se agrega al final")
}

func TestGet_Inexistente(t *testing.T) {
	_, ok := newSeededEngine().Get(999)
	assert.False(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_CantidadCeroAgota(t *testing.T) {
	e := newSeededEngine()
	zero := decimal.Zero
	for _, p := range e.List() {
		got, err := e.Update(p.ID, entity.ProductUpdate{Quantity: &zero})
		require.NoError(t, err)
		assert.Equal(t, entity.StatusOutOfStock, got.Status, "producto %d", p.ID)
	}
}

func TestUpdate_MezclaParcialConservaPosicion(t *testing.T) {
	e := newSeededEngine()
	before, _ := e.Get(3)
	price := dec("3.75")

	got, err := e.Update(3, entity.ProductUpdate{Price: &price})
	require.NoError(t, err)

	assert.True(t, price.Equal(got.Price))
	assert.Equal(t, before.Name, got.Name)
	assert.Equal(t, before.Category, got.Category)
	assert.True(t, before.Quantity.Equal(got.Quantity))
	assert.Equal(t, before.Unit, got.Unit)
	assert.Equal(t, before.Version+1, got.Version)
	assert.Equal(t, int64(3), e.List()[2].ID, "el registro editado mantiene su posición")
}

func TestUpdate_Inexistente_ErrNotFound(t *testing.T) {
	e := newSeededEngine()
	name := "Nada"
	_, err := e.Update(404, entity.ProductUpdate{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, e.List(), 10)
}

func TestUpdate_VersionDistinta_ErrConflict(t *testing.T) {
	e := newSeededEngine()
	qty := dec("10")
	stale := int64(1)

	_, err := e.Update(1, entity.ProductUpdate{Quantity: &qty, ExpectedVersion: &stale})
	require.NoError(t, err)

	_, err = e.Update(1, entity.ProductUpdate{Quantity: &qty, ExpectedVersion: &stale})
	assert.ErrorIs(t, err, domain.ErrConflict)

	current := int64(2)
	got, err := e.Update(1, entity.ProductUpdate{Quantity: &qty, ExpectedVersion: &current})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Version)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_Idempotente(t *testing.T) {
	e := newSeededEngine()

	removed, ok := e.Delete(4)
	require.True(t, ok)
	assert.Equal(t, "Soybean Oil", removed.Name)
	after := e.List()

	_, ok = e.Delete(4)
	assert.False(t, ok)
	assert.Equal(t, after, e.List(), "el segundo borrado no cambia la colección")
}

func TestDelete_RestaSuContribucion(t *testing.T) {
	e := newSeededEngine()
	before := e.Stats().TotalValue
	p, _ := e.Get(7) // Cotton Bales: 120 × 85
	e.Delete(7)
	assert.True(t, before.Sub(p.Value()).Equal(e.Stats().TotalValue))
	assert.True(t, dec("59320").Equal(e.Stats().TotalValue))
}

func TestIDs_NoSeReutilizanConColeccionVacia(t *testing.T) {
	e := newSeededEngine()
	for _, p := range e.List() {
		e.Delete(p.ID)
	}
	require.Empty(t, e.List())
	assert.Equal(t, 0, e.Stats().TotalProducts)
	assert.True(t, e.Stats().TotalValue.IsZero())

	p := e.Create(teakWood())
	assert.Equal(t, int64(11), p.ID)
}

func TestNewEngine_SinSemilla(t *testing.T) {
	e := catalog.NewEngine(nil)
	assert.Equal(t, int64(1), e.Create(teakWood()).ID)
	assert.Equal(t, int64(2), e.Create(teakWood()).ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenario_AltaModificacionBaja(t *testing.T) {
	e := newSeededEngine()

	p := e.Create(teakWood())
	require.Equal(t, int64(11), p.ID)
	require.Equal(t, entity.StatusLowStock, p.Status)
	assert.Equal(t, 11, e.Stats().TotalProducts)

	zero := decimal.Zero
	updated, err := e.Update(11, entity.ProductUpdate{Quantity: &zero})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusOutOfStock, updated.Status)
	assert.Equal(t, 2, e.Stats().OutOfStock)

	e.Delete(11)
	assert.Equal(t, 10, e.Stats().TotalProducts)
	assert.True(t, dec("69520").Equal(e.Stats().TotalValue))
}

func TestList_DevuelveCopia(t *testing.T) {
	e := newSeededEngine()
	list := e.List()
	list[0].Name = "mutado"
	got, _ := e.Get(1)
	assert.Equal(t, "Wheat Grain", got.Name)
}
