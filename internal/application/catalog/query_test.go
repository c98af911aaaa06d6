package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/commodities-cms/internal/application/catalog"
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
)

func names(ps []entity.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestFilter_SinFiltrosDevuelveTodo(t *testing.T) {
	e := newSeededEngine()
	assert.Len(t, e.Filter(catalog.Query{}), 10)
	assert.Len(t, e.Filter(catalog.Query{Category: catalog.All, Status: catalog.All}), 10)
}

func TestFilter_BusquedaNombreYCategoriaSinMayusculas(t *testing.T) {
	e := newSeededEngine()
	assert.Equal(t, []string{"Soybean Oil", "Olive Oil"}, names(e.Filter(catalog.Query{Search: "OIL"})))
	// "grain" coincide con el nombre "Wheat Grain" y con la categoría Grains.
	assert.Equal(t, []string{"Wheat Grain", "Rice Basmati", "Barley"}, names(e.Filter(catalog.Query{Search: "grain"})))
}

func TestFilter_CategoriaYEstado(t *testing.T) {
	e := newSeededEngine()
	got := e.Filter(catalog.Query{Category: "Beverages", Status: string(entity.StatusLowStock)})
	assert.Equal(t, []string{"Coffee Beans"}, names(got))

	assert.Empty(t, e.Filter(catalog.Query{Category: "Metals"}))
}

func TestCategories_OrdenDeAparicion(t *testing.T) {
	e := newSeededEngine()
	assert.Equal(t, []entity.Category{
		entity.CategoryGrains, entity.CategorySeeds, entity.CategoryOils,
		entity.CategoryBeverages, entity.CategorySweeteners, entity.CategoryFibers,
	}, e.Categories())
}

func TestCategoryBreakdown(t *testing.T) {
	got := newSeededEngine().CategoryBreakdown()
	require.Len(t, got, 6)
	assert.Equal(t, entity.CategoryGrains, got[0].Category)
	assert.True(t, dec("10000").Equal(got[0].Quantity))
	assert.True(t, dec("30980").Equal(got[0].Value))
	assert.Equal(t, entity.CategoryFibers, got[5].Category)
	assert.True(t, dec("10200").Equal(got[5].Value))
}

func TestStatusBreakdown_OmiteCeros(t *testing.T) {
	e := newSeededEngine()
	assert.Equal(t, []catalog.StatusSlice{
		{Status: entity.StatusInStock, Count: 7},
		{Status: entity.StatusLowStock, Count: 2},
		{Status: entity.StatusOutOfStock, Count: 1},
	}, e.StatusBreakdown())

	e.Delete(8) // único agotado
	for _, s := range e.StatusBreakdown() {
		assert.NotEqual(t, entity.StatusOutOfStock, s.Status)
	}
}

func TestTopProducts_PorValor(t *testing.T) {
	e := newSeededEngine()
	assert.Equal(t,
		[]string{"Rice Basmati", "Wheat Grain", "Cotton Bales", "Olive Oil", "Coffee Beans"},
		names(e.TopProducts(catalog.DefaultTopProducts)))
	// Sugar Cane y Barley empatan en 5040: se respeta el orden de la colección.
	assert.Equal(t, []string{"Sugar Cane", "Barley"}, names(e.TopProducts(7)[5:]))
}

func TestOverview_Consistente(t *testing.T) {
	e := newSeededEngine()
	ov := e.Overview(3)
	assert.Equal(t, e.Stats(), ov.Stats)
	assert.Len(t, ov.Top, 3)
	assert.Len(t, ov.ByCategory, 6)
	assert.Len(t, ov.ByStatus, 3)
}
