package catalog

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/commodities-cms/internal/domain/entity"
)

// DefaultTopProducts número de productos en el widget "top por valor".
const DefaultTopProducts = 5

// CategorySlice cantidad y valor acumulados de una categoría.
type CategorySlice struct {
	Category entity.Category
	Quantity decimal.Decimal
	Value    decimal.Decimal
}

// StatusSlice número de productos en un estado de stock.
type StatusSlice struct {
	Status entity.StockStatus
	Count  int
}

// Overview estadísticas y series del dashboard calculadas sobre la misma foto del catálogo.
type Overview struct {
	Stats      entity.Statistics
	ByCategory []CategorySlice
	ByStatus   []StatusSlice
	Top        []entity.Product
}

// CategoryBreakdown agrupa por categoría en orden de primera aparición.
func (e *Engine) CategoryBreakdown() []CategorySlice {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return categoryBreakdownOf(e.products)
}

// StatusBreakdown cuenta productos por estado (in, low, out), omitiendo los que están en cero.
func (e *Engine) StatusBreakdown() []StatusSlice {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return statusBreakdownOf(e.products)
}

// TopProducts devuelve los n productos de mayor valor (quantity × price), de mayor a menor.
// Ante empate se respeta el orden de la colección.
func (e *Engine) TopProducts(n int) []entity.Product {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return topProductsOf(e.products, n)
}

// Overview calcula estadísticas y series bajo un único bloqueo de lectura.
func (e *Engine) Overview(top int) Overview {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Overview{
		Stats:      statsOf(e.products),
		ByCategory: categoryBreakdownOf(e.products),
		ByStatus:   statusBreakdownOf(e.products),
		Top:        topProductsOf(e.products, top),
	}
}

func statsOf(products []entity.Product) entity.Statistics {
	s := entity.Statistics{TotalProducts: len(products), TotalValue: decimal.Zero}
	categories := make(map[entity.Category]struct{})
	for _, p := range products {
		s.TotalValue = s.TotalValue.Add(p.Value())
		switch p.Status {
		case entity.StatusLowStock:
			s.LowStock++
		case entity.StatusOutOfStock:
			s.OutOfStock++
		}
		categories[p.Category] = struct{}{}
	}
	s.Categories = len(categories)
	return s
}

func categoryBreakdownOf(products []entity.Product) []CategorySlice {
	out := make([]CategorySlice, 0)
	index := make(map[entity.Category]int)
	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			i = len(out)
			index[p.Category] = i
			out = append(out, CategorySlice{Category: p.Category, Quantity: decimal.Zero, Value: decimal.Zero})
		}
		out[i].Quantity = out[i].Quantity.Add(p.Quantity)
		out[i].Value = out[i].Value.Add(p.Value())
	}
	return out
}

func statusBreakdownOf(products []entity.Product) []StatusSlice {
	counts := make(map[entity.StockStatus]int, len(entity.StockStatuses))
	for _, p := range products {
		counts[p.Status]++
	}
	out := make([]StatusSlice, 0, len(entity.StockStatuses))
	for _, st := range entity.StockStatuses {
		if counts[st] > 0 {
			out = append(out, StatusSlice{Status: st, Count: counts[st]})
		}
	}
	return out
}

func topProductsOf(products []entity.Product, n int) []entity.Product {
	if n <= 0 {
		n = DefaultTopProducts
	}
	sorted := make([]entity.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value().GreaterThan(sorted[j].Value())
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
