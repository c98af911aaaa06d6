package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/commodities-cms/internal/domain/entity"
)

// All valor de filtro que desactiva el filtro de categoría o de estado.
const All = "all"

// Query filtros de la vista de productos. Campos vacíos o "all" no filtran.
type Query struct {
	Search   string // subcadena sin distinguir mayúsculas sobre nombre o categoría
	Category string
	Status   string
}

// Filter devuelve los productos que cumplen todos los filtros, en orden de colección.
func (e *Engine) Filter(q Query) []entity.Product {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(q.Search))

	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]entity.Product, 0, len(e.products))
	for _, p := range e.products {
		if q.Category != "" && q.Category != All && string(p.Category) != q.Category {
			continue
		}
		if q.Status != "" && q.Status != All && string(p.Status) != q.Status {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(p.Name), needle) &&
			!strings.Contains(fold.String(string(p.Category)), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories devuelve las categorías presentes en el catálogo, en orden de primera aparición.
func (e *Engine) Categories() []entity.Category {
	e.mu.RLock()
	defer e.mu.RUnlock()

	seen := make(map[entity.Category]struct{})
	out := make([]entity.Category, 0)
	for _, p := range e.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
