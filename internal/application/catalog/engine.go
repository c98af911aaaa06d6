// Package catalog contiene el motor del catálogo de productos: la colección en memoria,
// la derivación del estado de stock y los agregados del dashboard.
//
// El motor es la única fuente de verdad de los productos y de sus campos derivados.
// Se crea una vez (en main o en los tests) y se pasa por puntero a quien lo necesite.
package catalog

import (
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/commodities-cms/internal/domain"
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
	"github.com/jhoicas/commodities-cms/internal/domain/inventory"
)

// Option configura el motor.
type Option func(*Engine)

// WithClock reemplaza el reloj usado para CreatedAt/UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine colección de productos en orden de inserción.
// Todas las operaciones son atómicas entre sí; los productos devueltos son copias.
type Engine struct {
	mu       sync.RWMutex
	products []entity.Product
	nextID   int64 // contador monótono: los ids borrados no se reutilizan
	now      func() time.Time
}

// NewEngine construye el motor a partir del catálogo semilla.
// El estado de cada semilla se recalcula; nunca se confía en el recibido.
func NewEngine(seed []entity.Product, opts ...Option) *Engine {
	e := &Engine{now: time.Now, nextID: 1}
	for _, opt := range opts {
		opt(e)
	}
	ts := e.now()
	e.products = make([]entity.Product, 0, len(seed))
	for _, p := range seed {
		p.Status = inventory.DeriveStatus(p.Quantity)
		if p.Version == 0 {
			p.Version = 1
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = ts
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = p.CreatedAt
		}
		if p.ID >= e.nextID {
			e.nextID = p.ID + 1
		}
		e.products = append(e.products, p)
	}
	return e
}

// List devuelve todos los productos en orden de inserción.
func (e *Engine) List() []entity.Product {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]entity.Product, len(e.products))
	copy(out, e.products)
	return out
}

// Get busca un producto por id.
func (e *Engine) Get(id int64) (entity.Product, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if i := e.indexOf(id); i >= 0 {
		return e.products[i], true
	}
	return entity.Product{}, false
}

// Create agrega un producto al final de la colección. No valida los campos:
// la validación es responsabilidad de quien llama.
func (e *Engine) Create(in entity.ProductInput) entity.Product {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	p := entity.Product{
		ID:        e.nextID,
		Name:      in.Name,
		Category:  in.Category,
		Quantity:  in.Quantity,
		Unit:      in.Unit,
		Price:     in.Price,
		Status:    inventory.DeriveStatus(in.Quantity),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.nextID++
	e.products = append(e.products, p)
	return p
}

// Update aplica los campos no nil sobre el producto y recalcula su estado.
// Devuelve domain.ErrNotFound si el id no existe y domain.ErrConflict si
// ExpectedVersion no coincide con la versión actual. El registro conserva su posición.
func (e *Engine) Update(id int64, f entity.ProductUpdate) (entity.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexOf(id)
	if i < 0 {
		return entity.Product{}, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	p := e.products[i]
	if f.ExpectedVersion != nil && *f.ExpectedVersion != p.Version {
		return entity.Product{}, fmt.Errorf("producto %d: versión esperada %d, actual %d: %w",
			id, *f.ExpectedVersion, p.Version, domain.ErrConflict)
	}

	if f.Name != nil {
		p.Name = *f.Name
	}
	if f.Category != nil {
		p.Category = *f.Category
	}
	if f.Quantity != nil {
		p.Quantity = *f.Quantity
	}
	if f.Unit != nil {
		p.Unit = *f.Unit
	}
	if f.Price != nil {
		p.Price = *f.Price
	}
	p.Status = inventory.DeriveStatus(p.Quantity)
	p.Version++
	p.UpdatedAt = e.now()

	e.products[i] = p
	return p, nil
}

// Delete elimina el producto si existe. Borrar un id inexistente no es un error:
// devuelve false y la colección queda igual.
func (e *Engine) Delete(id int64) (entity.Product, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexOf(id)
	if i < 0 {
		return entity.Product{}, false
	}
	removed := e.products[i]
	e.products = append(e.products[:i], e.products[i+1:]...)
	return removed, true
}

// Stats recalcula los agregados sobre la colección viva en cada llamada.
func (e *Engine) Stats() entity.Statistics {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return statsOf(e.products)
}

func (e *Engine) indexOf(id int64) int {
	for i := range e.products {
		if e.products[i].ID == id {
			return i
		}
	}
	return -1
}
