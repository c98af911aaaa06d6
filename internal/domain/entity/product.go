package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus clasificación de existencias derivada de la cantidad.
type StockStatus string

// Estados de stock.
const (
	StatusInStock    StockStatus = "in-stock"
	StatusLowStock   StockStatus = "low-stock"
	StatusOutOfStock StockStatus = "out-of-stock"
)

// StockStatuses en el orden en que se presentan en filtros y gráficas.
var StockStatuses = []StockStatus{StatusInStock, StatusLowStock, StatusOutOfStock}

// Valid informa si el estado es uno de los tres conocidos.
func (s StockStatus) Valid() bool {
	return s == StatusInStock || s == StatusLowStock || s == StatusOutOfStock
}

// Product representa un commodity del catálogo.
// Status nunca se asigna desde fuera: lo recalcula el catálogo en cada alta y modificación.
type Product struct {
	ID        int64
	Name      string
	Category  Category
	Quantity  decimal.Decimal // no negativa
	Unit      Unit
	Price     decimal.Decimal // precio unitario, positivo
	Status    StockStatus
	Version   int64 // control optimista; inicia en 1
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Value devuelve quantity × price.
func (p Product) Value() decimal.Decimal {
	return p.Quantity.Mul(p.Price)
}

// ProductInput datos de alta de un producto (ya validados por quien llama).
type ProductInput struct {
	Name     string
	Category Category
	Quantity decimal.Decimal
	Unit     Unit
	Price    decimal.Decimal
}

// ProductUpdate modificación parcial: solo se aplican los campos no nil.
// ExpectedVersion, si viene, debe coincidir con la versión actual del registro.
type ProductUpdate struct {
	Name            *string
	Category        *Category
	Quantity        *decimal.Decimal
	Unit            *Unit
	Price           *decimal.Decimal
	ExpectedVersion *int64
}

// Statistics agregados del catálogo vivo (nunca se almacenan).
type Statistics struct {
	TotalProducts int
	TotalValue    decimal.Decimal
	LowStock      int
	OutOfStock    int
	Categories    int
}
