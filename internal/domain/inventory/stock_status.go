package inventory

import (
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// LowStockThreshold cantidad máxima (inclusive) considerada stock bajo.
var LowStockThreshold = decimal.NewFromInt(500)

// DeriveStatus implementa la regla de estado de existencias (servicio de dominio).
//
//	cantidad > 500      → in-stock
//	0 < cantidad <= 500 → low-stock
//	cantidad <= 0       → out-of-stock
func DeriveStatus(quantity decimal.Decimal) entity.StockStatus {
	switch {
	case quantity.GreaterThan(LowStockThreshold):
		return entity.StatusInStock
	case quantity.IsPositive():
		return entity.StatusLowStock
	default:
		return entity.StatusOutOfStock
	}
}
