package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Acciones registradas en la auditoría del catálogo.
const (
	AuditActionCreated = "created"
	AuditActionUpdated = "updated"
	AuditActionDeleted = "deleted"
)

// AuditEntry registra una mutación del catálogo con la foto del producto tras aplicarla.
// El catálogo no se persiste; la auditoría es solo un historial.
type AuditEntry struct {
	ID          string
	ProductID   int64
	ProductName string
	Action      string // created, updated, deleted
	ActorID     int64
	ActorEmail  string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Status      StockStatus
	OccurredAt  time.Time
}
