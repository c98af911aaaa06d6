package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditEntryResponse entrada del historial de mutaciones.
type AuditEntryResponse struct {
	ID          string          `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Action      string          `json:"action"`
	ActorID     int64           `json:"actor_id"`
	ActorEmail  string          `json:"actor_email"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
