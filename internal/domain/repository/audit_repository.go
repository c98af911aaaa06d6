package repository

import (
	"context"

	"github.com/jhoicas/commodities-cms/internal/domain/entity"
)

// AuditRepository define el puerto de persistencia del historial de mutaciones del catálogo.
type AuditRepository interface {
	Record(ctx context.Context, entry *entity.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]*entity.AuditEntry, error)
}
