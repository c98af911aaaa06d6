package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/commodities-cms/internal/domain"
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
	"github.com/jhoicas/commodities-cms/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación sobre PostgreSQL (tabla catalog_audit).
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Record persiste una entrada; asigna ID si viene vacío.
func (r *AuditRepo) Record(ctx context.Context, e *entity.AuditEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO catalog_audit (id, product_id, product_name, action, actor_id, actor_email, quantity, price, status, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.ProductID, e.ProductName, e.Action, e.ActorID, e.ActorEmail,
		e.Quantity, e.Price, string(e.Status), e.OccurredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("audit %s: %w", e.ID, domain.ErrConflict)
		}
		return fmt.Errorf("record audit: %w", err)
	}
	return nil
}

// ListRecent devuelve las últimas entradas, la más reciente primero.
func (r *AuditRepo) ListRecent(ctx context.Context, limit int) ([]*entity.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, product_id, product_name, action, actor_id, actor_email, quantity, price, status, occurred_at
		FROM catalog_audit ORDER BY occurred_at DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()

	var list []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		var status string
		if err := rows.Scan(&e.ID, &e.ProductID, &e.ProductName, &e.Action, &e.ActorID, &e.ActorEmail,
			&e.Quantity, &e.Price, &status, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan audit: %w", err)
		}
		e.Status = entity.StockStatus(status)
		list = append(list, &e)
	}
	return list, rows.Err()
}
