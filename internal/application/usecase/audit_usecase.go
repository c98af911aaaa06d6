package usecase

import (
	"context"

	"github.com/jhoicas/commodities-cms/internal/application/dto"
	"github.com/jhoicas/commodities-cms/internal/domain/repository"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AuditUseCase consulta el historial de mutaciones del catálogo.
type AuditUseCase struct {
	repo repository.AuditRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// Recent últimas entradas, la más reciente primero. limit fuera de rango usa 50 o se acota a 500.
func (uc *AuditUseCase) Recent(ctx context.Context, limit int) ([]dto.AuditEntryResponse, error) {
	switch {
	case limit <= 0:
		limit = defaultAuditLimit
	case limit > maxAuditLimit:
		limit = maxAuditLimit
	}
	entries, err := uc.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.AuditEntryResponse{
			ID:          e.ID,
			ProductID:   e.ProductID,
			ProductName: e.ProductName,
			Action:      e.Action,
			ActorID:     e.ActorID,
			ActorEmail:  e.ActorEmail,
			Quantity:    e.Quantity,
			Price:       e.Price,
			Status:      string(e.Status),
			OccurredAt:  e.OccurredAt,
		})
	}
	return out, nil
}
