package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/commodities-cms/internal/domain/entity"
)

// DefaultAuditCapacity entradas que conserva AuditLog antes de descartar las más viejas.
const DefaultAuditCapacity = 1000

// AuditLog implementa repository.AuditRepository con un buffer acotado.
type AuditLog struct {
	mu       sync.Mutex
	entries  []*entity.AuditEntry
	capacity int
}

// NewAuditLog capacity <= 0 usa DefaultAuditCapacity.
func NewAuditLog(capacity int) *AuditLog {
	if capacity <= 0 {
		capacity = DefaultAuditCapacity
	}
	return &AuditLog{capacity: capacity}
}

// Record agrega la entrada; asigna ID si viene vacío.
func (l *AuditLog) Record(_ context.Context, e *entity.AuditEntry) error {
	cp := *e
	if cp.ID == "" {
		cp.ID = uuid.New().String()
		e.ID = cp.ID
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, &cp)
	if over := len(l.entries) - l.capacity; over > 0 {
		l.entries = append([]*entity.AuditEntry(nil), l.entries[over:]...)
	}
	return nil
}

// ListRecent devuelve las últimas entradas, la más reciente primero.
func (l *AuditLog) ListRecent(_ context.Context, limit int) ([]*entity.AuditEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]*entity.AuditEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		cp := *l.entries[i]
		out = append(out, &cp)
	}
	return out, nil
}
