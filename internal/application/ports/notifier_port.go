package ports

import (
	"time"

	"github.com/jhoicas/commodities-cms/internal/domain/entity"
)

// CatalogEvent mutación del catálogo publicada a los clientes conectados.
type CatalogEvent struct {
	Action     string // created, updated, deleted
	Product    entity.Product
	Actor      entity.Identity
	Message    string
	OccurredAt time.Time
}

// CatalogNotifier puerto de salida para difundir mutaciones del catálogo.
// Publish no debe bloquear: si el canal está saturado el evento se descarta.
type CatalogNotifier interface {
	Publish(evt CatalogEvent)
}

// NopNotifier descarta los eventos.
type NopNotifier struct{}

// Publish no hace nada.
func (NopNotifier) Publish(CatalogEvent) {}
