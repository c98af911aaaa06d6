// Package session mantiene la identidad activa de un cliente: login contra el directorio
// de credenciales, persistencia bajo una clave fija y restauración al arrancar.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/commodities-cms/internal/domain"
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
	"github.com/jhoicas/commodities-cms/internal/domain/repository"
)

// DefaultKey clave bajo la que se guarda la identidad.
const DefaultKey = "cms_user"

// DefaultLatency demora simulada del login.
const DefaultLatency = 800 * time.Millisecond

// KeyFor clave de una sesión emitida por el servidor HTTP.
func KeyFor(sessionID string) string {
	return DefaultKey + ":" + sessionID
}

// Config opciones del holder.
type Config struct {
	Key     string        // vacío = DefaultKey
	Latency time.Duration // 0 = sin demora
}

// Holder guarda a lo sumo una identidad activa.
type Holder struct {
	dir     repository.CredentialDirectory
	store   repository.SessionStore
	key     string
	latency time.Duration

	mu       sync.RWMutex
	identity *entity.Identity
}

// NewHolder construye un holder sin sesión activa. Llamar Restore para recuperar la persistida.
func NewHolder(dir repository.CredentialDirectory, store repository.SessionStore, cfg Config) *Holder {
	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}
	return &Holder{dir: dir, store: store, key: key, latency: cfg.Latency}
}

// Login verifica email y password exactos contra el directorio. Con coincidencia persiste la
// identidad y la deja activa; sin coincidencia devuelve domain.ErrInvalidCredentials y el
// estado no cambia.
func (h *Holder) Login(ctx context.Context, email, password string) (entity.Identity, error) {
	if err := h.wait(ctx); err != nil {
		return entity.Identity{}, err
	}
	cred, ok := h.dir.Authenticate(email, password)
	if !ok {
		return entity.Identity{}, domain.ErrInvalidCredentials
	}
	id := cred.Identity()
	raw, err := json.Marshal(id)
	if err != nil {
		return entity.Identity{}, fmt.Errorf("serializar sesión: %w", err)
	}
	if err := h.store.Set(ctx, h.key, raw); err != nil {
		return entity.Identity{}, fmt.Errorf("guardar sesión: %w", err)
	}

	h.mu.Lock()
	h.identity = &id
	h.mu.Unlock()
	return id, nil
}

// Logout limpia la identidad activa y borra la clave. La identidad se limpia aunque
// falle el borrado en el store; solo ese error se devuelve.
func (h *Holder) Logout(ctx context.Context) error {
	h.mu.Lock()
	h.identity = nil
	h.mu.Unlock()
	if err := h.store.Delete(ctx, h.key); err != nil {
		return fmt.Errorf("borrar sesión: %w", err)
	}
	return nil
}

// Restore reinstala la identidad persistida sin volver a validar credenciales.
// Datos ausentes o malformados equivalen a no tener sesión; los malformados se borran.
func (h *Holder) Restore(ctx context.Context) (entity.Identity, bool, error) {
	raw, found, err := h.store.Get(ctx, h.key)
	if err != nil {
		return entity.Identity{}, false, fmt.Errorf("leer sesión: %w", err)
	}
	if !found {
		h.clear()
		return entity.Identity{}, false, nil
	}
	var id entity.Identity
	if err := json.Unmarshal(raw, &id); err != nil || !id.Valid() {
		h.clear()
		if err := h.store.Delete(ctx, h.key); err != nil {
			return entity.Identity{}, false, fmt.Errorf("borrar sesión inválida: %w", err)
		}
		return entity.Identity{}, false, nil
	}

	h.mu.Lock()
	h.identity = &id
	h.mu.Unlock()
	return id, true, nil
}

// Current devuelve la identidad activa.
func (h *Holder) Current() (entity.Identity, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.identity == nil {
		return entity.Identity{}, false
	}
	return *h.identity, true
}

// IsAuthenticated true si hay identidad activa.
func (h *Holder) IsAuthenticated() bool {
	_, ok := h.Current()
	return ok
}

// IsManager true si la identidad activa tiene rol manager.
func (h *Holder) IsManager() bool {
	id, ok := h.Current()
	return ok && id.Role == entity.RoleManager
}

// IsStoreKeeper true si la identidad activa tiene rol storekeeper.
func (h *Holder) IsStoreKeeper() bool {
	id, ok := h.Current()
	return ok && id.Role == entity.RoleStoreKeeper
}

func (h *Holder) clear() {
	h.mu.Lock()
	h.identity = nil
	h.mu.Unlock()
}

func (h *Holder) wait(ctx context.Context) error {
	if h.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(h.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
