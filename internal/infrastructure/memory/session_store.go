// Package memory implementaciones en memoria de los puertos de persistencia.
// Se usan por defecto en desarrollo y en los tests.
package memory

import (
	"context"
	"sync"
	"time"
)

type item struct {
	value     []byte
	expiresAt time.Time // cero = sin vencimiento
}

func (it item) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && !now.Before(it.expiresAt)
}

// SessionStore implementa repository.SessionStore sobre un map.
type SessionStore struct {
	mu    sync.RWMutex
	items map[string]item
	ttl   time.Duration
	now   func() time.Time
}

// NewSessionStore crea el store. ttl 0 = las claves no vencen.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{items: make(map[string]item), ttl: ttl, now: time.Now}
}

// Get devuelve una copia del valor.
func (s *SessionStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	now := s.now()
	if it.expired(now) {
		// Entre RUnlock y Lock otro Set pudo reemplazar la clave: solo se borra si sigue vencida.
		s.mu.Lock()
		if cur, ok := s.items[key]; ok && cur.expired(now) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}
	out := make([]byte, len(it.value))
	copy(out, it.value)
	return out, true, nil
}

// Set guarda una copia del valor.
func (s *SessionStore) Set(_ context.Context, key string, value []byte) error {
	it := item{value: append([]byte(nil), value...)}
	if s.ttl > 0 {
		it.expiresAt = s.now().Add(s.ttl)
	}
	s.mu.Lock()
	s.items[key] = it
	s.mu.Unlock()
	return nil
}

// Delete no falla si la clave no existe.
func (s *SessionStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}
