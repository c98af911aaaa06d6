package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/commodities-cms/internal/domain/repository"
)

var _ repository.SessionStore = (*SessionStore)(nil)

// SessionStore implementación de repository.SessionStore sobre la tabla session_kv.
// Las filas vencidas se ignoran al leer y se purgan con PurgeExpired.
type SessionStore struct {
	q   Querier
	ttl time.Duration
	now func() time.Time
}

// NewSessionStore ttl 0 = sin vencimiento.
func NewSessionStore(q Querier, ttl time.Duration) *SessionStore {
	return &SessionStore{q: q, ttl: ttl, now: time.Now}
}

// Get devuelve found=false si la clave no existe o venció.
func (s *SessionStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := `
		SELECT value::text FROM session_kv
		WHERE key = $1 AND (expires_at IS NULL OR expires_at > $2)`
	var value string
	err := s.q.QueryRow(ctx, query, key, s.now()).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get session %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set inserta o reemplaza el valor y renueva el vencimiento. El valor debe ser JSON.
func (s *SessionStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO session_kv (key, value, expires_at) VALUES ($1, $2::jsonb, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`
	if _, err := s.q.Exec(ctx, query, key, string(value), s.expiresAt()); err != nil {
		return fmt.Errorf("set session %s: %w", key, err)
	}
	return nil
}

// Delete no falla si la clave no existe.
func (s *SessionStore) Delete(ctx context.Context, key string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM session_kv WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete session %s: %w", key, err)
	}
	return nil
}

// PurgeExpired borra las filas vencidas y devuelve cuántas se eliminaron.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := s.q.Exec(ctx, `DELETE FROM session_kv WHERE expires_at IS NOT NULL AND expires_at <= $1`, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *SessionStore) expiresAt() *time.Time {
	if s.ttl <= 0 {
		return nil
	}
	t := s.now().Add(s.ttl)
	return &t
}
