package postgres

import (
	"context"
	"fmt"
)

// schema tablas de las que depende el servicio. El catálogo no se persiste.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS session_kv (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		expires_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS session_kv_expires_at_idx ON session_kv (expires_at)`,
	`CREATE TABLE IF NOT EXISTS catalog_audit (
		id           UUID PRIMARY KEY,
		product_id   BIGINT NOT NULL,
		product_name TEXT NOT NULL,
		action       TEXT NOT NULL CHECK (action IN ('created', 'updated', 'deleted')),
		actor_id     BIGINT NOT NULL,
		actor_email  TEXT NOT NULL,
		quantity     NUMERIC(18,4) NOT NULL,
		price        NUMERIC(18,4) NOT NULL,
		status       TEXT NOT NULL,
		occurred_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS catalog_audit_occurred_at_idx ON catalog_audit (occurred_at DESC)`,
}

// EnsureSchema crea las tablas si no existen. Es idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
