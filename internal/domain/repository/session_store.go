package repository

import "context"

// SessionStore almacén clave-valor síncrono donde se guarda el blob de sesión.
// Get devuelve found=false (sin error) si la clave no existe o expiró.
type SessionStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
