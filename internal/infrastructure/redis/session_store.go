// Package redis implementa el almacén de sesiones sobre Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Options conexión al servidor Redis.
type Options struct {
	Address  string
	Password string
	DB       int
}

// NewClient abre el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, opts Options) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Address, err)
	}
	return client, nil
}

// SessionStore implementa repository.SessionStore con SET key value EX ttl.
type SessionStore struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// NewSessionStore ttl 0 = sin vencimiento.
func NewSessionStore(client goredis.UniversalClient, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Get devuelve found=false cuando la clave no existe (redis.Nil).
func (s *SessionStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

// Set reemplaza el valor y renueva el vencimiento.
func (s *SessionStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete no falla si la clave no existe.
func (s *SessionStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
