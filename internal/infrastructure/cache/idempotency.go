package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Orders-api/internal/application/orders"
	"github.com/jhoicas/Orders-api/internal/domain"
)

var _ orders.IdempotencyStore = (*IdempotencyStore)(nil)

const (
	keyPrefix    = "orders:idem:"
	pendingValue = "pending"
)

// IdempotencyStore guarda Idempotency-Key -> ID de pedido con TTL.
// Mientras el request está en curso el valor es "pending".
type IdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewIdempotencyStore construye el store; ttl aplica tanto a reservas como a claves completadas.
func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

// Reserve SET NX de la clave; si ya existe devuelve el pedido o domain.ErrConflict si sigue pendiente.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (string, error) {
	ok, err := s.rdb.SetNX(ctx, keyPrefix+key, pendingValue, s.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return "", nil
	}
	val, err := s.rdb.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Expiró entre SETNX y GET: se trata como en curso y el cliente reintenta.
			return "", domain.ErrConflict
		}
		return "", fmt.Errorf("idempotency get: %w", err)
	}
	if val == pendingValue {
		return "", domain.ErrConflict
	}
	return val, nil
}

// Complete guarda el ID del pedido creado.
func (s *IdempotencyStore) Complete(ctx context.Context, key, orderID string) error {
	if err := s.rdb.Set(ctx, keyPrefix+key, orderID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release borra la reserva para permitir reintentos.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}
