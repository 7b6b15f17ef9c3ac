package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Orders-api/internal/application/orders"
	"github.com/jhoicas/Orders-api/internal/domain"
)

var _ orders.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore versión en memoria del store de Idempotency-Key (sin expiración).
type IdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]string // "" = en curso
}

// NewIdempotencyStore crea el store vacío.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{keys: map[string]string{}}
}

// Reserve reserva la clave o devuelve el pedido ya creado con ella.
func (s *IdempotencyStore) Reserve(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orderID, ok := s.keys[key]
	if !ok {
		s.keys[key] = ""
		return "", nil
	}
	if orderID == "" {
		return "", domain.ErrConflict
	}
	return orderID, nil
}

// Complete asocia la clave al pedido creado.
func (s *IdempotencyStore) Complete(_ context.Context, key, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = orderID
	return nil
}

// Release libera la clave para que el cliente pueda reintentar.
func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	return nil
}
