package repository

import (
	"context"

	"github.com/jhoicas/Orders-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos y sus líneas.
type OrderRepository interface {
	// Create inserta el pedido y todas sus líneas; debe ejecutarse dentro de una transacción.
	Create(ctx context.Context, order *entity.Order) error
	// GetByIDForCustomer devuelve el pedido solo si su proyecto pertenece al cliente indicado.
	GetByIDForCustomer(ctx context.Context, id, customerID string) (*entity.Order, error)
	// ListByCustomer lista los pedidos de todos los proyectos del cliente, más recientes primero.
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Order, error)
}
