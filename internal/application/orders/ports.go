package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Orders-api/internal/domain/entity"
	"github.com/jhoicas/Orders-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a esa tx.
// Si fn retorna error se hace Rollback; ninguna fila del pedido queda persistida.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		inventoryRepo repository.InventoryRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// MetricsRecorder registra el resultado de cada intento de creación.
type MetricsRecorder interface {
	OrderCreated(lines int)
	OrderRejected(fields []string)
}

// IdempotencyStore reserva claves Idempotency-Key por usuario.
// Reserve devuelve "" si la clave quedó reservada para este request, el ID del pedido si ya
// se completó, o domain.ErrConflict si otro request con la misma clave sigue en curso.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (orderID string, err error)
	Complete(ctx context.Context, key, orderID string) error
	Release(ctx context.Context, key string) error
}

// PickTicketLine línea del documento de alistamiento.
type PickTicketLine struct {
	LineNumber   int
	MaterialCode string
	MaterialName string
	Quantity     decimal.Decimal
	Lot          string
	SerialNumber string
	Notes        string
}

// PickTicket datos que necesita el generador para la hoja de alistamiento en bodega.
type PickTicket struct {
	Order         *entity.Order
	ProjectName   string
	WarehouseName string
	Lines         []PickTicketLine
}

// PickTicketGenerator genera el PDF de alistamiento.
type PickTicketGenerator interface {
	GeneratePickTicket(ctx context.Context, ticket *PickTicket) ([]byte, error)
}
