package repository

import (
	"context"

	"github.com/jhoicas/Orders-api/internal/domain/entity"
)

// InventoryRepository define el puerto para consultar inventario por material+bodega.
// Ambos métodos toman la primera fila (created_at, id); si no hay fila devuelven cantidad cero.
type InventoryRepository interface {
	GetFirst(ctx context.Context, materialID, warehouseID string) (*entity.Inventory, error)
	// GetFirstForUpdate igual que GetFirst pero bloquea la fila (SELECT FOR UPDATE). Solo dentro de tx.
	GetFirstForUpdate(ctx context.Context, materialID, warehouseID string) (*entity.Inventory, error)
}
