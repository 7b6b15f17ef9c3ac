package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Orders-api/internal/domain/entity"
	"github.com/jhoicas/Orders-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const selectFirstInventory = `
	SELECT id, project_id, warehouse_id, material_id, location, license_plate_id,
	       license_plate, lot, vendor_lot, quantity, created_at
	FROM inventory
	WHERE material_id = $1 AND warehouse_id = $2
	ORDER BY created_at, id
	LIMIT 1`

// GetFirst obtiene la primera fila de inventario del material en la bodega.
func (r *InventoryRepo) GetFirst(ctx context.Context, materialID, warehouseID string) (*entity.Inventory, error) {
	return r.first(ctx, selectFirstInventory, materialID, warehouseID)
}

// GetFirstForUpdate obtiene la primera fila y la bloquea para update (SELECT FOR UPDATE).
func (r *InventoryRepo) GetFirstForUpdate(ctx context.Context, materialID, warehouseID string) (*entity.Inventory, error) {
	return r.first(ctx, selectFirstInventory+` FOR UPDATE`, materialID, warehouseID)
}

func (r *InventoryRepo) first(ctx context.Context, query, materialID, warehouseID string) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, materialID, warehouseID).Scan(
		&inv.ID, &inv.ProjectID, &inv.WarehouseID, &inv.MaterialID, &inv.Location, &inv.LicensePlateID,
		&inv.LicensePlate, &inv.Lot, &inv.VendorLot, &inv.Quantity, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Inventory{MaterialID: materialID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}
