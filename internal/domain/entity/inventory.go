package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory registro de stock por (proyecto, bodega, material), identificado por license plate.
// ID vacío indica que no existe fila para el par material+bodega (cantidad cero).
type Inventory struct {
	ID             string
	ProjectID      string
	WarehouseID    string
	MaterialID     string
	Location       string
	LicensePlateID string
	LicensePlate   string
	Lot            string
	VendorLot      string
	Quantity       decimal.Decimal
	CreatedAt      time.Time
}
