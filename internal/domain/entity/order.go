package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order pedido de un proyecto. Se crea junto con sus líneas en una sola transacción.
// ContactID, CarrierID y ServiceTypeID vacíos significan "no asignado".
type Order struct {
	ID                 string
	ProjectID          string
	WarehouseID        string
	ContactID          string
	CarrierID          string
	ServiceTypeID      string
	ShippingAddressID  string
	BillingAddressID   string
	OrderTypeID        string
	OrderClassID       string
	StatusID           string
	LookupCodeOrder    string
	LookupCodeShipment string
	ExpectedDelivery   time.Time
	Notes              string
	CreatedByUserID    string
	CreatedAt          time.Time
	Lines              []OrderLine
}

// OrderLine solicitud de un material dentro del pedido. LineNumber conserva el orden de envío (1..N).
// LicensePlateID referencia opcional a una fila de inventario.
type OrderLine struct {
	ID             string
	OrderID        string
	LineNumber     int
	MaterialID     string
	Quantity       decimal.Decimal
	LicensePlateID string
	SerialNumber   string
	Lot            string
	VendorLot      string
	Notes          string
}

// TotalQuantity suma de cantidades de todas las líneas.
func (o *Order) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Quantity)
	}
	return total
}
