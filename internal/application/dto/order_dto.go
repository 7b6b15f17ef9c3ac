package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders/.
type CreateOrderRequest struct {
	LookupCodeOrder      string             `json:"lookup_code_order" validate:"required,lookupcode"`
	LookupCodeShipment   string             `json:"lookup_code_shipment" validate:"required,lookupcode"`
	Status               string             `json:"status" validate:"required,uuid"`
	OrderType            string             `json:"order_type" validate:"required,uuid"`
	OrderClass           string             `json:"order_class" validate:"required,uuid"`
	Project              string             `json:"project" validate:"required,uuid"`
	Warehouse            string             `json:"warehouse" validate:"required,uuid"`
	Contact              string             `json:"contact,omitempty" validate:"omitempty,uuid"`
	ShippingAddress      string             `json:"shipping_address" validate:"required,uuid"`
	BillingAddress       string             `json:"billing_address" validate:"required,uuid"`
	Carrier              string             `json:"carrier,omitempty" validate:"omitempty,uuid"`
	ServiceType          string             `json:"service_type,omitempty" validate:"omitempty,uuid"`
	ExpectedDeliveryDate *time.Time         `json:"expected_delivery_date" validate:"required"`
	Notes                string             `json:"notes,omitempty" validate:"max=2000"`
	Lines                []OrderLineRequest `json:"lines" validate:"dive"`
}

// OrderLineRequest línea del pedido.
type OrderLineRequest struct {
	Material     string          `json:"material" validate:"required,uuid"`
	Quantity     decimal.Decimal `json:"quantity" validate:"gt=0,lte=99999999.99,qty2dp"`
	LicensePlate string          `json:"license_plate,omitempty" validate:"omitempty,uuid"`
	SerialNumber string          `json:"serial_number,omitempty" validate:"max=100"`
	Lot          string          `json:"lot,omitempty" validate:"max=50"`
	VendorLot    string          `json:"vendor_lot,omitempty" validate:"max=50"`
	Notes        string          `json:"notes,omitempty" validate:"max=500"`
}

// OrderResponse pedido creado o consultado.
type OrderResponse struct {
	ID                   string              `json:"id"`
	LookupCodeOrder      string              `json:"lookup_code_order"`
	LookupCodeShipment   string              `json:"lookup_code_shipment"`
	Status               string              `json:"status"`
	OrderType            string              `json:"order_type"`
	OrderClass           string              `json:"order_class"`
	Project              string              `json:"project"`
	Warehouse            string              `json:"warehouse"`
	Contact              string              `json:"contact,omitempty"`
	ShippingAddress      string              `json:"shipping_address"`
	BillingAddress       string              `json:"billing_address"`
	Carrier              string              `json:"carrier,omitempty"`
	ServiceType          string              `json:"service_type,omitempty"`
	ExpectedDeliveryDate time.Time           `json:"expected_delivery_date"`
	Notes                string              `json:"notes,omitempty"`
	CreatedByUser        string              `json:"created_by_user"`
	CreatedAt            time.Time           `json:"created_at"`
	Lines                []OrderLineResponse `json:"lines"`
}

// OrderLineResponse línea con su ID generado.
type OrderLineResponse struct {
	ID           string `json:"id"`
	LineNumber   int    `json:"line_number"`
	Material     string `json:"material"`
	Quantity     string `json:"quantity"` // dos decimales fijos, p. ej. "2.00"
	LicensePlate string `json:"license_plate,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	Lot          string `json:"lot,omitempty"`
	VendorLot    string `json:"vendor_lot,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// OrderListResponse listado de pedidos del cliente.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Total int             `json:"total"`
}
