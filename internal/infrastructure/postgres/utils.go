package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Orders-api/internal/domain"
	"github.com/jhoicas/Orders-api/internal/domain/order"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return false
}

// constraintFields nombre del constraint -> campo del request.
var constraintFields = map[string]string{
	"orders_lookup_code_order_key":    order.FieldLookupCodeOrder,
	"orders_lookup_code_shipment_key": order.FieldLookupCodeShipment,
	"orders_project_fk":               order.FieldProject,
	"orders_warehouse_fk":             order.FieldWarehouse,
	"orders_contact_fk":               order.FieldContact,
	"orders_carrier_fk":               order.FieldCarrier,
	"orders_service_type_fk":          order.FieldServiceType,
	"orders_shipping_address_fk":      "shipping_address",
	"orders_billing_address_fk":       "billing_address",
	"orders_order_type_fk":            "order_type",
	"orders_order_class_fk":           "order_class",
	"orders_status_fk":                "status",
	"order_lines_material_fk":         order.FieldLines,
	"order_lines_license_plate_fk":    order.FieldLines,
}

// constraintError traduce violaciones unique/FK del insert del pedido a un error por campo.
// Devuelve nil si err no es una violación conocida.
func constraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	field, ok := constraintFields[pgErr.ConstraintName]
	if !ok {
		return nil
	}
	switch {
	case isUniqueViolation(err):
		return domain.FieldError(field, fmt.Sprintf(order.MsgDuplicate, field))
	case isForeignKeyViolation(err):
		return domain.FieldError(field, order.MsgUnknownReference)
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func emptyIfNull(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
