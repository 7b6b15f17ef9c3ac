package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Orders-api/internal/domain/entity"
	"github.com/jhoicas/Orders-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera y luego cada línea. Debe ejecutarse dentro de TxRunner.RunOrder.
// Violaciones unique/FK conocidas se devuelven como *domain.ValidationError.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, project_id, warehouse_id, contact_id, carrier_id, service_type_id,
			shipping_address_id, billing_address_id, order_type_id, order_class_id, status_id,
			lookup_code_order, lookup_code_shipment, expected_delivery_date, notes, created_by_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.ProjectID, o.WarehouseID, nullIfEmpty(o.ContactID), nullIfEmpty(o.CarrierID), nullIfEmpty(o.ServiceTypeID),
		o.ShippingAddressID, o.BillingAddressID, o.OrderTypeID, o.OrderClassID, o.StatusID,
		o.LookupCodeOrder, o.LookupCodeShipment, o.ExpectedDelivery, o.Notes, o.CreatedByUserID, o.CreatedAt,
	)
	if err != nil {
		if cErr := constraintError(err); cErr != nil {
			return cErr
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Lines {
		if err := r.createLine(ctx, &o.Lines[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepo) createLine(ctx context.Context, l *entity.OrderLine) error {
	query := `
		INSERT INTO order_lines (id, order_id, line_number, material_id, quantity, license_plate_id,
			serial_number, lot, vendor_lot, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.OrderID, l.LineNumber, l.MaterialID, l.Quantity, nullIfEmpty(l.LicensePlateID),
		l.SerialNumber, l.Lot, l.VendorLot, l.Notes,
	)
	if err != nil {
		if cErr := constraintError(err); cErr != nil {
			return cErr
		}
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

const selectOrder = `
	SELECT o.id, o.project_id, o.warehouse_id, o.contact_id, o.carrier_id, o.service_type_id,
	       o.shipping_address_id, o.billing_address_id, o.order_type_id, o.order_class_id, o.status_id,
	       o.lookup_code_order, o.lookup_code_shipment, o.expected_delivery_date, o.notes,
	       o.created_by_user_id, o.created_at
	FROM orders o
	JOIN projects p ON p.id = o.project_id`

// GetByIDForCustomer obtiene el pedido con sus líneas si pertenece al cliente.
func (r *OrderRepo) GetByIDForCustomer(ctx context.Context, id, customerID string) (*entity.Order, error) {
	query := selectOrder + ` WHERE o.id = $1 AND p.customer_id = $2`
	o, err := scanOrder(r.q.QueryRow(ctx, query, id, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadLines(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// ListByCustomer lista los pedidos del cliente (más recientes primero) con sus líneas.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Order, error) {
	query := selectOrder + ` WHERE p.customer_id = $1 ORDER BY o.created_at DESC, o.id`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	rows.Close()

	if err := r.loadLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadLines carga las líneas de todos los pedidos en una consulta, en orden de envío.
func (r *OrderRepo) loadLines(ctx context.Context, list []*entity.Order) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(list))
	ids := make([]string, 0, len(list))
	for _, o := range list {
		o.Lines = []entity.OrderLine{}
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	query := `
		SELECT id, order_id, line_number, material_id, quantity, license_plate_id,
		       serial_number, lot, vendor_lot, notes
		FROM order_lines WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, line_number`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.OrderLine
		var licensePlate *string
		if err := rows.Scan(&l.ID, &l.OrderID, &l.LineNumber, &l.MaterialID, &l.Quantity, &licensePlate,
			&l.SerialNumber, &l.Lot, &l.VendorLot, &l.Notes); err != nil {
			return fmt.Errorf("scan order line: %w", err)
		}
		l.LicensePlateID = emptyIfNull(licensePlate)
		if o, ok := byID[l.OrderID]; ok {
			o.Lines = append(o.Lines, l)
		}
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var contact, carrier, service *string
	err := row.Scan(
		&o.ID, &o.ProjectID, &o.WarehouseID, &contact, &carrier, &service,
		&o.ShippingAddressID, &o.BillingAddressID, &o.OrderTypeID, &o.OrderClassID, &o.StatusID,
		&o.LookupCodeOrder, &o.LookupCodeShipment, &o.ExpectedDelivery, &o.Notes,
		&o.CreatedByUserID, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.ContactID = emptyIfNull(contact)
	o.CarrierID = emptyIfNull(carrier)
	o.ServiceTypeID = emptyIfNull(service)
	return &o, nil
}
