//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Orders-api/internal/application/dto"
	"github.com/jhoicas/Orders-api/internal/application/orders"
	"github.com/jhoicas/Orders-api/internal/domain"
	"github.com/jhoicas/Orders-api/internal/infrastructure/postgres"
)

// ── Fixtures ─────────────────────────────────────────────────────────────────

const (
	customerC  = "0c000000-0000-0000-0000-000000000001"
	customerX  = "0c000000-0000-0000-0000-000000000002"
	projectP   = "0a000000-0000-0000-0000-000000000001"
	projectX   = "0a000000-0000-0000-0000-000000000002"
	warehouseW = "0b000000-0000-0000-0000-000000000001"
	warehouse2 = "0b000000-0000-0000-0000-000000000002"
	materialM  = "0d000000-0000-0000-0000-000000000001"
	uomEA      = "3a000000-0000-0000-0000-000000000001"
	contactK   = "0e000000-0000-0000-0000-000000000001"
	carrierA   = "0f000000-0000-0000-0000-000000000001"
	serviceA   = "1a000000-0000-0000-0000-000000000001"
	userU      = "1b000000-0000-0000-0000-000000000001"
	statusOpen = "2a000000-0000-0000-0000-000000000001"
	typeOut    = "2b000000-0000-0000-0000-000000000001"
	classStd   = "2c000000-0000-0000-0000-000000000001"
	addrShip   = "2d000000-0000-0000-0000-000000000001"
	addrBill   = "2d000000-0000-0000-0000-000000000002"
)

const seedSQL = `
INSERT INTO customers (id, name, lookup_code) VALUES
	('0c000000-0000-0000-0000-000000000001', 'Cliente C', 'CUST-C'),
	('0c000000-0000-0000-0000-000000000002', 'Cliente X', 'CUST-X');
INSERT INTO projects (id, customer_id, name, lookup_code) VALUES
	('0a000000-0000-0000-0000-000000000001', '0c000000-0000-0000-0000-000000000001', 'Proyecto P', 'PRJ-P'),
	('0a000000-0000-0000-0000-000000000002', '0c000000-0000-0000-0000-000000000002', 'Proyecto X', 'PRJ-X');
INSERT INTO users (id, project_id, email) VALUES
	('1b000000-0000-0000-0000-000000000001', '0a000000-0000-0000-0000-000000000001', 'u@example.com');
INSERT INTO statuses (id, name) VALUES ('2a000000-0000-0000-0000-000000000001', 'Open');
INSERT INTO order_types (id, name) VALUES ('2b000000-0000-0000-0000-000000000001', 'Outbound');
INSERT INTO order_classes (id, name) VALUES ('2c000000-0000-0000-0000-000000000001', 'Standard');
INSERT INTO uoms (id, name, lookup_code) VALUES ('3a000000-0000-0000-0000-000000000001', 'Each', 'EA');
INSERT INTO warehouses (id, name, lookup_code) VALUES
	('0b000000-0000-0000-0000-000000000001', 'Bodega W', 'WH-W'),
	('0b000000-0000-0000-0000-000000000002', 'Bodega W2', 'WH-W2');
INSERT INTO carriers (id, name, lookup_code) VALUES ('0f000000-0000-0000-0000-000000000001', 'Carrier A', 'CAR-A');
INSERT INTO carrier_services (id, carrier_id, name, lookup_code) VALUES
	('1a000000-0000-0000-0000-000000000001', '0f000000-0000-0000-0000-000000000001', 'Express', 'SVC-A');
INSERT INTO contacts (id, first_name) VALUES ('0e000000-0000-0000-0000-000000000001', 'Kim');
INSERT INTO addresses (id, contact_id, line1, city) VALUES
	('2d000000-0000-0000-0000-000000000001', '0e000000-0000-0000-0000-000000000001', 'Calle 1', 'Bogotá'),
	('2d000000-0000-0000-0000-000000000002', '0e000000-0000-0000-0000-000000000001', 'Calle 2', 'Bogotá');
INSERT INTO project_warehouses VALUES ('0a000000-0000-0000-0000-000000000001', '0b000000-0000-0000-0000-000000000001');
INSERT INTO project_carriers VALUES ('0a000000-0000-0000-0000-000000000001', '0f000000-0000-0000-0000-000000000001');
INSERT INTO project_services VALUES ('0a000000-0000-0000-0000-000000000001', '1a000000-0000-0000-0000-000000000001');
INSERT INTO project_contacts VALUES ('0a000000-0000-0000-0000-000000000001', '0e000000-0000-0000-0000-000000000001');
INSERT INTO materials (id, project_id, uom_id, status_id, lookup_code, name) VALUES
	('0d000000-0000-0000-0000-000000000001', '0a000000-0000-0000-0000-000000000001',
	 '3a000000-0000-0000-0000-000000000001', '2a000000-0000-0000-0000-000000000001', 'WID-1', 'Widget');
INSERT INTO inventory (id, project_id, warehouse_id, material_id, license_plate_id, quantity, created_at) VALUES
	('4a000000-0000-0000-0000-000000000001', '0a000000-0000-0000-0000-000000000001',
	 '0b000000-0000-0000-0000-000000000001', '0d000000-0000-0000-0000-000000000001', 'LP-1', 10.00, now() - interval '1 day'),
	('4a000000-0000-0000-0000-000000000002', '0a000000-0000-0000-0000-000000000001',
	 '0b000000-0000-0000-0000-000000000001', '0d000000-0000-0000-0000-000000000001', 'LP-2', 500.00, now());
`

// setupDB levanta PostgreSQL, aplica las migraciones goose y carga los fixtures.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("orders_test"),
		tcPostgres.WithUsername("orders"),
		tcPostgres.WithPassword("orders"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, seedSQL)
	require.NoError(t, err)
	return pool
}

func newUseCase(pool *pgxpool.Pool) *orders.CreateOrderUseCase {
	return orders.NewCreateOrderUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewProjectRepository(pool),
		postgres.NewMaterialRepository(pool),
		postgres.NewInventoryRepository(pool),
		postgres.NewCarrierRepository(pool),
		postgres.NewOrderRepository(pool),
		nil, nil, nil,
	)
}

func request(code string, lines ...dto.OrderLineRequest) dto.CreateOrderRequest {
	when := time.Date(2030, 1, 15, 12, 0, 0, 0, time.UTC)
	return dto.CreateOrderRequest{
		LookupCodeOrder:      code,
		LookupCodeShipment:   "S-" + code,
		Status:               statusOpen,
		OrderType:            typeOut,
		OrderClass:           classStd,
		Project:              projectP,
		Warehouse:            warehouseW,
		Contact:              contactK,
		ShippingAddress:      addrShip,
		BillingAddress:       addrBill,
		Carrier:              carrierA,
		ServiceType:          serviceA,
		ExpectedDeliveryDate: &when,
		Lines:                lines,
	}
}

func qty(material, q string) dto.OrderLineRequest {
	return dto.OrderLineRequest{Material: material, Quantity: decimal.RequireFromString(q)}
}

func in(req dto.CreateOrderRequest) orders.CreateOrderInput {
	return orders.CreateOrderInput{UserID: userU, ProjectID: projectP, Request: req}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestPostgres_FlujoCompletoDePedidos(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	uc := newUseCase(pool)

	t.Run("alcance del proyecto", func(t *testing.T) {
		scope, err := postgres.NewProjectRepository(pool).GetScope(ctx, projectP)
		require.NoError(t, err)
		require.NotNil(t, scope)
		assert.Equal(t, customerC, scope.CustomerID())
		assert.True(t, scope.Warehouses.Has(warehouseW))
		assert.False(t, scope.Warehouses.Has(warehouse2))
		assert.True(t, scope.Services.Has(serviceA))

		missing, err := postgres.NewProjectRepository(pool).GetScope(ctx, "9f000000-0000-0000-0000-000000000009")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("inventario usa la fila más antigua", func(t *testing.T) {
		inv, err := postgres.NewInventoryRepository(pool).GetFirst(ctx, materialM, warehouseW)
		require.NoError(t, err)
		assert.True(t, inv.Quantity.Equal(decimal.NewFromInt(10)))

		none, err := postgres.NewInventoryRepository(pool).GetFirst(ctx, materialM, warehouse2)
		require.NoError(t, err)
		assert.True(t, none.Quantity.IsZero())
	})

	var createdID string
	t.Run("crea pedido con líneas ordenadas", func(t *testing.T) {
		res, err := uc.Create(ctx, in(request("ORD-1", qty(materialM, "4"), qty(materialM, "6.00"))))
		require.NoError(t, err)
		createdID = res.Order.ID
		require.Len(t, res.Order.Lines, 2)

		var n int
		require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM order_lines WHERE order_id = $1`, createdID).Scan(&n))
		assert.Equal(t, 2, n)
	})

	t.Run("suma por material supera la primera fila", func(t *testing.T) {
		_, err := uc.Create(ctx, in(request("ORD-2", qty(materialM, "6"), qty(materialM, "6"))))
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "lines")
	})

	t.Run("lookup code duplicado se traduce a error por campo", func(t *testing.T) {
		req := request("ORD-1", qty(materialM, "1"))
		req.LookupCodeShipment = "S-OTRO"
		_, err := uc.Create(ctx, in(req))
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{"An order with this lookup_code_order already exists."}, vErr.Fields["lookup_code_order"])
	})

	t.Run("referencia inexistente se traduce a error por campo", func(t *testing.T) {
		req := request("ORD-3", qty(materialM, "1"))
		req.Status = "9f000000-0000-0000-0000-000000000001"
		_, err := uc.Create(ctx, in(req))
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "status")

		var n int
		require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM orders WHERE lookup_code_order = 'ORD-3'`).Scan(&n))
		assert.Zero(t, n)
	})

	t.Run("lectura por cliente", func(t *testing.T) {
		repo := postgres.NewOrderRepository(pool)
		list, err := repo.ListByCustomer(ctx, customerC)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Len(t, list[0].Lines, 2)
		assert.Equal(t, 1, list[0].Lines[0].LineNumber)
		assert.True(t, list[0].Lines[1].Quantity.Equal(decimal.NewFromInt(6)))
		assert.Equal(t, carrierA, list[0].CarrierID)

		other, err := repo.ListByCustomer(ctx, customerX)
		require.NoError(t, err)
		assert.Empty(t, other)

		o, err := repo.GetByIDForCustomer(ctx, createdID, customerX)
		require.NoError(t, err)
		assert.Nil(t, o)

		q := orders.NewQueryOrdersUseCase(postgres.NewProjectRepository(pool), repo)
		_, err = q.Get(ctx, projectX, createdID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
