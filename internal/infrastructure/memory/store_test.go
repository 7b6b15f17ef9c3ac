package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Orders-api/internal/domain"
	"github.com/jhoicas/Orders-api/internal/domain/entity"
	"github.com/jhoicas/Orders-api/internal/domain/repository"
	"github.com/jhoicas/Orders-api/internal/infrastructure/memory"
)

func newOrder(id, code string, created time.Time) *entity.Order {
	return &entity.Order{
		ID: id, ProjectID: "p1", WarehouseID: "w1",
		LookupCodeOrder: code, LookupCodeShipment: "S-" + code,
		CreatedAt: created,
		Lines: []entity.OrderLine{
			{ID: id + "-2", LineNumber: 2, MaterialID: "m2", Quantity: decimal.NewFromInt(1)},
			{ID: id + "-1", LineNumber: 1, MaterialID: "m1", Quantity: decimal.NewFromInt(3)},
		},
	}
}

func TestInventory_PrimeraFilaYFaltanteCero(t *testing.T) {
	s := memory.NewStore()
	s.AddInventory(entity.Inventory{ID: "i1", MaterialID: "m1", WarehouseID: "w1", Quantity: decimal.NewFromInt(5)})
	s.AddInventory(entity.Inventory{ID: "i2", MaterialID: "m1", WarehouseID: "w1", Quantity: decimal.NewFromInt(50)})
	ctx := context.Background()

	inv, err := s.Inventory().GetFirst(ctx, "m1", "w1")
	require.NoError(t, err)
	assert.Equal(t, "i1", inv.ID)

	inv, err = s.Inventory().GetFirstForUpdate(ctx, "m1", "w2")
	require.NoError(t, err)
	assert.Empty(t, inv.ID)
	assert.True(t, inv.Quantity.IsZero())
}

func TestRunOrder_RollbackNoPersiste(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	err := s.RunOrder(ctx, func(_ repository.InventoryRepository, orders repository.OrderRepository) error {
		require.NoError(t, orders.Create(ctx, newOrder("o1", "A1", time.Now())))
		return errors.New("fallo después de insertar")
	})
	require.Error(t, err)
	assert.Equal(t, 0, s.OrderCount())

	s.FailCommit(errors.New("db caída"))
	err = s.RunOrder(ctx, func(_ repository.InventoryRepository, orders repository.OrderRepository) error {
		return orders.Create(ctx, newOrder("o2", "A2", time.Now()))
	})
	require.Error(t, err)
	assert.Equal(t, 0, s.OrderCount())
	assert.Equal(t, 0, s.LineCount())
}

func TestOrders_UnicidadYAlcancePorCliente(t *testing.T) {
	s := memory.NewStore()
	s.AddProject(entity.Project{ID: "p1", CustomerID: "c1"})
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.Orders().Create(ctx, newOrder("o1", "A1", now)))
	require.NoError(t, s.Orders().Create(ctx, newOrder("o2", "A2", now.Add(time.Minute))))

	err := s.Orders().Create(ctx, newOrder("o3", "A1", now))
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "lookup_code_order")

	list, err := s.Orders().ListByCustomer(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "o2", list[0].ID)
	assert.Equal(t, 1, list[0].Lines[0].LineNumber)

	other, err := s.Orders().ListByCustomer(ctx, "c2")
	require.NoError(t, err)
	assert.Empty(t, other)

	o, err := s.Orders().GetByIDForCustomer(ctx, "o1", "c2")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestIdempotencyStore(t *testing.T) {
	st := memory.NewIdempotencyStore()
	ctx := context.Background()

	id, err := st.Reserve(ctx, "u:k")
	require.NoError(t, err)
	assert.Empty(t, id)

	_, err = st.Reserve(ctx, "u:k")
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, st.Complete(ctx, "u:k", "o1"))
	id, err = st.Reserve(ctx, "u:k")
	require.NoError(t, err)
	assert.Equal(t, "o1", id)

	require.NoError(t, st.Release(ctx, "u:k"))
	id, err = st.Reserve(ctx, "u:k")
	require.NoError(t, err)
	assert.Empty(t, id)
}
