package orders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Orders-api/internal/application/orders"
	"github.com/jhoicas/Orders-api/internal/domain"
	"github.com/jhoicas/Orders-api/internal/domain/entity"
)

func TestQuery_RoundTripYAlcancePorCliente(t *testing.T) {
	s := seedStore()
	// Segundo proyecto del mismo cliente: sus pedidos también son visibles.
	s.AddProject(entity.Project{ID: "p-hermano", CustomerID: customerC})
	ctx := context.Background()

	created, err := newCreateUseCase(s, nil, nil).Create(ctx, input(validRequest(line(materialM, "2"), line(materialM, "3"))))
	require.NoError(t, err)

	q := orders.NewQueryOrdersUseCase(s.Projects(), s.Orders())

	list, err := q.List(ctx, projectP)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, created.Order.ID, list.Items[0].ID)
	require.Len(t, list.Items[0].Lines, 2)
	assert.Equal(t, 1, list.Items[0].Lines[0].LineNumber)
	assert.Equal(t, 2, list.Items[0].Lines[1].LineNumber)

	sibling, err := q.List(ctx, "p-hermano")
	require.NoError(t, err)
	assert.Equal(t, 1, sibling.Total)

	// Otro cliente no lo ve.
	other, err := q.List(ctx, projectX)
	require.NoError(t, err)
	assert.Equal(t, 0, other.Total)
	assert.Empty(t, other.Items)

	got, err := q.Get(ctx, projectP, created.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Order.LookupCodeOrder, got.LookupCodeOrder)

	_, err = q.Get(ctx, projectX, created.Order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuery_ProyectoInexistente(t *testing.T) {
	s := seedStore()
	q := orders.NewQueryOrdersUseCase(s.Projects(), s.Orders())

	_, err := q.List(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ─────────────────────────────────────────────────────────────────────────────
// Pick ticket
// ─────────────────────────────────────────────────────────────────────────────

type fakeGenerator struct {
	got *orders.PickTicket
}

func (f *fakeGenerator) GeneratePickTicket(_ context.Context, ticket *orders.PickTicket) ([]byte, error) {
	f.got = ticket
	return []byte("%PDF-fake"), nil
}

func TestPickTicket_Download(t *testing.T) {
	s := seedStore()
	ctx := context.Background()
	created, err := newCreateUseCase(s, nil, nil).Create(ctx, input(validRequest(line(materialM, "2"))))
	require.NoError(t, err)

	gen := &fakeGenerator{}
	uc := orders.NewPickTicketUseCase(s.Projects(), s.Orders(), s.Materials(), s.Warehouses(), gen)

	pdf, filename, err := uc.Download(ctx, projectP, created.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "pick-ticket-ORD-001.pdf", filename)

	require.NotNil(t, gen.got)
	assert.Equal(t, "Proyecto P", gen.got.ProjectName)
	assert.Equal(t, "Bodega W", gen.got.WarehouseName)
	require.Len(t, gen.got.Lines, 1)
	assert.Equal(t, "WID-1", gen.got.Lines[0].MaterialCode)
	assert.Equal(t, "Widget", gen.got.Lines[0].MaterialName)

	_, _, err = uc.Download(ctx, projectX, created.Order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
