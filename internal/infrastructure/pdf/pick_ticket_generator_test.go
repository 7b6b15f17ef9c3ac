package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Orders-api/internal/application/orders"
	"github.com/jhoicas/Orders-api/internal/domain/entity"
	"github.com/jhoicas/Orders-api/internal/infrastructure/pdf"
)

func TestGeneratePickTicket(t *testing.T) {
	o := &entity.Order{
		ID:                 "5f0c7a8e-1d2b-4c3d-9e8f-0a1b2c3d4e5f",
		LookupCodeOrder:    "ORD-001",
		LookupCodeShipment: "SHP-001",
		ExpectedDelivery:   time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:          time.Now(),
		Lines: []entity.OrderLine{
			{LineNumber: 1, MaterialID: "m1", Quantity: decimal.RequireFromString("2.00")},
		},
	}
	ticket := &orders.PickTicket{
		Order:         o,
		ProjectName:   "Proyecto P",
		WarehouseName: "Bodega W",
		Lines: []orders.PickTicketLine{
			{LineNumber: 1, MaterialCode: "WID-1", MaterialName: "Widget", Quantity: decimal.RequireFromString("2.00")},
		},
	}

	b, err := pdf.NewMarotoPickTicketGenerator().GeneratePickTicket(context.Background(), ticket)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestGeneratePickTicket_SinPedido(t *testing.T) {
	_, err := pdf.NewMarotoPickTicketGenerator().GeneratePickTicket(context.Background(), &orders.PickTicket{})
	assert.Error(t, err)
}
