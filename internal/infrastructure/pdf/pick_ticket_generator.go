// Package pdf genera la hoja de alistamiento (pick ticket) de un pedido.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proyecto + Bodega   │  N° Pedido + Envío + Fecha   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ENTREGA: fecha esperada + notas del pedido                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Código | Material | Lote | Serie | Cantidad     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL de unidades + QR con el ID del pedido                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Orders-api/internal/application/orders"
)

var _ orders.PickTicketGenerator = (*MarotoPickTicketGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPickTicketGenerator implementa orders.PickTicketGenerator usando Maroto v2.
type MarotoPickTicketGenerator struct{}

// NewMarotoPickTicketGenerator construye el generador.
func NewMarotoPickTicketGenerator() *MarotoPickTicketGenerator { return &MarotoPickTicketGenerator{} }

// GeneratePickTicket genera el PDF y devuelve sus bytes.
func (g *MarotoPickTicketGenerator) GeneratePickTicket(_ context.Context, t *orders.PickTicket) ([]byte, error) {
	if t == nil || t.Order == nil {
		return nil, fmt.Errorf("pdf: pick ticket sin pedido")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Pick ticket "+t.Order.LookupCodeOrder, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(deliveryRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(t.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(t))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: proyecto y bodega (izq), lookup codes y fecha de creación (der).
func headerRow(t *orders.PickTicket) core.Row {
	o := t.Order
	return row.New(20).Add(
		col.New(7).Add(
			text.New(nonEmpty(t.ProjectName, o.ProjectID), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Bodega: "+nonEmpty(t.WarehouseName, o.WarehouseID), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("HOJA DE ALISTAMIENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(o.LookupCodeOrder, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Envío: "+o.LookupCodeShipment, props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
			text.New("Creado: "+o.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 16, Color: colorGray,
			}),
		),
	)
}

// deliveryRow: fecha esperada y notas.
func deliveryRow(t *orders.PickTicket) core.Row {
	o := t.Order
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ENTREGA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha esperada: "+o.ExpectedDelivery.Format("02/01/2006"), props.Text{
				Size: 9, Top: 6,
			}),
			text.New("Notas: "+nonEmpty(o.Notes, "-"), props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("#", 1, align.Center),
		h("Código", 2, align.Left),
		h("Material", 4, align.Left),
		h("Lote", 2, align.Left),
		h("Serie", 1, align.Left),
		h("Cantidad", 2, align.Right),
	)
}

// tableLineRows: una fila por línea, en orden de envío.
func tableLineRows(lines []orders.PickTicketLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.LineNumber), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(nonEmpty(l.MaterialCode, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(nonEmpty(l.MaterialName, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(l.Lot, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(nonEmpty(l.SerialNumber, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.Quantity.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// footerRow: total de unidades y QR con el ID del pedido para escanear en bodega.
func footerRow(t *orders.PickTicket) core.Row {
	return row.New(35).Add(
		col.New(8).Add(
			text.New(fmt.Sprintf("Líneas: %d", len(t.Lines)), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 4,
			}),
			text.New("Total unidades: "+t.Order.TotalQuantity().StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 10, Color: colorPrimary,
			}),
		),
		col.New(4).Add(code.NewQr(t.Order.ID, props.Rect{Percent: 90, Center: true})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
