package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/Orders-api/internal/domain"
	"github.com/jhoicas/Orders-api/internal/domain/repository"
)

// PickTicketUseCase genera la hoja de alistamiento (PDF) de un pedido para el personal de bodega.
type PickTicketUseCase struct {
	projectRepo   repository.ProjectRepository
	orderRepo     repository.OrderRepository
	materialRepo  repository.MaterialRepository
	warehouseRepo repository.WarehouseRepository
	generator     PickTicketGenerator
}

// NewPickTicketUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPickTicketUseCase(
	projectRepo repository.ProjectRepository,
	orderRepo repository.OrderRepository,
	materialRepo repository.MaterialRepository,
	warehouseRepo repository.WarehouseRepository,
	generator PickTicketGenerator,
) *PickTicketUseCase {
	return &PickTicketUseCase{
		projectRepo:   projectRepo,
		orderRepo:     orderRepo,
		materialRepo:  materialRepo,
		warehouseRepo: warehouseRepo,
		generator:     generator,
	}
}

// Download carga el pedido (mismo alcance que GET /orders/:id) y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el pedido no existe o es de otro cliente.
func (uc *PickTicketUseCase) Download(ctx context.Context, projectID, orderID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Alcance ────────────────────────────────────────────────────────────
	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, "", fmt.Errorf("pick ticket: obtener proyecto: %w", err)
	}
	if project == nil {
		return nil, "", domain.ErrForbidden
	}

	// ── 2. Pedido ─────────────────────────────────────────────────────────────
	o, err := uc.orderRepo.GetByIDForCustomer(ctx, orderID, project.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pick ticket: obtener pedido: %w", err)
	}
	if o == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 3. Datos para el documento ────────────────────────────────────────────
	ticket := &PickTicket{Order: o, Lines: make([]PickTicketLine, 0, len(o.Lines))}
	if o.ProjectID == project.ID {
		ticket.ProjectName = project.Name
	} else if p, err := uc.projectRepo.GetByID(ctx, o.ProjectID); err == nil && p != nil {
		ticket.ProjectName = p.Name
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, o.WarehouseID)
	if err != nil {
		return nil, "", fmt.Errorf("pick ticket: obtener bodega: %w", err)
	}
	if wh != nil {
		ticket.WarehouseName = wh.Name
	}

	ids := make([]string, 0, len(o.Lines))
	for _, l := range o.Lines {
		ids = append(ids, l.MaterialID)
	}
	materials, err := uc.materialRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, "", fmt.Errorf("pick ticket: obtener materiales: %w", err)
	}
	for _, l := range o.Lines {
		line := PickTicketLine{
			LineNumber:   l.LineNumber,
			Quantity:     l.Quantity,
			Lot:          l.Lot,
			SerialNumber: l.SerialNumber,
			Notes:        l.Notes,
		}
		if m, ok := materials[l.MaterialID]; ok {
			line.MaterialCode = m.LookupCode
			line.MaterialName = m.Name
		}
		ticket.Lines = append(ticket.Lines, line)
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GeneratePickTicket(ctx, ticket)
	if err != nil {
		return nil, "", fmt.Errorf("pick ticket: generar PDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("pick-ticket-%s.pdf", o.LookupCodeOrder), nil
}
