package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/Orders-api/internal/application/dto"
	"github.com/jhoicas/Orders-api/internal/domain"
	"github.com/jhoicas/Orders-api/internal/domain/repository"
)

// QueryOrdersUseCase lecturas de pedidos filtradas por el cliente del proyecto del usuario.
// El filtro se deriva siempre del token, nunca de parámetros del cliente.
type QueryOrdersUseCase struct {
	projectRepo repository.ProjectRepository
	orderRepo   repository.OrderRepository
}

// NewQueryOrdersUseCase construye el caso de uso.
func NewQueryOrdersUseCase(projectRepo repository.ProjectRepository, orderRepo repository.OrderRepository) *QueryOrdersUseCase {
	return &QueryOrdersUseCase{projectRepo: projectRepo, orderRepo: orderRepo}
}

// List devuelve los pedidos de todos los proyectos del cliente, más recientes primero.
func (uc *QueryOrdersUseCase) List(ctx context.Context, projectID string) (*dto.OrderListResponse, error) {
	customerID, err := uc.customerOf(ctx, projectID)
	if err != nil {
		return nil, err
	}
	list, err := uc.orderRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}
	out := &dto.OrderListResponse{Items: make([]dto.OrderResponse, 0, len(list)), Total: len(list)}
	for _, o := range list {
		out.Items = append(out.Items, *ToOrderResponse(o))
	}
	return out, nil
}

// Get devuelve un pedido del cliente; domain.ErrNotFound si no existe o es de otro cliente.
func (uc *QueryOrdersUseCase) Get(ctx context.Context, projectID, orderID string) (*dto.OrderResponse, error) {
	customerID, err := uc.customerOf(ctx, projectID)
	if err != nil {
		return nil, err
	}
	o, err := uc.orderRepo.GetByIDForCustomer(ctx, orderID, customerID)
	if err != nil {
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return ToOrderResponse(o), nil
}

func (uc *QueryOrdersUseCase) customerOf(ctx context.Context, projectID string) (string, error) {
	p, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return "", fmt.Errorf("cargar proyecto: %w", err)
	}
	if p == nil {
		return "", domain.ErrForbidden
	}
	return p.CustomerID, nil
}
