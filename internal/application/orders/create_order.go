package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Orders-api/internal/application/dto"
	"github.com/jhoicas/Orders-api/internal/domain"
	"github.com/jhoicas/Orders-api/internal/domain/entity"
	"github.com/jhoicas/Orders-api/internal/domain/order"
	"github.com/jhoicas/Orders-api/internal/domain/repository"
	"github.com/jhoicas/Orders-api/pkg/logger"
)

// CreateOrderUseCase valida un pedido contra el alcance del proyecto del usuario y lo persiste
// junto con sus líneas en una sola transacción.
type CreateOrderUseCase struct {
	txRunner      TxRunner
	projectRepo   repository.ProjectRepository
	materialRepo  repository.MaterialRepository
	inventoryRepo repository.InventoryRepository
	carrierRepo   repository.CarrierRepository
	orderRepo     repository.OrderRepository
	idempotency   IdempotencyStore
	metrics       MetricsRecorder
	log           *logger.Logger
	now           func() time.Time
}

// NewCreateOrderUseCase construye el caso de uso. idempotency y metrics pueden ser nil.
func NewCreateOrderUseCase(
	txRunner TxRunner,
	projectRepo repository.ProjectRepository,
	materialRepo repository.MaterialRepository,
	inventoryRepo repository.InventoryRepository,
	carrierRepo repository.CarrierRepository,
	orderRepo repository.OrderRepository,
	idempotency IdempotencyStore,
	metrics MetricsRecorder,
	log *logger.Logger,
) *CreateOrderUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CreateOrderUseCase{
		txRunner:      txRunner,
		projectRepo:   projectRepo,
		materialRepo:  materialRepo,
		inventoryRepo: inventoryRepo,
		carrierRepo:   carrierRepo,
		orderRepo:     orderRepo,
		idempotency:   idempotency,
		metrics:       metrics,
		log:           log.Named("orders"),
		now:           time.Now,
	}
}

// CreateOrderInput usuario y proyecto que actúan (del token), clave de idempotencia opcional y el body.
type CreateOrderInput struct {
	UserID         string
	ProjectID      string
	IdempotencyKey string
	Request        dto.CreateOrderRequest
}

// CreateOrderResult pedido creado. Replayed indica que se devolvió un pedido ya creado con la misma clave.
type CreateOrderResult struct {
	Order    *dto.OrderResponse
	Replayed bool
}

// Create ejecuta Validating -> Committing. Cualquier fallo de validación se reporta antes de abrir
// la transacción; dentro de la tx se bloquean las filas de inventario y se vuelve a verificar.
//
// Retorna:
//   - domain.ErrForbidden         si el proyecto del body no es el del usuario.
//   - *domain.ValidationError     con errores por campo (errors.Is(err, domain.ErrInvalidInput)).
//   - domain.ErrConflict          si la misma Idempotency-Key sigue en curso.
func (uc *CreateOrderUseCase) Create(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error) {
	if in.Request.Project != in.ProjectID {
		return nil, domain.ErrForbidden
	}

	if in.IdempotencyKey == "" || uc.idempotency == nil {
		created, err := uc.create(ctx, in)
		if err != nil {
			return nil, err
		}
		return &CreateOrderResult{Order: created}, nil
	}

	key := in.UserID + ":" + in.IdempotencyKey
	existingID, err := uc.idempotency.Reserve(ctx, key)
	if err != nil {
		return nil, err
	}
	if existingID != "" {
		scope, err := uc.loadScope(ctx, in.ProjectID)
		if err != nil {
			return nil, err
		}
		o, err := uc.orderRepo.GetByIDForCustomer(ctx, existingID, scope.CustomerID())
		if err != nil {
			return nil, err
		}
		if o == nil {
			return nil, domain.ErrNotFound
		}
		uc.log.Info().Str("order_id", o.ID).Str("idempotency_key", in.IdempotencyKey).Msg("pedido repetido, se devuelve el existente")
		return &CreateOrderResult{Order: ToOrderResponse(o), Replayed: true}, nil
	}

	created, err := uc.create(ctx, in)
	if err != nil {
		if relErr := uc.idempotency.Release(ctx, key); relErr != nil {
			uc.log.Warn().Err(relErr).Str("idempotency_key", in.IdempotencyKey).Msg("no se pudo liberar la clave de idempotencia")
		}
		return nil, err
	}
	if err := uc.idempotency.Complete(ctx, key, created.ID); err != nil {
		uc.log.Warn().Err(err).Str("order_id", created.ID).Msg("no se pudo registrar la clave de idempotencia")
	}
	return &CreateOrderResult{Order: created}, nil
}

func (uc *CreateOrderUseCase) create(ctx context.Context, in CreateOrderInput) (*dto.OrderResponse, error) {
	scope, err := uc.loadScope(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	draft := toDraft(in.Request)
	refs, err := uc.loadReferences(ctx, scope, draft)
	if err != nil {
		return nil, err
	}

	// ── Validating ────────────────────────────────────────────────────────────
	if errs := order.Validate(scope, draft, refs); errs.HasErrors() {
		return nil, uc.reject(in, errs)
	}

	// ── Committing ────────────────────────────────────────────────────────────
	o := uc.buildOrder(in)
	err = uc.txRunner.RunOrder(ctx, func(
		inventoryRepo repository.InventoryRepository,
		orderRepo repository.OrderRepository,
	) error {
		errs, err := recheckInventory(ctx, inventoryRepo, draft, refs.Materials)
		if err != nil {
			return err
		}
		if errs.HasErrors() {
			return domain.NewValidationError(errs)
		}
		return orderRepo.Create(ctx, o)
	})
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return nil, uc.reject(in, vErr.Fields)
		}
		return nil, fmt.Errorf("crear pedido: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.OrderCreated(len(o.Lines))
	}
	uc.log.Info().
		Str("order_id", o.ID).
		Str("lookup_code_order", o.LookupCodeOrder).
		Str("project_id", o.ProjectID).
		Int("lines", len(o.Lines)).
		Msg("pedido creado")

	return ToOrderResponse(o), nil
}

func (uc *CreateOrderUseCase) loadScope(ctx context.Context, projectID string) (*entity.ProjectScope, error) {
	scope, err := uc.projectRepo.GetScope(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("cargar proyecto: %w", err)
	}
	if scope == nil {
		return nil, domain.ErrForbidden
	}
	return scope, nil
}

// loadReferences carga las entidades referenciadas por el draft. Solo lectura, fuera de tx.
func (uc *CreateOrderUseCase) loadReferences(ctx context.Context, scope *entity.ProjectScope, d order.Draft) (order.References, error) {
	refs := order.References{Available: map[string]decimal.Decimal{}}

	if d.ProjectID == scope.Project.ID {
		p := scope.Project
		refs.Project = &p
	} else {
		p, err := uc.projectRepo.GetByID(ctx, d.ProjectID)
		if err != nil {
			return refs, fmt.Errorf("cargar proyecto del pedido: %w", err)
		}
		refs.Project = p
	}

	materialIDs := uniqueMaterialIDs(d.Lines)
	materials, err := uc.materialRepo.GetByIDs(ctx, materialIDs)
	if err != nil {
		return refs, fmt.Errorf("cargar materiales: %w", err)
	}
	refs.Materials = materials

	for _, id := range materialIDs {
		if _, ok := materials[id]; !ok {
			continue
		}
		inv, err := uc.inventoryRepo.GetFirst(ctx, id, d.WarehouseID)
		if err != nil {
			return refs, fmt.Errorf("consultar inventario: %w", err)
		}
		refs.Available[id] = inv.Quantity
	}

	if d.ServiceTypeID != "" {
		svc, err := uc.carrierRepo.GetServiceByID(ctx, d.ServiceTypeID)
		if err != nil {
			return refs, fmt.Errorf("cargar servicio: %w", err)
		}
		refs.Service = svc
	}
	return refs, nil
}

// recheckInventory bloquea la primera fila de cada material (orden por ID para evitar deadlocks)
// y vuelve a comparar lo solicitado contra lo disponible.
func recheckInventory(
	ctx context.Context,
	inventoryRepo repository.InventoryRepository,
	d order.Draft,
	materials map[string]*entity.Material,
) (domain.FieldErrors, error) {
	errs := domain.FieldErrors{}
	demand := order.SumByMaterial(d.Lines)
	locked := make(map[string]decimal.Decimal, len(demand))

	ids := make([]string, 0, len(demand))
	for _, dem := range demand {
		ids = append(ids, dem.MaterialID)
	}
	sort.Strings(ids)
	for _, id := range ids {
		inv, err := inventoryRepo.GetFirstForUpdate(ctx, id, d.WarehouseID)
		if err != nil {
			return nil, fmt.Errorf("bloquear inventario: %w", err)
		}
		locked[id] = inv.Quantity
	}

	for _, dem := range demand {
		errs.Add(order.FieldLines, order.CheckInventory(materials[dem.MaterialID].Name, dem.Quantity, locked[dem.MaterialID]))
	}
	return errs, nil
}

func (uc *CreateOrderUseCase) reject(in CreateOrderInput, errs domain.FieldErrors) error {
	fields := errs.Fields()
	if uc.metrics != nil {
		uc.metrics.OrderRejected(fields)
	}
	uc.log.Warn().
		Str("user_id", in.UserID).
		Str("project_id", in.ProjectID).
		Strs("fields", fields).
		Msg("pedido rechazado por validación")
	return domain.NewValidationError(errs)
}

func (uc *CreateOrderUseCase) buildOrder(in CreateOrderInput) *entity.Order {
	req := in.Request
	now := uc.now().UTC()
	o := &entity.Order{
		ID:                 uuid.New().String(),
		ProjectID:          req.Project,
		WarehouseID:        req.Warehouse,
		ContactID:          req.Contact,
		CarrierID:          req.Carrier,
		ServiceTypeID:      req.ServiceType,
		ShippingAddressID:  req.ShippingAddress,
		BillingAddressID:   req.BillingAddress,
		OrderTypeID:        req.OrderType,
		OrderClassID:       req.OrderClass,
		StatusID:           req.Status,
		LookupCodeOrder:    req.LookupCodeOrder,
		LookupCodeShipment: req.LookupCodeShipment,
		Notes:              req.Notes,
		CreatedByUserID:    in.UserID,
		CreatedAt:          now,
		Lines:              make([]entity.OrderLine, 0, len(req.Lines)),
	}
	if req.ExpectedDeliveryDate != nil {
		o.ExpectedDelivery = req.ExpectedDeliveryDate.UTC()
	}
	for i, l := range req.Lines {
		o.Lines = append(o.Lines, entity.OrderLine{
			ID:             uuid.New().String(),
			OrderID:        o.ID,
			LineNumber:     i + 1,
			MaterialID:     l.Material,
			Quantity:       l.Quantity,
			LicensePlateID: l.LicensePlate,
			SerialNumber:   l.SerialNumber,
			Lot:            l.Lot,
			VendorLot:      l.VendorLot,
			Notes:          l.Notes,
		})
	}
	return o
}

func toDraft(req dto.CreateOrderRequest) order.Draft {
	d := order.Draft{
		ProjectID:     req.Project,
		WarehouseID:   req.Warehouse,
		CarrierID:     req.Carrier,
		ServiceTypeID: req.ServiceType,
		ContactID:     req.Contact,
		Lines:         make([]order.DraftLine, 0, len(req.Lines)),
	}
	for _, l := range req.Lines {
		d.Lines = append(d.Lines, order.DraftLine{MaterialID: l.Material, Quantity: l.Quantity})
	}
	return d
}

func uniqueMaterialIDs(lines []order.DraftLine) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.MaterialID]; ok {
			continue
		}
		seen[l.MaterialID] = struct{}{}
		out = append(out, l.MaterialID)
	}
	return out
}
