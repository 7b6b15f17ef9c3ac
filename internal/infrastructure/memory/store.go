// Package memory implementa los puertos de repositorio en memoria para los tests.
// Las transacciones se serializan; las escrituras se aplican solo al confirmar.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/Orders-api/internal/application/orders"
	"github.com/jhoicas/Orders-api/internal/domain"
	"github.com/jhoicas/Orders-api/internal/domain/entity"
	"github.com/jhoicas/Orders-api/internal/domain/order"
	"github.com/jhoicas/Orders-api/internal/domain/repository"
)

var (
	_ repository.ProjectRepository   = (*ProjectRepo)(nil)
	_ repository.MaterialRepository  = (*MaterialRepo)(nil)
	_ repository.InventoryRepository = (*InventoryRepo)(nil)
	_ repository.CarrierRepository   = (*CarrierRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.OrderRepository     = (*OrderRepo)(nil)
	_ orders.TxRunner                = (*Store)(nil)
)

// Store datos en memoria compartidos por todos los repositorios.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	projects   map[string]entity.Project
	warehouses map[string]entity.Warehouse
	materials  map[string]entity.Material
	services   map[string]entity.CarrierService
	inventory  []entity.Inventory
	orders     []entity.Order

	projectWarehouses map[string]entity.IDSet
	projectCarriers   map[string]entity.IDSet
	projectServices   map[string]entity.IDSet
	projectContacts   map[string]entity.IDSet

	commitErr error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		projects:          map[string]entity.Project{},
		warehouses:        map[string]entity.Warehouse{},
		materials:         map[string]entity.Material{},
		services:          map[string]entity.CarrierService{},
		projectWarehouses: map[string]entity.IDSet{},
		projectCarriers:   map[string]entity.IDSet{},
		projectServices:   map[string]entity.IDSet{},
		projectContacts:   map[string]entity.IDSet{},
	}
}

// ── Carga de datos ───────────────────────────────────────────────────────────

// AddProject registra un proyecto.
func (s *Store) AddProject(p entity.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = p
}

// AddWarehouse registra una bodega.
func (s *Store) AddWarehouse(w entity.Warehouse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warehouses[w.ID] = w
}

// AddMaterial registra un material.
func (s *Store) AddMaterial(m entity.Material) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials[m.ID] = m
}

// AddCarrierService registra un servicio de transportadora.
func (s *Store) AddCarrierService(svc entity.CarrierService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = svc
}

// AddInventory agrega una fila de inventario. El orden de inserción define "la primera fila".
func (s *Store) AddInventory(inv entity.Inventory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory = append(s.inventory, inv)
}

// AssignWarehouses asigna bodegas al proyecto.
func (s *Store) AssignWarehouses(projectID string, ids ...string) {
	s.assign(s.projectWarehouses, projectID, ids)
}

// AssignCarriers asigna transportadoras al proyecto.
func (s *Store) AssignCarriers(projectID string, ids ...string) {
	s.assign(s.projectCarriers, projectID, ids)
}

// AssignServices asigna servicios de transportadora al proyecto.
func (s *Store) AssignServices(projectID string, ids ...string) {
	s.assign(s.projectServices, projectID, ids)
}

// AssignContacts asigna contactos al proyecto.
func (s *Store) AssignContacts(projectID string, ids ...string) {
	s.assign(s.projectContacts, projectID, ids)
}

func (s *Store) assign(m map[string]entity.IDSet, projectID string, ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := m[projectID]
	if !ok {
		set = entity.IDSet{}
		m[projectID] = set
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
}

// FailCommit hace que la próxima transacción falle al confirmar (simula caída de la BD).
func (s *Store) FailCommit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitErr = err
}

// OrderCount cantidad de pedidos persistidos.
func (s *Store) OrderCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// LineCount cantidad de líneas persistidas en todos los pedidos.
func (s *Store) LineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, o := range s.orders {
		n += len(o.Lines)
	}
	return n
}

// ── Repositorios ─────────────────────────────────────────────────────────────

// Projects repositorio de proyectos.
func (s *Store) Projects() *ProjectRepo { return &ProjectRepo{s: s} }

// Materials repositorio de materiales.
func (s *Store) Materials() *MaterialRepo { return &MaterialRepo{s: s} }

// Inventory repositorio de inventario.
func (s *Store) Inventory() *InventoryRepo { return &InventoryRepo{s: s} }

// Carriers repositorio de servicios de transportadora.
func (s *Store) Carriers() *CarrierRepo { return &CarrierRepo{s: s} }

// Warehouses repositorio de bodegas.
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{s: s} }

// Orders repositorio de pedidos (escrituras directas, sin tx).
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

// RunOrder serializa la transacción: las escrituras de fn quedan en staging y se aplican
// solo si fn no retorna error.
func (s *Store) RunOrder(ctx context.Context, fn func(
	inventoryRepo repository.InventoryRepository,
	orderRepo repository.OrderRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	staged := &OrderRepo{s: s, staged: &[]entity.Order{}}
	if err := fn(s.Inventory(), staged); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.commitErr != nil {
		err := s.commitErr
		s.commitErr = nil
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.orders = append(s.orders, *staged.staged...)
	return nil
}

// ProjectRepo implementación en memoria de ProjectRepository.
type ProjectRepo struct{ s *Store }

// GetByID obtiene un proyecto; nil si no existe.
func (r *ProjectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projects[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetScope obtiene el proyecto con copias de sus asignaciones.
func (r *ProjectRepo) GetScope(_ context.Context, projectID string) (*entity.ProjectScope, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projects[projectID]
	if !ok {
		return nil, nil
	}
	return &entity.ProjectScope{
		Project:    p,
		Warehouses: copySet(r.s.projectWarehouses[projectID]),
		Carriers:   copySet(r.s.projectCarriers[projectID]),
		Services:   copySet(r.s.projectServices[projectID]),
		Contacts:   copySet(r.s.projectContacts[projectID]),
	}, nil
}

func copySet(in entity.IDSet) entity.IDSet {
	out := make(entity.IDSet, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}

// MaterialRepo implementación en memoria de MaterialRepository.
type MaterialRepo struct{ s *Store }

// GetByIDs devuelve los materiales existentes indexados por ID.
func (r *MaterialRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]*entity.Material, len(ids))
	for _, id := range ids {
		if m, ok := r.s.materials[id]; ok {
			m := m
			out[id] = &m
		}
	}
	return out, nil
}

// InventoryRepo implementación en memoria de InventoryRepository.
type InventoryRepo struct{ s *Store }

// GetFirst primera fila (orden de inserción) para material+bodega; cantidad cero si no hay.
func (r *InventoryRepo) GetFirst(_ context.Context, materialID, warehouseID string) (*entity.Inventory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, inv := range r.s.inventory {
		if inv.MaterialID == materialID && inv.WarehouseID == warehouseID {
			inv := inv
			return &inv, nil
		}
	}
	return &entity.Inventory{MaterialID: materialID, WarehouseID: warehouseID}, nil
}

// GetFirstForUpdate en memoria el bloqueo lo da la serialización de RunOrder.
func (r *InventoryRepo) GetFirstForUpdate(ctx context.Context, materialID, warehouseID string) (*entity.Inventory, error) {
	return r.GetFirst(ctx, materialID, warehouseID)
}

// CarrierRepo implementación en memoria de CarrierRepository.
type CarrierRepo struct{ s *Store }

// GetServiceByID obtiene un servicio; nil si no existe.
func (r *CarrierRepo) GetServiceByID(_ context.Context, id string) (*entity.CarrierService, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	svc, ok := r.s.services[id]
	if !ok {
		return nil, nil
	}
	return &svc, nil
}

// WarehouseRepo implementación en memoria de WarehouseRepository.
type WarehouseRepo struct{ s *Store }

// GetByID obtiene una bodega; nil si no existe.
func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

// OrderRepo implementación en memoria de OrderRepository. Con staged != nil opera dentro de RunOrder.
type OrderRepo struct {
	s      *Store
	staged *[]entity.Order
}

// Create valida unicidad de lookup codes e inserta el pedido con sus líneas.
func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	if r.staged != nil {
		r.s.mu.RLock()
		err := r.checkUnique(o)
		r.s.mu.RUnlock()
		if err != nil {
			return err
		}
		*r.staged = append(*r.staged, cloneOrder(*o))
		return nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkUnique(o); err != nil {
		return err
	}
	r.s.orders = append(r.s.orders, cloneOrder(*o))
	return nil
}

func (r *OrderRepo) checkUnique(o *entity.Order) error {
	all := r.s.orders
	if r.staged != nil {
		all = append(append([]entity.Order{}, all...), *r.staged...)
	}
	errs := domain.FieldErrors{}
	for _, existing := range all {
		if existing.LookupCodeOrder == o.LookupCodeOrder {
			errs.Add(order.FieldLookupCodeOrder, fmt.Sprintf(order.MsgDuplicate, order.FieldLookupCodeOrder))
		}
		if existing.LookupCodeShipment == o.LookupCodeShipment {
			errs.Add(order.FieldLookupCodeShipment, fmt.Sprintf(order.MsgDuplicate, order.FieldLookupCodeShipment))
		}
	}
	if errs.HasErrors() {
		return domain.NewValidationError(errs)
	}
	return nil
}

// GetByIDForCustomer obtiene el pedido si su proyecto pertenece al cliente.
func (r *OrderRepo) GetByIDForCustomer(_ context.Context, id, customerID string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.orders {
		if o.ID == id && r.s.projects[o.ProjectID].CustomerID == customerID {
			c := cloneOrder(o)
			return &c, nil
		}
	}
	return nil, nil
}

// ListByCustomer pedidos del cliente, más recientes primero.
func (r *OrderRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Order, 0)
	for i := len(r.s.orders) - 1; i >= 0; i-- {
		o := r.s.orders[i]
		if r.s.projects[o.ProjectID].CustomerID != customerID {
			continue
		}
		c := cloneOrder(o)
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func cloneOrder(o entity.Order) entity.Order {
	lines := make([]entity.OrderLine, len(o.Lines))
	copy(lines, o.Lines)
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].LineNumber < lines[j].LineNumber })
	o.Lines = lines
	return o
}
