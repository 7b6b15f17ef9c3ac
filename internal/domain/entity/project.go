package entity

import "time"

// Project unidad de tenencia: pertenece a un Customer y agrupa materiales, inventario y permisos de pedido.
type Project struct {
	ID           string
	CustomerID   string
	Name         string
	LookupCode   string
	OrdersPrefix string
	CreatedAt    time.Time
}

// IDSet conjunto de IDs (relaciones many-to-many del proyecto).
type IDSet map[string]struct{}

// NewIDSet construye el conjunto a partir de una lista de IDs.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has indica si el ID pertenece al conjunto.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// ProjectScope proyecto del usuario que actúa junto con sus asignaciones
// (project_warehouses, project_carriers, project_services, project_contacts).
type ProjectScope struct {
	Project    Project
	Warehouses IDSet
	Carriers   IDSet
	Services   IDSet
	Contacts   IDSet
}

// CustomerID atajo al cliente del proyecto.
func (s *ProjectScope) CustomerID() string { return s.Project.CustomerID }
