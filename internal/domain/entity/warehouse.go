package entity

// Warehouse bodega desde la que se despachan pedidos; se asigna a proyectos.
type Warehouse struct {
	ID         string
	Name       string
	LookupCode string
}
