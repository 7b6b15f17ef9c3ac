package entity

// Carrier transportadora asignable a proyectos.
type Carrier struct {
	ID         string
	Name       string
	LookupCode string
}

// CarrierService opción de envío ofrecida por una transportadora (service_type del pedido).
type CarrierService struct {
	ID         string
	CarrierID  string
	Name       string
	LookupCode string
}
