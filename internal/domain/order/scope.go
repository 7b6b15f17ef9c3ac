// Package order contiene las reglas puras de validación de pedidos: alcance del proyecto,
// suficiencia de inventario y la pasada completa que acumula errores por campo.
package order

import "github.com/jhoicas/Orders-api/internal/domain/entity"

// Campos del request a los que se asocian los errores.
const (
	FieldProject     = "project"
	FieldWarehouse   = "warehouse"
	FieldLines       = "lines"
	FieldCarrier     = "carrier"
	FieldServiceType = "service_type"
	FieldContact     = "contact"

	FieldLookupCodeOrder    = "lookup_code_order"
	FieldLookupCodeShipment = "lookup_code_shipment"
)

// Mensajes devueltos al cliente.
const (
	MsgProjectCustomer  = "You can only create orders for your assigned customer."
	MsgProjectNotFound  = "Selected project does not exist."
	MsgWarehouse        = "You can only use warehouses assigned to your project."
	MsgMaterial         = "You can only use materials assigned to your project."
	MsgMaterialNotFound = "Material %s does not exist."
	MsgInventory        = "Not enough inventory for %s. Requested: %s, Available: %s."
	MsgCarrier          = "You can only use carriers assigned to your project."
	MsgServiceCarrier   = "This service type is not available for the selected carrier."
	MsgServiceProject   = "This service type is not assigned to your project."
	MsgContact          = "You can only select contacts assigned to your project."
	MsgNoLines          = "At least one order line is required."

	// Violaciones detectadas al insertar (unique / foreign key).
	MsgDuplicate        = "An order with this %s already exists."
	MsgUnknownReference = "Invalid pk - object does not exist."
)

// CheckProject el proyecto del pedido debe ser del mismo cliente que el proyecto del usuario.
func CheckProject(scope *entity.ProjectScope, target *entity.Project) string {
	if target == nil {
		return MsgProjectNotFound
	}
	if target.CustomerID != scope.CustomerID() {
		return MsgProjectCustomer
	}
	return ""
}

// CheckWarehouse la bodega debe estar asignada al proyecto.
func CheckWarehouse(scope *entity.ProjectScope, warehouseID string) string {
	if !scope.Warehouses.Has(warehouseID) {
		return MsgWarehouse
	}
	return ""
}

// CheckMaterial el material debe pertenecer al proyecto del usuario.
func CheckMaterial(scope *entity.ProjectScope, material *entity.Material) string {
	if material.ProjectID != scope.Project.ID {
		return MsgMaterial
	}
	return ""
}

// CheckCarrier transportadora opcional; si viene debe estar asignada al proyecto.
func CheckCarrier(scope *entity.ProjectScope, carrierID string) string {
	if carrierID == "" {
		return ""
	}
	if !scope.Carriers.Has(carrierID) {
		return MsgCarrier
	}
	return ""
}

// CheckService el servicio debe ser de la transportadora elegida y estar asignado al proyecto.
// Devuelve a lo sumo un mensaje; la regla de transportadora se evalúa primero.
func CheckService(scope *entity.ProjectScope, carrierID string, service *entity.CarrierService) string {
	if service == nil {
		return ""
	}
	if carrierID == "" || service.CarrierID != carrierID {
		return MsgServiceCarrier
	}
	if !scope.Services.Has(service.ID) {
		return MsgServiceProject
	}
	return ""
}

// CheckContact contacto opcional; si viene debe estar asignado al proyecto.
func CheckContact(scope *entity.ProjectScope, contactID string) string {
	if contactID == "" {
		return ""
	}
	if !scope.Contacts.Has(contactID) {
		return MsgContact
	}
	return ""
}
