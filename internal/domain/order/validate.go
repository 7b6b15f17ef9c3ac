package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Orders-api/internal/domain"
	"github.com/jhoicas/Orders-api/internal/domain/entity"
)

// Draft pedido recibido, aún sin validar contra el alcance del proyecto.
type Draft struct {
	ProjectID     string
	WarehouseID   string
	CarrierID     string
	ServiceTypeID string
	ContactID     string
	Lines         []DraftLine
}

// DraftLine línea solicitada.
type DraftLine struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// References entidades ya cargadas que el draft referencia.
// Available contiene la cantidad de la primera fila de inventario por material (ausente = cero).
type References struct {
	Project   *entity.Project
	Materials map[string]*entity.Material
	Available map[string]decimal.Decimal
	Service   *entity.CarrierService
}

// Validate ejecuta todas las reglas en orden (proyecto, bodega, líneas, transportadora,
// servicio, contacto, al menos una línea) y acumula los errores por campo.
// No se detiene en la primera línea inválida: todas se revisan y se agrupan bajo "lines".
func Validate(scope *entity.ProjectScope, d Draft, refs References) domain.FieldErrors {
	errs := domain.FieldErrors{}

	errs.Add(FieldProject, CheckProject(scope, refs.Project))
	errs.Add(FieldWarehouse, CheckWarehouse(scope, d.WarehouseID))

	for _, l := range d.Lines {
		m, ok := refs.Materials[l.MaterialID]
		if !ok || m == nil {
			errs.Add(FieldLines, fmt.Sprintf(MsgMaterialNotFound, l.MaterialID))
			continue
		}
		errs.Add(FieldLines, CheckMaterial(scope, m))
	}
	for _, dem := range SumByMaterial(d.Lines) {
		m, ok := refs.Materials[dem.MaterialID]
		if !ok || m == nil || m.ProjectID != scope.Project.ID {
			continue
		}
		errs.Add(FieldLines, CheckInventory(m.Name, dem.Quantity, refs.Available[dem.MaterialID]))
	}

	errs.Add(FieldCarrier, CheckCarrier(scope, d.CarrierID))
	if d.ServiceTypeID != "" {
		if refs.Service == nil {
			errs.Add(FieldServiceType, MsgServiceCarrier)
		} else {
			errs.Add(FieldServiceType, CheckService(scope, d.CarrierID, refs.Service))
		}
	}
	errs.Add(FieldContact, CheckContact(scope, d.ContactID))

	if len(d.Lines) == 0 {
		errs.Add(FieldLines, MsgNoLines)
	}
	return errs
}
