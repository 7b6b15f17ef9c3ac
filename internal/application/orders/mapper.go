package orders

import (
	"github.com/jhoicas/Orders-api/internal/application/dto"
	"github.com/jhoicas/Orders-api/internal/domain/entity"
)

// ToOrderResponse convierte la entidad en el DTO de respuesta, con las líneas en orden de envío.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:                   o.ID,
		LookupCodeOrder:      o.LookupCodeOrder,
		LookupCodeShipment:   o.LookupCodeShipment,
		Status:               o.StatusID,
		OrderType:            o.OrderTypeID,
		OrderClass:           o.OrderClassID,
		Project:              o.ProjectID,
		Warehouse:            o.WarehouseID,
		Contact:              o.ContactID,
		ShippingAddress:      o.ShippingAddressID,
		BillingAddress:       o.BillingAddressID,
		Carrier:              o.CarrierID,
		ServiceType:          o.ServiceTypeID,
		ExpectedDeliveryDate: o.ExpectedDelivery,
		Notes:                o.Notes,
		CreatedByUser:        o.CreatedByUserID,
		CreatedAt:            o.CreatedAt,
		Lines:                make([]dto.OrderLineResponse, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		out.Lines = append(out.Lines, dto.OrderLineResponse{
			ID:           l.ID,
			LineNumber:   l.LineNumber,
			Material:     l.MaterialID,
			Quantity:     l.Quantity.StringFixed(2),
			LicensePlate: l.LicensePlateID,
			SerialNumber: l.SerialNumber,
			Lot:          l.Lot,
			VendorLot:    l.VendorLot,
			Notes:        l.Notes,
		})
	}
	return out
}
