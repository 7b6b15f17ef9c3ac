package repository

import (
	"context"

	"github.com/jhoicas/Orders-api/internal/domain/entity"
)

// CarrierRepository define el puerto de lectura para servicios de transportadora.
type CarrierRepository interface {
	GetServiceByID(ctx context.Context, id string) (*entity.CarrierService, error)
}
