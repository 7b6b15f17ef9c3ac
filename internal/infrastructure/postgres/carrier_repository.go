package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Orders-api/internal/domain/entity"
	"github.com/jhoicas/Orders-api/internal/domain/repository"
)

var _ repository.CarrierRepository = (*CarrierRepo)(nil)

// CarrierRepo implementación de CarrierRepository (usable con pool o tx).
type CarrierRepo struct {
	q Querier
}

// NewCarrierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCarrierRepository(q Querier) *CarrierRepo {
	return &CarrierRepo{q: q}
}

// GetServiceByID obtiene un servicio de transportadora por ID.
func (r *CarrierRepo) GetServiceByID(ctx context.Context, id string) (*entity.CarrierService, error) {
	query := `SELECT id, carrier_id, name, lookup_code FROM carrier_services WHERE id = $1`
	var s entity.CarrierService
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.CarrierID, &s.Name, &s.LookupCode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get carrier service: %w", err)
	}
	return &s, nil
}
