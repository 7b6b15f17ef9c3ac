package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Orders-api/internal/domain/entity"
	"github.com/jhoicas/Orders-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// GetByIDs obtiene los materiales existentes en una sola consulta.
func (r *MaterialRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Material, error) {
	out := make(map[string]*entity.Material, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `
		SELECT id, project_id, uom_id, status_id, lookup_code, name, is_serialized
		FROM materials WHERE id = ANY($1::uuid[])`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UOMID, &m.StatusID, &m.LookupCode, &m.Name, &m.IsSerialized); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		out[m.ID] = &m
	}
	return out, rows.Err()
}
