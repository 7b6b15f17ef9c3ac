package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Orders-api/internal/domain/entity"
	"github.com/jhoicas/Orders-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación de ProjectRepository (usable con pool o tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

// GetByID obtiene un proyecto por ID.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	query := `
		SELECT id, customer_id, name, lookup_code, orders_prefix, created_at
		FROM projects WHERE id = $1`
	var p entity.Project
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CustomerID, &p.Name, &p.LookupCode, &p.OrdersPrefix, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// GetScope obtiene el proyecto y sus cuatro conjuntos de asignaciones.
func (r *ProjectRepo) GetScope(ctx context.Context, projectID string) (*entity.ProjectScope, error) {
	p, err := r.GetByID(ctx, projectID)
	if err != nil || p == nil {
		return nil, err
	}
	scope := &entity.ProjectScope{Project: *p}

	sets := []struct {
		dst   *entity.IDSet
		query string
	}{
		{&scope.Warehouses, `SELECT warehouse_id FROM project_warehouses WHERE project_id = $1`},
		{&scope.Carriers, `SELECT carrier_id FROM project_carriers WHERE project_id = $1`},
		{&scope.Services, `SELECT service_id FROM project_services WHERE project_id = $1`},
		{&scope.Contacts, `SELECT contact_id FROM project_contacts WHERE project_id = $1`},
	}
	for _, s := range sets {
		ids, err := r.ids(ctx, s.query, projectID)
		if err != nil {
			return nil, err
		}
		*s.dst = entity.NewIDSet(ids...)
	}
	return scope, nil
}

func (r *ProjectRepo) ids(ctx context.Context, query, projectID string) ([]string, error) {
	rows, err := r.q.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project assignments: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan project assignments: %w", err)
	}
	return ids, nil
}
