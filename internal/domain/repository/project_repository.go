package repository

import (
	"context"

	"github.com/jhoicas/Orders-api/internal/domain/entity"
)

// ProjectRepository define el puerto de lectura para proyectos y sus asignaciones.
type ProjectRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	// GetScope carga el proyecto con sus bodegas, transportadoras, servicios y contactos asignados.
	GetScope(ctx context.Context, projectID string) (*entity.ProjectScope, error)
}
