package repository

import (
	"context"

	"github.com/jhoicas/Orders-api/internal/domain/entity"
)

// MaterialRepository define el puerto de lectura para materiales.
type MaterialRepository interface {
	// GetByIDs devuelve los materiales encontrados indexados por ID; los inexistentes no aparecen.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Material, error)
}
