package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-historico-api/internal/domain/entity"
	"github.com/jhoicas/Inventario-historico-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepository)(nil)

// LocationRepository lee el catálogo de ubicaciones.
type LocationRepository struct {
	db Querier
}

// NewLocationRepository construye el repositorio con el pool o una tx.
func NewLocationRepository(db Querier) *LocationRepository {
	return &LocationRepository{db: db}
}

// ListByUsage devuelve las ubicaciones cuyo uso está en usages.
func (r *LocationRepository) ListByUsage(usages []string) ([]*entity.Location, error) {
	ctx := context.Background()

	query := `
		SELECT id, name, usage
		FROM locations
		WHERE usage = ANY($1)
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, usages)
	if err != nil {
		return nil, fmt.Errorf("listar ubicaciones: %w", err)
	}
	defer rows.Close()

	var locations []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Usage); err != nil {
			return nil, fmt.Errorf("escanear ubicación: %w", err)
		}
		locations = append(locations, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar ubicaciones: %w", err)
	}
	return locations, nil
}
