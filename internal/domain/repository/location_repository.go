package repository

import "github.com/jhoicas/Inventario-historico-api/internal/domain/entity"

// LocationRepository define el puerto de lectura sobre el catálogo de ubicaciones (DIP).
type LocationRepository interface {
	// ListByUsage devuelve las ubicaciones cuyo uso está en usages
	// (ej. entity.ValidLocationUsages para el conjunto válido del reporte).
	ListByUsage(usages []string) ([]*entity.Location, error)
}
