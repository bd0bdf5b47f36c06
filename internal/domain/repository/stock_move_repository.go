package repository

import (
	"time"

	"github.com/jhoicas/Inventario-historico-api/internal/domain/entity"
)

// StockMoveRepository define el puerto de lectura sobre el ledger de movimientos (DIP).
// El feed pre-filtra en SQL por estado, fecha y ubicaciones como optimización;
// el agregador re-aplica los filtros y no depende de ese pre-filtrado.
type StockMoveRepository interface {
	// ListDoneUntil devuelve los movimientos completados con fecha <= until
	// cuya ubicación origen o destino pertenece a locationIDs, con los
	// nombres de producto/ubicación resueltos y sus lotes en orden de línea.
	ListDoneUntil(until time.Time, locationIDs []string) ([]*entity.StockMove, error)
}
